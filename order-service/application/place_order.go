package application

import (
	"context"
	"time"

	"github.com/merchly/order-system/order-service/domain"
	"github.com/merchly/order-system/shared/events"
	"github.com/merchly/order-system/shared/models"
	"github.com/merchly/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// PlaceOrderCommand represents the command to place an order
type PlaceOrderCommand struct {
	UserID string           `json:"user_id"`
	Items  []PlaceOrderItem `json:"items"`
}

// PlaceOrderItem is one requested line item
type PlaceOrderItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
}

// PlaceOrderResponse represents the response after placing an order
type PlaceOrderResponse struct {
	OrderID     string               `json:"order_id"`
	OrderNumber string               `json:"order_number"`
	Reserved    []domain.Reservation `json:"reserved"`
}

// PlaceOrder use case drives the forward half of the order saga: stock
// check, inventory reservation, then the persist that is the commit
// point. From that point on a reservation exists with no terminal order
// state until CompleteOrder or the reconciliation sweep resolves it.
type PlaceOrder struct {
	orderRepository domain.OrderRepository
	inventory       domain.InventoryGateway
	eventPublisher  events.Publisher
	log             zerolog.Logger
}

// NewPlaceOrder creates a new PlaceOrder use case
func NewPlaceOrder(
	orderRepository domain.OrderRepository,
	inventory domain.InventoryGateway,
	eventPublisher events.Publisher,
	log zerolog.Logger,
) *PlaceOrder {
	return &PlaceOrder{
		orderRepository: orderRepository,
		inventory:       inventory,
		eventPublisher:  eventPublisher,
		log:             log,
	}
}

// Execute executes the place order use case
func (uc *PlaceOrder) Execute(ctx context.Context, cmd *PlaceOrderCommand) (*PlaceOrderResponse, error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "place_order",
		trace.WithAttributes(
			attribute.String("user_id", cmd.UserID),
			attribute.Int("item_count", len(cmd.Items)),
		),
	)
	defer span.End()

	var status = "error"
	defer func() {
		telemetry.RecordCounter(ctx, "order_operations_total", "Total order operations", 1,
			attribute.String("operation", "place_order"),
			attribute.String("status", status),
		)
		telemetry.RecordHistogram(ctx, "order_operation_duration_seconds", "Order operation duration", time.Since(start).Seconds(),
			attribute.String("operation", "place_order"),
			attribute.String("status", status),
		)
	}()

	if err := uc.validateCommand(cmd); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "invalid command")
	}

	lineItems := uc.mapLineItems(cmd.Items)

	requested := make([]domain.Reservation, len(lineItems))
	for i, item := range lineItems {
		requested[i] = domain.Reservation{SKU: item.SKU, Quantity: item.Quantity}
	}

	// Advisory gate: the reservation call below carries its own
	// confirmation and is the only authority on whether stock moved.
	stock, err := uc.inventory.CheckStock(ctx, requested)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to check stock")
	}

	var unavailable []string
	for _, s := range stock {
		if !s.InStock {
			unavailable = append(unavailable, s.SKU)
		}
	}
	if len(unavailable) > 0 {
		return nil, &domain.ItemsNotInStockError{Unavailable: unavailable}
	}

	if err := uc.inventory.Reserve(ctx, requested); err != nil {
		// Terminal abort: the collaborator contract guarantees no
		// reservation was committed on an unconfirmed response.
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to reserve inventory")
	}

	order, err := domain.PlaceOrder(cmd.UserID, lineItems)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}

	// Commit point: once the PENDING order is durable, the outstanding
	// reservation is accounted for.
	if err := uc.orderRepository.Create(ctx, order); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to save order")
	}

	// Notification is not part of the consistency contract; a publish
	// failure never rolls back the placement.
	if err := uc.eventPublisher.Publish(ctx, order.Events()...); err != nil {
		uc.log.Warn().Err(err).
			Str("order_number", order.OrderNumber).
			Msg("order placed but notification publish failed")
	}

	status = "success"
	return &PlaceOrderResponse{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Reserved:    order.Reservations(),
	}, nil
}

// mapLineItems maps requested items to domain line items. Pure, no I/O.
func (uc *PlaceOrder) mapLineItems(items []PlaceOrderItem) []domain.LineItem {
	lineItems := make([]domain.LineItem, len(items))
	for i, item := range items {
		lineItems[i] = domain.LineItem{
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: models.NewMoney(item.Price, item.Currency),
		}
	}
	return lineItems
}

// validateCommand validates the place order command
func (uc *PlaceOrder) validateCommand(cmd *PlaceOrderCommand) error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}

	if len(cmd.Items) == 0 {
		return errors.New("at least one item is required")
	}

	// All pure validation runs here, before any collaborator call: a
	// command that would fail the aggregate factory must never get as
	// far as reserving stock.
	currency := cmd.Items[0].Currency
	for _, item := range cmd.Items {
		if item.SKU == "" {
			return errors.New("item SKU is required")
		}
		if item.Quantity <= 0 {
			return errors.New("item quantity must be positive")
		}
		if item.Price < 0 {
			return errors.New("item price must not be negative")
		}
		if item.Currency != currency {
			return errors.New("items must share a currency")
		}
	}

	return nil
}
