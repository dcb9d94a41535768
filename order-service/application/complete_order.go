package application

import (
	"context"

	"github.com/merchly/order-system/order-service/domain"
	"github.com/merchly/order-system/shared/events"
	"github.com/merchly/order-system/shared/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Completion results returned to the caller
const (
	ResultCompleted = "completed"
	ResultCancelled = "cancelled"
)

// CompleteOrderCommand represents the command to complete an order
type CompleteOrderCommand struct {
	OrderID string               `json:"order_id"`
	Charge  domain.ChargeRequest `json:"charge"`
}

// CompleteOrderResponse represents the response after a completion attempt
type CompleteOrderResponse struct {
	Result         string `json:"result"`
	OrderNumber    string `json:"order_number"`
	TrackingStatus string `json:"tracking_status,omitempty"`
}

// CompleteOrder use case captures payment and advances the order to
// COMPLETED. A declined charge leaves the order PENDING for the
// reconciliation sweep; a charge transport failure propagates to the
// caller because the attempt's outcome is unknown.
type CompleteOrder struct {
	orderRepository domain.OrderRepository
	charge          domain.ChargeGateway
	tracking        domain.TrackingGateway
	eventPublisher  events.Publisher
	log             zerolog.Logger
}

// NewCompleteOrder creates a new CompleteOrder use case
func NewCompleteOrder(
	orderRepository domain.OrderRepository,
	charge domain.ChargeGateway,
	tracking domain.TrackingGateway,
	eventPublisher events.Publisher,
	log zerolog.Logger,
) *CompleteOrder {
	return &CompleteOrder{
		orderRepository: orderRepository,
		charge:          charge,
		tracking:        tracking,
		eventPublisher:  eventPublisher,
		log:             log,
	}
}

// Execute executes the complete order use case
func (uc *CompleteOrder) Execute(ctx context.Context, cmd *CompleteOrderCommand) (*CompleteOrderResponse, error) {
	if cmd.OrderID == "" {
		return nil, errors.New("order ID is required")
	}

	orderID, err := models.NewID(cmd.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	order, err := uc.orderRepository.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	result, err := uc.charge.Charge(ctx, cmd.Charge)
	if err != nil {
		// Unknown outcome: never swallowed, never guessed either way
		return nil, errors.Wrap(err, "charge attempt failed")
	}

	if !result.Succeeded() {
		// Declined: the order stays PENDING with its reservation intact;
		// the reconciliation sweep resolves it after the staleness window.
		return &CompleteOrderResponse{
			Result:      ResultCancelled,
			OrderNumber: order.OrderNumber,
		}, nil
	}

	if err := order.Complete(); err != nil {
		return nil, errors.Wrap(err, "failed to complete order")
	}

	if err := uc.orderRepository.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to save order")
	}

	if err := uc.eventPublisher.Publish(ctx, order.Events()...); err != nil {
		uc.log.Warn().Err(err).
			Str("order_number", order.OrderNumber).
			Msg("order completed but notification publish failed")
	}

	info := domain.TrackingInfo{
		OrderNumber: order.OrderNumber,
		Status:      domain.TrackingStatusProcessing,
	}
	if err := uc.tracking.CreateStatus(ctx, info); err != nil {
		// The order is already durably COMPLETED; surfacing here leaves a
		// completed order without a tracking record, to be reconciled
		// out-of-band. There is deliberately no retry in this path.
		return nil, errors.Wrap(err, "order completed but tracking record creation failed")
	}

	return &CompleteOrderResponse{
		Result:         ResultCompleted,
		OrderNumber:    order.OrderNumber,
		TrackingStatus: string(order.TrackingStatus),
	}, nil
}
