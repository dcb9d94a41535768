package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/merchly/order-system/shared/events"
	"github.com/merchly/order-system/shared/models"
	"github.com/pkg/errors"
)

// Status represents the order lifecycle state. An order is only ever
// persisted as PENDING or COMPLETED; a cancelled order's persisted
// representation is absence, because compensation removes the row after
// the inventory rollback is confirmed.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// TrackingStatus is the shipment sub-lifecycle, driven by the tracking
// collaborator and only mirrored on the order.
type TrackingStatus string

const (
	TrackingStatusNone       TrackingStatus = ""
	TrackingStatusProcessing TrackingStatus = "PROCESSING"
	TrackingStatusShipped    TrackingStatus = "SHIPPED"
	TrackingStatusDelivered  TrackingStatus = "DELIVERED"
)

// LineItem is owned exclusively by one order
type LineItem struct {
	SKU       string
	Quantity  int
	UnitPrice models.Money
}

// Reservation is a (sku, quantity) pair held at the inventory collaborator
type Reservation struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// Order aggregate root
type Order struct {
	ID             models.ID
	OrderNumber    string
	UserID         string
	LineItems      []LineItem
	Status         Status
	TrackingStatus TrackingStatus
	Timestamps     models.Timestamps
	Version        models.Version

	events []*events.Event
}

// PlaceOrder factory method. The caller must only invoke this after the
// inventory reservation was confirmed: a PENDING order asserts that a
// matching unconfirmed reservation is outstanding.
func PlaceOrder(userID string, items []LineItem) (*Order, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	if len(items) == 0 {
		return nil, errors.New("order requires at least one line item")
	}
	currency := items[0].UnitPrice.Currency
	for _, item := range items {
		if item.SKU == "" {
			return nil, errors.New("line item SKU is required")
		}
		if item.Quantity <= 0 {
			return nil, errors.New("line item quantity must be positive")
		}
		if item.UnitPrice.Currency != currency {
			return nil, errors.New("line items must share a currency")
		}
	}

	order := &Order{
		ID:             models.GenerateUUID(),
		OrderNumber:    models.GenerateUUID().String(),
		UserID:         userID,
		LineItems:      items,
		Status:         StatusPending,
		TrackingStatus: TrackingStatusNone,
		Timestamps:     models.NewTimestamps(),
		Version:        models.NewVersion(),
	}

	event := events.NewEvent(order.ID, events.OrderPlacedEvent, OrderPlacedData{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Items:       order.Reservations(),
		Total:       order.Total(),
		Message:     fmt.Sprintf("%s order placed", order.OrderNumber),
	})

	order.recordEvent(event)
	return order, nil
}

// Complete moves the order to COMPLETED and starts the tracking
// sub-lifecycle. Only a PENDING order with a captured payment may complete.
func (o *Order) Complete() error {
	if o.Status != StatusPending {
		return errors.Errorf("order can only be completed from pending status, was %s", o.Status)
	}

	o.Status = StatusCompleted
	o.TrackingStatus = TrackingStatusProcessing
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()

	event := events.NewEvent(o.ID, events.OrderCompletedEvent, OrderCompletedData{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
	})

	o.recordEvent(event)
	return nil
}

// Cancel marks the order as cancelled. The status never regresses
// otherwise; cancellation is the single backward transition and precedes
// removal from the store.
func (o *Order) Cancel() error {
	if o.Status != StatusPending {
		return errors.Errorf("only pending orders can be cancelled, was %s", o.Status)
	}

	o.Status = StatusCancelled
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()

	event := events.NewEvent(o.ID, events.OrderCancelledEvent, OrderCancelledData{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Items:       o.Reservations(),
	})

	o.recordEvent(event)
	return nil
}

// UpdateTracking overwrites the mirrored tracking status
func (o *Order) UpdateTracking(status TrackingStatus) {
	o.TrackingStatus = status
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()
}

// Total sums the line item prices. Line items in one order always share
// a currency, enforced at placement.
func (o *Order) Total() models.Money {
	if len(o.LineItems) == 0 {
		return models.Money{}
	}

	total := o.LineItems[0].UnitPrice.Multiply(o.LineItems[0].Quantity)
	for _, item := range o.LineItems[1:] {
		line := item.UnitPrice.Multiply(item.Quantity)
		total, _ = total.Add(line) // same currency, cannot fail
	}
	return total
}

// Reservations returns the (sku, quantity) pairs reserved for this order
func (o *Order) Reservations() []Reservation {
	reservations := make([]Reservation, len(o.LineItems))
	for i, item := range o.LineItems {
		reservations[i] = Reservation{
			SKU:      item.SKU,
			Quantity: item.Quantity,
		}
	}
	return reservations
}

// StaleSince reports whether the order has sat in PENDING since before
// the cutoff and is a compensation candidate.
func (o *Order) StaleSince(cutoff time.Time) bool {
	return o.Status == StatusPending && o.Timestamps.CreatedAt.Before(cutoff)
}

// Events returns domain events
func (o *Order) Events() []*events.Event {
	return o.events
}

// ClearEvents clears domain events
func (o *Order) ClearEvents() {
	o.events = make([]*events.Event, 0)
}

func (o *Order) recordEvent(event *events.Event) {
	o.events = append(o.events, event)
}

// Event Data Structures
type OrderPlacedData struct {
	OrderID     models.ID     `json:"order_id"`
	OrderNumber string        `json:"order_number"`
	UserID      string        `json:"user_id"`
	Items       []Reservation `json:"items"`
	Total       models.Money  `json:"total"`
	Message     string        `json:"message"`
}

type OrderCompletedData struct {
	OrderID     models.ID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
}

type OrderCancelledData struct {
	OrderID     models.ID     `json:"order_id"`
	OrderNumber string        `json:"order_number"`
	UserID      string        `json:"user_id"`
	Items       []Reservation `json:"items"`
}

// OrderRepository is the durable order store contract. Find methods
// return (nil, nil) when no order matches.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id models.ID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindByUserID(ctx context.Context, userID string) ([]*Order, error)
	// FindByStatusOlderThan returns orders in the given status created
	// before the cutoff, for the compensation scan.
	FindByStatusOlderThan(ctx context.Context, status Status, cutoff time.Time) ([]*Order, error)
	// Update persists order mutations with a version compare-and-swap;
	// returns ErrStaleOrder when the row changed underneath.
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id models.ID) error
	// DeletePending removes the order only while it is still PENDING,
	// reporting whether a row was removed. Guards the compensation path
	// against an order completing between scan and delete.
	DeletePending(ctx context.Context, id models.ID) (bool, error)
}
