package handlers

import (
	"context"

	"github.com/merchly/order-system/order-service/application"
	"github.com/merchly/order-system/order-service/domain"
	"github.com/merchly/order-system/shared/events"
	"github.com/pkg/errors"
)

// OrderEventHandlers contains event handlers for the order service
type OrderEventHandlers struct {
	updateTracking *application.UpdateTracking
}

// NewOrderEventHandlers creates new order event handlers
func NewOrderEventHandlers(updateTracking *application.UpdateTracking) *OrderEventHandlers {
	return &OrderEventHandlers{
		updateTracking: updateTracking,
	}
}

// Handle implements the events.EventHandler interface
func (h *OrderEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.TrackingStatusUpdatedEvent:
		return h.HandleTrackingStatusUpdated(ctx, event)
	case events.DeliveryAcceptedEvent:
		return h.HandleDeliveryAccepted(ctx, event)
	default:
		// Unknown event type, ignore
		return nil
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *OrderEventHandlers) HandlerID() string {
	return "order-service-event-handler"
}

// HandleTrackingStatusUpdated mirrors a tracking status pushed by the
// tracking service onto the order
func (h *OrderEventHandlers) HandleTrackingStatusUpdated(ctx context.Context, event *events.Event) error {
	data, ok := event.Data.(map[string]interface{})
	if !ok {
		return errors.New("invalid event data")
	}

	orderNumber, ok := data["order_number"].(string)
	if !ok {
		return errors.New("order_number is required")
	}

	status, ok := data["status"].(string)
	if !ok {
		return errors.New("status is required")
	}

	return h.updateTracking.Execute(ctx, &application.UpdateTrackingCommand{
		OrderNumber: orderNumber,
		Status:      status,
	})
}

// HandleDeliveryAccepted marks the order as shipped once a carrier
// accepts the delivery
func (h *OrderEventHandlers) HandleDeliveryAccepted(ctx context.Context, event *events.Event) error {
	data, ok := event.Data.(map[string]interface{})
	if !ok {
		return errors.New("invalid event data")
	}

	orderNumber, ok := data["order_number"].(string)
	if !ok {
		return errors.New("order_number is required")
	}

	return h.updateTracking.Execute(ctx, &application.UpdateTrackingCommand{
		OrderNumber: orderNumber,
		Status:      string(domain.TrackingStatusShipped),
	})
}
