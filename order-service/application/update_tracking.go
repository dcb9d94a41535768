package application

import (
	"context"

	"github.com/merchly/order-system/order-service/domain"
	"github.com/pkg/errors"
)

// UpdateTrackingCommand carries a tracking status pushed back by the
// tracking collaborator
type UpdateTrackingCommand struct {
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
}

// UpdateTracking use case overwrites an order's mirrored tracking
// status. Collaborator-facing mutation, not part of the saga itself.
type UpdateTracking struct {
	orderRepository domain.OrderRepository
}

// NewUpdateTracking creates a new UpdateTracking use case
func NewUpdateTracking(orderRepository domain.OrderRepository) *UpdateTracking {
	return &UpdateTracking{
		orderRepository: orderRepository,
	}
}

// Execute executes the update tracking use case
func (uc *UpdateTracking) Execute(ctx context.Context, cmd *UpdateTrackingCommand) error {
	if err := uc.validateCommand(cmd); err != nil {
		return errors.Wrap(err, "invalid command")
	}

	order, err := uc.orderRepository.FindByOrderNumber(ctx, cmd.OrderNumber)
	if err != nil {
		return errors.Wrap(err, "failed to find order")
	}
	if order == nil {
		return domain.ErrOrderNotFound
	}

	order.UpdateTracking(domain.TrackingStatus(cmd.Status))

	if err := uc.orderRepository.Update(ctx, order); err != nil {
		return errors.Wrap(err, "failed to save order")
	}

	return nil
}

// validateCommand validates the update tracking command
func (uc *UpdateTracking) validateCommand(cmd *UpdateTrackingCommand) error {
	if cmd.OrderNumber == "" {
		return errors.New("order number is required")
	}

	switch domain.TrackingStatus(cmd.Status) {
	case domain.TrackingStatusProcessing, domain.TrackingStatusShipped, domain.TrackingStatusDelivered:
		return nil
	default:
		return errors.Errorf("unknown tracking status %q", cmd.Status)
	}
}
