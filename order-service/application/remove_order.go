package application

import (
	"context"

	"github.com/merchly/order-system/order-service/domain"
	"github.com/merchly/order-system/shared/models"
	"github.com/pkg/errors"
)

// RemoveOrderCommand represents the administrative delete command
type RemoveOrderCommand struct {
	OrderID string `json:"order_id"`
}

// RemoveOrder use case removes an order unconditionally. Administrative
// surface; it performs no inventory compensation.
type RemoveOrder struct {
	orderRepository domain.OrderRepository
}

// NewRemoveOrder creates a new RemoveOrder use case
func NewRemoveOrder(orderRepository domain.OrderRepository) *RemoveOrder {
	return &RemoveOrder{
		orderRepository: orderRepository,
	}
}

// Execute executes the remove order use case
func (uc *RemoveOrder) Execute(ctx context.Context, cmd *RemoveOrderCommand) error {
	if cmd.OrderID == "" {
		return errors.New("order ID is required")
	}

	orderID, err := models.NewID(cmd.OrderID)
	if err != nil {
		return errors.Wrap(err, "invalid order ID")
	}

	order, err := uc.orderRepository.FindByID(ctx, orderID)
	if err != nil {
		return errors.Wrap(err, "failed to find order")
	}
	if order == nil {
		return domain.ErrOrderNotFound
	}

	if err := uc.orderRepository.Delete(ctx, orderID); err != nil {
		return errors.Wrap(err, "failed to delete order")
	}

	return nil
}
