package application

import (
	"context"
	"time"

	"github.com/merchly/order-system/order-service/domain"
	"github.com/merchly/order-system/shared/models"
	"github.com/pkg/errors"
)

// ViewOrdersQuery represents the query for a user's order views
type ViewOrdersQuery struct {
	UserID string `json:"user_id"`
}

// ProductView is one line item joined with catalog display metadata
type ProductView struct {
	SKU      string       `json:"sku"`
	Name     string       `json:"name"`
	Quantity int          `json:"quantity"`
	Price    models.Money `json:"price"`
}

// OrderView is a user-facing order projection
type OrderView struct {
	OrderNumber    string        `json:"order_number"`
	UserID         string        `json:"user_id"`
	Status         string        `json:"status"`
	TrackingStatus string        `json:"tracking_status"`
	CreatedAt      time.Time     `json:"created_at"`
	Products       []ProductView `json:"products"`
}

// ViewOrders use case composes the order store with catalog metadata.
// Read path only; it never mutates orders. A catalog failure fails the
// whole view rather than returning a silently partial one.
type ViewOrders struct {
	orderRepository domain.OrderRepository
	catalog         domain.CatalogGateway
}

// NewViewOrders creates a new ViewOrders use case
func NewViewOrders(orderRepository domain.OrderRepository, catalog domain.CatalogGateway) *ViewOrders {
	return &ViewOrders{
		orderRepository: orderRepository,
		catalog:         catalog,
	}
}

// Execute executes the view orders use case
func (uc *ViewOrders) Execute(ctx context.Context, query *ViewOrdersQuery) ([]OrderView, error) {
	if query.UserID == "" {
		return nil, errors.New("user ID is required")
	}

	orders, err := uc.orderRepository.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders")
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		products := make([]ProductView, 0, len(order.LineItems))
		for _, item := range order.LineItems {
			product, err := uc.catalog.GetProduct(ctx, item.SKU)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to fetch product %s", item.SKU)
			}

			products = append(products, ProductView{
				SKU:      item.SKU,
				Name:     product.Name,
				Quantity: item.Quantity,
				Price:    product.Price,
			})
		}

		views = append(views, OrderView{
			OrderNumber:    order.OrderNumber,
			UserID:         order.UserID,
			Status:         string(order.Status),
			TrackingStatus: string(order.TrackingStatus),
			CreatedAt:      order.Timestamps.CreatedAt,
			Products:       products,
		})
	}

	return views, nil
}
