package application

import (
	"context"
	"testing"

	"github.com/merchly/order-system/order-service/domain"
	"github.com/merchly/order-system/order-service/mocks"
	"github.com/merchly/order-system/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestViewOrders_Execute(t *testing.T) {
	userOrder := func() *domain.Order {
		return &domain.Order{
			ID:          models.ID("550e8400-e29b-41d4-a716-446655440050"),
			OrderNumber: "ord-num-123",
			UserID:      "user-123",
			LineItems: []domain.LineItem{
				{SKU: "SKU-1", Quantity: 2, UnitPrice: models.NewMoney(1500, "USD")},
				{SKU: "SKU-2", Quantity: 1, UnitPrice: models.NewMoney(4000, "USD")},
			},
			Status:         domain.StatusCompleted,
			TrackingStatus: domain.TrackingStatusShipped,
			Timestamps:     models.NewTimestamps(),
			Version:        models.NewVersion(),
		}
	}

	widget := &domain.Product{
		SKU:   "SKU-1",
		Name:  "Widget",
		Price: models.NewMoney(1500, "USD"),
	}
	gadget := &domain.Product{
		SKU:   "SKU-2",
		Name:  "Gadget",
		Price: models.NewMoney(4000, "USD"),
	}

	tests := []struct {
		name          string
		query         *ViewOrdersQuery
		setupMocks    func(*mocks.MockOrderRepository, *mocks.MockCatalogGateway)
		expectedViews int
		expectedError string
	}{
		{
			name:  "orders joined with catalog metadata",
			query: &ViewOrdersQuery{UserID: "user-123"},
			setupMocks: func(repo *mocks.MockOrderRepository, catalog *mocks.MockCatalogGateway) {
				repo.EXPECT().FindByUserID(mock.Anything, "user-123").
					Return([]*domain.Order{userOrder()}, nil).Once()
				catalog.EXPECT().GetProduct(mock.Anything, "SKU-1").Return(widget, nil).Once()
				catalog.EXPECT().GetProduct(mock.Anything, "SKU-2").Return(gadget, nil).Once()
			},
			expectedViews: 1,
		},
		{
			name:  "no orders",
			query: &ViewOrdersQuery{UserID: "user-456"},
			setupMocks: func(repo *mocks.MockOrderRepository, catalog *mocks.MockCatalogGateway) {
				repo.EXPECT().FindByUserID(mock.Anything, "user-456").Return(nil, nil).Once()
			},
			expectedViews: 0,
		},
		{
			name:  "catalog failure fails the whole view",
			query: &ViewOrdersQuery{UserID: "user-123"},
			setupMocks: func(repo *mocks.MockOrderRepository, catalog *mocks.MockCatalogGateway) {
				repo.EXPECT().FindByUserID(mock.Anything, "user-123").
					Return([]*domain.Order{userOrder()}, nil).Once()
				catalog.EXPECT().GetProduct(mock.Anything, "SKU-1").
					Return(nil, errors.New("catalog unreachable")).Once()
			},
			expectedError: "failed to fetch product SKU-1",
		},
		{
			name:  "repository failure",
			query: &ViewOrdersQuery{UserID: "user-123"},
			setupMocks: func(repo *mocks.MockOrderRepository, catalog *mocks.MockCatalogGateway) {
				repo.EXPECT().FindByUserID(mock.Anything, "user-123").
					Return(nil, errors.New("database error")).Once()
			},
			expectedError: "failed to find orders",
		},
		{
			name:  "validation error - missing user ID",
			query: &ViewOrdersQuery{},
			setupMocks: func(repo *mocks.MockOrderRepository, catalog *mocks.MockCatalogGateway) {
				// No expectations - should fail validation
			},
			expectedError: "user ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockOrderRepository(t)
			mockCatalog := mocks.NewMockCatalogGateway(t)

			tt.setupMocks(mockRepo, mockCatalog)

			useCase := NewViewOrders(mockRepo, mockCatalog)

			views, err := useCase.Execute(context.Background(), tt.query)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, views)
			} else {
				assert.NoError(t, err)
				assert.Len(t, views, tt.expectedViews)
				if tt.expectedViews > 0 {
					view := views[0]
					assert.Equal(t, "ord-num-123", view.OrderNumber)
					assert.Equal(t, "SHIPPED", view.TrackingStatus)
					assert.Len(t, view.Products, 2)
					assert.Equal(t, "Widget", view.Products[0].Name)
					assert.Equal(t, 2, view.Products[0].Quantity)
				}
			}
		})
	}
}
