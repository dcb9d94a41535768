package application

import (
	"context"
	"testing"
	"time"

	"github.com/merchly/order-system/order-service/domain"
	"github.com/merchly/order-system/order-service/mocks"
	"github.com/merchly/order-system/shared/events"
	"github.com/merchly/order-system/shared/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReconcilePendingOrders_Execute(t *testing.T) {
	staleness := 5 * time.Minute
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	staleOrder := func() *domain.Order {
		return &domain.Order{
			ID:          models.ID("550e8400-e29b-41d4-a716-446655440030"),
			OrderNumber: "ord-num-stale",
			UserID:      "user-123",
			LineItems: []domain.LineItem{
				{SKU: "SKU-1", Quantity: 2, UnitPrice: models.NewMoney(1500, "USD")},
			},
			Status: domain.StatusPending,
			Timestamps: models.Timestamps{
				CreatedAt: now.Add(-10 * time.Minute),
				UpdatedAt: now.Add(-10 * time.Minute),
			},
			Version: models.NewVersion(),
		}
	}

	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockOrderRepository, *mocks.MockInventoryGateway, *mocks.MockPublisher)
		expectedError string
	}{
		{
			name: "stale order rolled back and removed",
			setupMocks: func(repo *mocks.MockOrderRepository, inventory *mocks.MockInventoryGateway, publisher *mocks.MockPublisher) {
				order := staleOrder()
				repo.EXPECT().FindByStatusOlderThan(mock.Anything, domain.StatusPending, now.Add(-staleness)).
					Return([]*domain.Order{order}, nil).Once()
				inventory.EXPECT().Rollback(mock.Anything, order.Reservations()).Return(nil).Once()
				repo.EXPECT().DeletePending(mock.Anything, order.ID).Return(true, nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.EventType == events.OrderCancelledEvent
				})).Return(nil).Once()
			},
		},
		{
			name: "no stale orders",
			setupMocks: func(repo *mocks.MockOrderRepository, inventory *mocks.MockInventoryGateway, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByStatusOlderThan(mock.Anything, domain.StatusPending, mock.Anything).
					Return(nil, nil).Once()
			},
		},
		{
			name: "rollback failure keeps order for next sweep",
			setupMocks: func(repo *mocks.MockOrderRepository, inventory *mocks.MockInventoryGateway, publisher *mocks.MockPublisher) {
				order := staleOrder()
				repo.EXPECT().FindByStatusOlderThan(mock.Anything, domain.StatusPending, mock.Anything).
					Return([]*domain.Order{order}, nil).Once()
				inventory.EXPECT().Rollback(mock.Anything, mock.Anything).
					Return(domain.ErrRollbackNotConfirmed).Once()
				// No DeletePending: the order must survive an unconfirmed rollback
			},
		},
		{
			name: "order completed between scan and delete",
			setupMocks: func(repo *mocks.MockOrderRepository, inventory *mocks.MockInventoryGateway, publisher *mocks.MockPublisher) {
				order := staleOrder()
				repo.EXPECT().FindByStatusOlderThan(mock.Anything, domain.StatusPending, mock.Anything).
					Return([]*domain.Order{order}, nil).Once()
				inventory.EXPECT().Rollback(mock.Anything, mock.Anything).Return(nil).Once()
				repo.EXPECT().DeletePending(mock.Anything, order.ID).Return(false, nil).Once()
				// No cancellation event for an order that escaped the sweep
			},
		},
		{
			name: "per-order failure does not stop the sweep",
			setupMocks: func(repo *mocks.MockOrderRepository, inventory *mocks.MockInventoryGateway, publisher *mocks.MockPublisher) {
				broken := staleOrder()
				healthy := staleOrder()
				healthy.ID = models.ID("550e8400-e29b-41d4-a716-446655440031")
				healthy.OrderNumber = "ord-num-healthy"

				repo.EXPECT().FindByStatusOlderThan(mock.Anything, domain.StatusPending, mock.Anything).
					Return([]*domain.Order{broken, healthy}, nil).Once()
				inventory.EXPECT().Rollback(mock.Anything, broken.Reservations()).
					Return(errors.New("inventory unreachable")).Once()
				inventory.EXPECT().Rollback(mock.Anything, healthy.Reservations()).Return(nil).Once()
				repo.EXPECT().DeletePending(mock.Anything, healthy.ID).Return(true, nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "scan failure fails the run",
			setupMocks: func(repo *mocks.MockOrderRepository, inventory *mocks.MockInventoryGateway, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByStatusOlderThan(mock.Anything, domain.StatusPending, mock.Anything).
					Return(nil, errors.New("database error")).Once()
			},
			expectedError: "failed to scan for stale pending orders",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockOrderRepository(t)
			mockInventory := mocks.NewMockInventoryGateway(t)
			mockPublisher := mocks.NewMockPublisher(t)

			tt.setupMocks(mockRepo, mockInventory, mockPublisher)

			useCase := NewReconcilePendingOrders(
				mockRepo, mockInventory, mockPublisher, staleness, zerolog.Nop(),
				WithClock(clock),
			)

			err := useCase.Execute(context.Background())

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
