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

func TestGetOrder_Execute(t *testing.T) {
	validOrderID := models.ID("550e8400-e29b-41d4-a716-446655440060")

	storedOrder := &domain.Order{
		ID:          validOrderID,
		OrderNumber: "ord-num-123",
		UserID:      "user-123",
		LineItems: []domain.LineItem{
			{SKU: "SKU-1", Quantity: 3, UnitPrice: models.NewMoney(1500, "USD")},
		},
		Status:     domain.StatusPending,
		Timestamps: models.NewTimestamps(),
		Version:    models.NewVersion(),
	}

	tests := []struct {
		name          string
		query         *GetOrderQuery
		setupMocks    func(*mocks.MockOrderRepository)
		expectedError string
	}{
		{
			name:  "order found",
			query: &GetOrderQuery{OrderID: validOrderID.String()},
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.EXPECT().FindByID(mock.Anything, validOrderID).Return(storedOrder, nil).Once()
			},
		},
		{
			name:  "order not found",
			query: &GetOrderQuery{OrderID: validOrderID.String()},
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.EXPECT().FindByID(mock.Anything, validOrderID).Return(nil, nil).Once()
			},
			expectedError: "order not found",
		},
		{
			name:  "repository error",
			query: &GetOrderQuery{OrderID: validOrderID.String()},
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.EXPECT().FindByID(mock.Anything, validOrderID).
					Return(nil, errors.New("database error")).Once()
			},
			expectedError: "failed to find order",
		},
		{
			name:  "validation error - empty order ID",
			query: &GetOrderQuery{},
			setupMocks: func(repo *mocks.MockOrderRepository) {
				// No expectations - should fail validation
			},
			expectedError: "order ID is required",
		},
		{
			name:  "validation error - malformed order ID",
			query: &GetOrderQuery{OrderID: "not-a-uuid"},
			setupMocks: func(repo *mocks.MockOrderRepository) {
				// No expectations - should fail validation
			},
			expectedError: "invalid order ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockOrderRepository(t)

			tt.setupMocks(mockRepo)

			useCase := NewGetOrder(mockRepo)

			response, err := useCase.Execute(context.Background(), tt.query)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, response)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "ord-num-123", response.OrderNumber)
				assert.Equal(t, []domain.Reservation{{SKU: "SKU-1", Quantity: 3}}, response.Items)
			}
		})
	}
}
