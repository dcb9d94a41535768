package application

import (
	"context"
	"testing"

	"github.com/merchly/order-system/order-service/domain"
	"github.com/merchly/order-system/order-service/mocks"
	"github.com/merchly/order-system/shared/events"
	"github.com/merchly/order-system/shared/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCompleteOrder_Execute(t *testing.T) {
	validOrderID := models.ID("550e8400-e29b-41d4-a716-446655440020")

	pendingOrder := func() *domain.Order {
		return &domain.Order{
			ID:          validOrderID,
			OrderNumber: "ord-num-123",
			UserID:      "user-123",
			LineItems: []domain.LineItem{
				{SKU: "SKU-1", Quantity: 2, UnitPrice: models.NewMoney(1500, "USD")},
			},
			Status:     domain.StatusPending,
			Timestamps: models.NewTimestamps(),
			Version:    models.NewVersion(),
		}
	}

	validCommand := &CompleteOrderCommand{
		OrderID: validOrderID.String(),
		Charge: domain.ChargeRequest{
			Token:  "tok_123",
			Amount: models.NewMoney(3000, "USD"),
		},
	}

	succeededCharge := &domain.ChargeResult{Status: "succeeded", TransactionID: "txn_123"}
	declinedCharge := &domain.ChargeResult{Status: "declined"}

	tests := []struct {
		name           string
		command        *CompleteOrderCommand
		setupMocks     func(*mocks.MockOrderRepository, *mocks.MockChargeGateway, *mocks.MockTrackingGateway, *mocks.MockPublisher)
		expectedResult string
		expectedError  string
	}{
		{
			name:    "successful completion",
			command: validCommand,
			setupMocks: func(repo *mocks.MockOrderRepository, charge *mocks.MockChargeGateway, tracking *mocks.MockTrackingGateway, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, validOrderID).Return(pendingOrder(), nil).Once()
				charge.EXPECT().Charge(mock.Anything, validCommand.Charge).Return(succeededCharge, nil).Once()
				repo.EXPECT().Update(mock.Anything, mock.MatchedBy(func(order *domain.Order) bool {
					return order.Status == domain.StatusCompleted &&
						order.TrackingStatus == domain.TrackingStatusProcessing
				})).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.EventType == events.OrderCompletedEvent
				})).Return(nil).Once()
				tracking.EXPECT().CreateStatus(mock.Anything, domain.TrackingInfo{
					OrderNumber: "ord-num-123",
					Status:      domain.TrackingStatusProcessing,
				}).Return(nil).Once()
			},
			expectedResult: ResultCompleted,
		},
		{
			name:    "declined charge leaves order pending",
			command: validCommand,
			setupMocks: func(repo *mocks.MockOrderRepository, charge *mocks.MockChargeGateway, tracking *mocks.MockTrackingGateway, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, validOrderID).Return(pendingOrder(), nil).Once()
				charge.EXPECT().Charge(mock.Anything, validCommand.Charge).Return(declinedCharge, nil).Once()
				// No Update: the order stays PENDING for the sweep
			},
			expectedResult: ResultCancelled,
		},
		{
			name:    "charge transport failure propagates",
			command: validCommand,
			setupMocks: func(repo *mocks.MockOrderRepository, charge *mocks.MockChargeGateway, tracking *mocks.MockTrackingGateway, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, validOrderID).Return(pendingOrder(), nil).Once()
				charge.EXPECT().Charge(mock.Anything, validCommand.Charge).
					Return(nil, errors.New("charge service timeout")).Once()
			},
			expectedError: "charge attempt failed",
		},
		{
			name:    "order not found",
			command: validCommand,
			setupMocks: func(repo *mocks.MockOrderRepository, charge *mocks.MockChargeGateway, tracking *mocks.MockTrackingGateway, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, validOrderID).Return(nil, nil).Once()
			},
			expectedError: "order not found",
		},
		{
			name:    "update failure",
			command: validCommand,
			setupMocks: func(repo *mocks.MockOrderRepository, charge *mocks.MockChargeGateway, tracking *mocks.MockTrackingGateway, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, validOrderID).Return(pendingOrder(), nil).Once()
				charge.EXPECT().Charge(mock.Anything, validCommand.Charge).Return(succeededCharge, nil).Once()
				repo.EXPECT().Update(mock.Anything, mock.Anything).Return(domain.ErrStaleOrder).Once()
			},
			expectedError: "failed to save order",
		},
		{
			name:    "tracking failure after completion surfaces",
			command: validCommand,
			setupMocks: func(repo *mocks.MockOrderRepository, charge *mocks.MockChargeGateway, tracking *mocks.MockTrackingGateway, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, validOrderID).Return(pendingOrder(), nil).Once()
				charge.EXPECT().Charge(mock.Anything, validCommand.Charge).Return(succeededCharge, nil).Once()
				repo.EXPECT().Update(mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
				tracking.EXPECT().CreateStatus(mock.Anything, mock.Anything).
					Return(errors.New("tracking service down")).Once()
			},
			expectedError: "order completed but tracking record creation failed",
		},
		{
			name:    "publish failure does not fail completion",
			command: validCommand,
			setupMocks: func(repo *mocks.MockOrderRepository, charge *mocks.MockChargeGateway, tracking *mocks.MockTrackingGateway, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, validOrderID).Return(pendingOrder(), nil).Once()
				charge.EXPECT().Charge(mock.Anything, validCommand.Charge).Return(succeededCharge, nil).Once()
				repo.EXPECT().Update(mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).
					Return(errors.New("sns unavailable")).Once()
				tracking.EXPECT().CreateStatus(mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedResult: ResultCompleted,
		},
		{
			name:    "validation error - empty order ID",
			command: &CompleteOrderCommand{},
			setupMocks: func(repo *mocks.MockOrderRepository, charge *mocks.MockChargeGateway, tracking *mocks.MockTrackingGateway, publisher *mocks.MockPublisher) {
				// No expectations - should fail validation
			},
			expectedError: "order ID is required",
		},
		{
			name:    "validation error - malformed order ID",
			command: &CompleteOrderCommand{OrderID: "not-a-uuid"},
			setupMocks: func(repo *mocks.MockOrderRepository, charge *mocks.MockChargeGateway, tracking *mocks.MockTrackingGateway, publisher *mocks.MockPublisher) {
				// No expectations - should fail validation
			},
			expectedError: "invalid order ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockOrderRepository(t)
			mockCharge := mocks.NewMockChargeGateway(t)
			mockTracking := mocks.NewMockTrackingGateway(t)
			mockPublisher := mocks.NewMockPublisher(t)

			tt.setupMocks(mockRepo, mockCharge, mockTracking, mockPublisher)

			useCase := NewCompleteOrder(mockRepo, mockCharge, mockTracking, mockPublisher, zerolog.Nop())

			response, err := useCase.Execute(context.Background(), tt.command)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, response)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedResult, response.Result)
			}
		})
	}
}
