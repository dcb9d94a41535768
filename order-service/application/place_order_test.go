package application

import (
	"context"
	"testing"

	"github.com/merchly/order-system/order-service/domain"
	"github.com/merchly/order-system/order-service/mocks"
	"github.com/merchly/order-system/shared/events"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPlaceOrder_Execute(t *testing.T) {
	validCommand := func() *PlaceOrderCommand {
		return &PlaceOrderCommand{
			UserID: "user-123",
			Items: []PlaceOrderItem{
				{SKU: "SKU-1", Quantity: 2, Price: 1500, Currency: "USD"},
				{SKU: "SKU-2", Quantity: 1, Price: 4000, Currency: "USD"},
			},
		}
	}

	allInStock := []domain.StockStatus{
		{SKU: "SKU-1", InStock: true},
		{SKU: "SKU-2", InStock: true},
	}

	tests := []struct {
		name          string
		command       *PlaceOrderCommand
		setupMocks    func(*mocks.MockOrderRepository, *mocks.MockInventoryGateway, *mocks.MockPublisher)
		expectedError string
	}{
		{
			name:    "successful order placement",
			command: validCommand(),
			setupMocks: func(repo *mocks.MockOrderRepository, inventory *mocks.MockInventoryGateway, publisher *mocks.MockPublisher) {
				inventory.EXPECT().CheckStock(mock.Anything, mock.Anything).Return(allInStock, nil).Once()
				inventory.EXPECT().Reserve(mock.Anything, mock.Anything).Return(nil).Once()
				repo.EXPECT().Create(mock.Anything, mock.MatchedBy(func(order *domain.Order) bool {
					return order.Status == domain.StatusPending && len(order.LineItems) == 2
				})).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.EventType == events.OrderPlacedEvent
				})).Return(nil).Once()
			},
			expectedError: "",
		},
		{
			name:    "publish failure does not fail placement",
			command: validCommand(),
			setupMocks: func(repo *mocks.MockOrderRepository, inventory *mocks.MockInventoryGateway, publisher *mocks.MockPublisher) {
				inventory.EXPECT().CheckStock(mock.Anything, mock.Anything).Return(allInStock, nil).Once()
				inventory.EXPECT().Reserve(mock.Anything, mock.Anything).Return(nil).Once()
				repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).
					Return(errors.New("sns unavailable")).Once()
			},
			expectedError: "",
		},
		{
			name:    "some items out of stock",
			command: validCommand(),
			setupMocks: func(repo *mocks.MockOrderRepository, inventory *mocks.MockInventoryGateway, publisher *mocks.MockPublisher) {
				inventory.EXPECT().CheckStock(mock.Anything, mock.Anything).Return([]domain.StockStatus{
					{SKU: "SKU-1", InStock: true},
					{SKU: "SKU-2", InStock: false},
				}, nil).Once()
				// No Reserve, no Create: placement aborts before any write
			},
			expectedError: "not in stock",
		},
		{
			name:    "stock check failure",
			command: validCommand(),
			setupMocks: func(repo *mocks.MockOrderRepository, inventory *mocks.MockInventoryGateway, publisher *mocks.MockPublisher) {
				inventory.EXPECT().CheckStock(mock.Anything, mock.Anything).
					Return(nil, errors.New("inventory unreachable")).Once()
			},
			expectedError: "failed to check stock",
		},
		{
			name:    "reservation failure",
			command: validCommand(),
			setupMocks: func(repo *mocks.MockOrderRepository, inventory *mocks.MockInventoryGateway, publisher *mocks.MockPublisher) {
				inventory.EXPECT().CheckStock(mock.Anything, mock.Anything).Return(allInStock, nil).Once()
				inventory.EXPECT().Reserve(mock.Anything, mock.Anything).
					Return(domain.ErrReservationNotConfirmed).Once()
			},
			expectedError: "failed to reserve inventory",
		},
		{
			name:    "persist failure after reservation",
			command: validCommand(),
			setupMocks: func(repo *mocks.MockOrderRepository, inventory *mocks.MockInventoryGateway, publisher *mocks.MockPublisher) {
				inventory.EXPECT().CheckStock(mock.Anything, mock.Anything).Return(allInStock, nil).Once()
				inventory.EXPECT().Reserve(mock.Anything, mock.Anything).Return(nil).Once()
				repo.EXPECT().Create(mock.Anything, mock.Anything).
					Return(errors.New("database error")).Once()
			},
			expectedError: "failed to save order",
		},
		{
			name: "validation error - missing user ID",
			command: &PlaceOrderCommand{
				Items: []PlaceOrderItem{{SKU: "SKU-1", Quantity: 1, Price: 100, Currency: "USD"}},
			},
			setupMocks: func(repo *mocks.MockOrderRepository, inventory *mocks.MockInventoryGateway, publisher *mocks.MockPublisher) {
				// No expectations - should fail validation
			},
			expectedError: "user ID is required",
		},
		{
			name: "validation error - no items",
			command: &PlaceOrderCommand{
				UserID: "user-123",
			},
			setupMocks: func(repo *mocks.MockOrderRepository, inventory *mocks.MockInventoryGateway, publisher *mocks.MockPublisher) {
				// No expectations - should fail validation
			},
			expectedError: "at least one item is required",
		},
		{
			name: "validation error - mixed currencies rejected before any reservation",
			command: &PlaceOrderCommand{
				UserID: "user-123",
				Items: []PlaceOrderItem{
					{SKU: "SKU-1", Quantity: 1, Price: 100, Currency: "USD"},
					{SKU: "SKU-2", Quantity: 1, Price: 100, Currency: "EUR"},
				},
			},
			setupMocks: func(repo *mocks.MockOrderRepository, inventory *mocks.MockInventoryGateway, publisher *mocks.MockPublisher) {
				// No CheckStock and no Reserve: aborting after a confirmed
				// reservation would leak it with no order row for the sweep
				// to compensate
			},
			expectedError: "items must share a currency",
		},
		{
			name: "validation error - non-positive quantity",
			command: &PlaceOrderCommand{
				UserID: "user-123",
				Items:  []PlaceOrderItem{{SKU: "SKU-1", Quantity: 0, Price: 100, Currency: "USD"}},
			},
			setupMocks: func(repo *mocks.MockOrderRepository, inventory *mocks.MockInventoryGateway, publisher *mocks.MockPublisher) {
				// No expectations - should fail validation
			},
			expectedError: "quantity must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockOrderRepository(t)
			mockInventory := mocks.NewMockInventoryGateway(t)
			mockPublisher := mocks.NewMockPublisher(t)

			tt.setupMocks(mockRepo, mockInventory, mockPublisher)

			useCase := NewPlaceOrder(mockRepo, mockInventory, mockPublisher, zerolog.Nop())

			response, err := useCase.Execute(context.Background(), tt.command)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, response)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, response.OrderID)
				assert.NotEmpty(t, response.OrderNumber)
				assert.Len(t, response.Reserved, len(tt.command.Items))
			}
		})
	}
}

func TestPlaceOrder_Execute_OutOfStockCarriesSKUs(t *testing.T) {
	mockRepo := mocks.NewMockOrderRepository(t)
	mockInventory := mocks.NewMockInventoryGateway(t)
	mockPublisher := mocks.NewMockPublisher(t)

	mockInventory.EXPECT().CheckStock(mock.Anything, mock.Anything).Return([]domain.StockStatus{
		{SKU: "SKU-1", InStock: false},
		{SKU: "SKU-2", InStock: true},
		{SKU: "SKU-3", InStock: false},
	}, nil).Once()

	useCase := NewPlaceOrder(mockRepo, mockInventory, mockPublisher, zerolog.Nop())

	_, err := useCase.Execute(context.Background(), &PlaceOrderCommand{
		UserID: "user-123",
		Items: []PlaceOrderItem{
			{SKU: "SKU-1", Quantity: 1, Price: 100, Currency: "USD"},
			{SKU: "SKU-2", Quantity: 1, Price: 100, Currency: "USD"},
			{SKU: "SKU-3", Quantity: 1, Price: 100, Currency: "USD"},
		},
	})

	var stockErr *domain.ItemsNotInStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, []string{"SKU-1", "SKU-3"}, stockErr.Unavailable)
}
