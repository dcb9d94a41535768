package domain

import (
	"testing"
	"time"

	"github.com/merchly/order-system/shared/events"
	"github.com/merchly/order-system/shared/models"
	"github.com/stretchr/testify/assert"
)

func testItems() []LineItem {
	return []LineItem{
		{SKU: "SKU-1", Quantity: 2, UnitPrice: models.NewMoney(1500, "USD")},
		{SKU: "SKU-2", Quantity: 1, UnitPrice: models.NewMoney(4000, "USD")},
	}
}

func TestPlaceOrder(t *testing.T) {
	order, err := PlaceOrder("user-123", testItems())

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, TrackingStatusNone, order.TrackingStatus)
	assert.NotEmpty(t, order.OrderNumber)
	assert.NotEqual(t, order.ID.String(), order.OrderNumber)

	assert.Len(t, order.Events(), 1)
	assert.Equal(t, events.OrderPlacedEvent, order.Events()[0].EventType)
}

func TestPlaceOrder_Validation(t *testing.T) {
	_, err := PlaceOrder("", testItems())
	assert.ErrorContains(t, err, "user ID is required")

	_, err = PlaceOrder("user-123", nil)
	assert.ErrorContains(t, err, "at least one line item")

	_, err = PlaceOrder("user-123", []LineItem{{SKU: "SKU-1", Quantity: 0}})
	assert.ErrorContains(t, err, "quantity must be positive")
}

func TestOrder_Complete(t *testing.T) {
	order, _ := PlaceOrder("user-123", testItems())
	version := order.Version.Value

	err := order.Complete()

	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, order.Status)
	assert.Equal(t, TrackingStatusProcessing, order.TrackingStatus)
	assert.Equal(t, version+1, order.Version.Value)
	assert.Equal(t, events.OrderCompletedEvent, order.Events()[1].EventType)

	// Completion is terminal
	assert.Error(t, order.Complete())
	assert.Error(t, order.Cancel())
}

func TestOrder_Cancel(t *testing.T) {
	order, _ := PlaceOrder("user-123", testItems())

	err := order.Cancel()

	assert.NoError(t, err)
	assert.Equal(t, StatusCancelled, order.Status)
	assert.Equal(t, events.OrderCancelledEvent, order.Events()[1].EventType)

	assert.Error(t, order.Cancel())
	assert.Error(t, order.Complete())
}

func TestOrder_Reservations(t *testing.T) {
	order, _ := PlaceOrder("user-123", testItems())

	assert.Equal(t, []Reservation{
		{SKU: "SKU-1", Quantity: 2},
		{SKU: "SKU-2", Quantity: 1},
	}, order.Reservations())
}

func TestOrder_Total(t *testing.T) {
	order, _ := PlaceOrder("user-123", testItems())

	// 2 * 1500 + 1 * 4000
	assert.Equal(t, models.NewMoney(7000, "USD"), order.Total())

	_, err := PlaceOrder("user-123", []LineItem{
		{SKU: "SKU-1", Quantity: 1, UnitPrice: models.NewMoney(100, "USD")},
		{SKU: "SKU-2", Quantity: 1, UnitPrice: models.NewMoney(100, "EUR")},
	})
	assert.ErrorContains(t, err, "share a currency")
}

func TestOrder_StaleSince(t *testing.T) {
	order, _ := PlaceOrder("user-123", testItems())

	assert.False(t, order.StaleSince(order.Timestamps.CreatedAt.Add(-time.Minute)))
	assert.True(t, order.StaleSince(order.Timestamps.CreatedAt.Add(time.Minute)))

	order.Complete()
	assert.False(t, order.StaleSince(order.Timestamps.CreatedAt.Add(time.Minute)))
}
