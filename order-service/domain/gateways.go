package domain

import (
	"context"

	"github.com/merchly/order-system/shared/models"
)

// StockStatus is one SKU's answer from the inventory stock check
type StockStatus struct {
	SKU     string `json:"sku"`
	InStock bool   `json:"in_stock"`
}

// InventoryGateway is the inventory collaborator contract. The stock
// check is advisory only; Reserve's own confirmation is the sole source
// of truth for whether stock was decremented. Rollback must be
// idempotent on the collaborator side.
type InventoryGateway interface {
	CheckStock(ctx context.Context, items []Reservation) ([]StockStatus, error)
	Reserve(ctx context.Context, items []Reservation) error
	Rollback(ctx context.Context, items []Reservation) error
}

// ChargeRequest is the payment capture request passed through to the
// charge collaborator
type ChargeRequest struct {
	Token       string       `json:"token"`
	Amount      models.Money `json:"amount"`
	Description string       `json:"description"`
}

// ChargeResult is the charge collaborator's verdict
type ChargeResult struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}

// Succeeded reports whether the charge was captured
func (r *ChargeResult) Succeeded() bool {
	return r.Status == "succeeded"
}

// ChargeGateway captures payments. Transport failures must surface to
// the caller untouched: a charge attempt with an unknown outcome can
// never be treated as either success or failure.
type ChargeGateway interface {
	Charge(ctx context.Context, request ChargeRequest) (*ChargeResult, error)
}

// TrackingInfo correlates an order number with a tracking status. It is
// both sent to the tracking collaborator and accepted back from it.
type TrackingInfo struct {
	OrderNumber string         `json:"order_number"`
	Status      TrackingStatus `json:"status"`
}

// TrackingGateway creates tracking records at the tracking collaborator
type TrackingGateway interface {
	CreateStatus(ctx context.Context, info TrackingInfo) error
}

// Product is the catalog collaborator's display metadata for a SKU
type Product struct {
	SKU         string       `json:"skucode"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       models.Money `json:"price"`
	Category    string       `json:"category"`
}

// CatalogGateway looks up product display metadata
type CatalogGateway interface {
	GetProduct(ctx context.Context, sku string) (*Product, error)
}
