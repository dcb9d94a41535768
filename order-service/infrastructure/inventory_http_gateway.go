package infrastructure

import (
	"context"
	"net/http"

	"github.com/merchly/order-system/order-service/domain"
	"github.com/merchly/order-system/shared/httpclient"
	"github.com/pkg/errors"
)

// reserveConfirmation is the token the inventory service answers with
// when it actually decremented stock. Anything else means the
// reservation did not happen, regardless of the HTTP status.
const reserveConfirmation = "inventory-updated"

// InventoryHTTPGateway talks to the inventory service over HTTP
type InventoryHTTPGateway struct {
	client  *httpclient.Client
	baseURL string
}

// NewInventoryHTTPGateway creates a new InventoryHTTPGateway
func NewInventoryHTTPGateway(client *httpclient.Client, baseURL string) *InventoryHTTPGateway {
	return &InventoryHTTPGateway{
		client:  client,
		baseURL: baseURL,
	}
}

type inventoryConfirmation struct {
	Response string `json:"response"`
}

// CheckStock asks the inventory service which of the given SKUs are in stock
func (g *InventoryHTTPGateway) CheckStock(ctx context.Context, items []domain.Reservation) ([]domain.StockStatus, error) {
	var statuses []domain.StockStatus
	err := g.client.DoJSON(ctx, "inventory.check_stock", http.MethodPost,
		g.baseURL+"/api/inventory/stock", items, &statuses)
	if err != nil {
		return nil, errors.Wrap(err, "stock check failed")
	}
	return statuses, nil
}

// Reserve decrements stock for the given items. The decrement only
// counts as done when the service confirms it.
func (g *InventoryHTTPGateway) Reserve(ctx context.Context, items []domain.Reservation) error {
	var confirmation inventoryConfirmation
	err := g.client.DoJSON(ctx, "inventory.reserve", http.MethodPut,
		g.baseURL+"/api/inventory", items, &confirmation)
	if err != nil {
		return errors.Wrap(err, "inventory reserve failed")
	}
	if confirmation.Response != reserveConfirmation {
		return errors.Wrapf(domain.ErrReservationNotConfirmed,
			"unexpected confirmation %q", confirmation.Response)
	}
	return nil
}

// Rollback returns previously reserved stock
func (g *InventoryHTTPGateway) Rollback(ctx context.Context, items []domain.Reservation) error {
	var confirmation inventoryConfirmation
	err := g.client.DoJSON(ctx, "inventory.rollback", http.MethodPut,
		g.baseURL+"/api/inventory/roll-back", items, &confirmation)
	if err != nil {
		return errors.Wrap(err, "inventory rollback failed")
	}
	if confirmation.Response != reserveConfirmation {
		return errors.Wrapf(domain.ErrRollbackNotConfirmed,
			"unexpected confirmation %q", confirmation.Response)
	}
	return nil
}

var _ domain.InventoryGateway = (*InventoryHTTPGateway)(nil)
