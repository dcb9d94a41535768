package infrastructure

import (
	"context"
	"net/http"

	"github.com/merchly/order-system/order-service/domain"
	"github.com/merchly/order-system/shared/httpclient"
	"github.com/pkg/errors"
)

// CatalogHTTPGateway talks to the product catalog service over HTTP
type CatalogHTTPGateway struct {
	client  *httpclient.Client
	baseURL string
}

// NewCatalogHTTPGateway creates a new CatalogHTTPGateway
func NewCatalogHTTPGateway(client *httpclient.Client, baseURL string) *CatalogHTTPGateway {
	return &CatalogHTTPGateway{
		client:  client,
		baseURL: baseURL,
	}
}

// GetProduct fetches display metadata for a SKU
func (g *CatalogHTTPGateway) GetProduct(ctx context.Context, sku string) (*domain.Product, error) {
	var product domain.Product
	err := g.client.DoJSON(ctx, "catalog.get_product", http.MethodGet,
		g.baseURL+"/api/product/"+sku, nil, &product)
	if err != nil {
		return nil, errors.Wrapf(err, "product lookup failed for %s", sku)
	}
	return &product, nil
}

var _ domain.CatalogGateway = (*CatalogHTTPGateway)(nil)
