package infrastructure

import (
	"context"
	"net/http"

	"github.com/merchly/order-system/order-service/domain"
	"github.com/merchly/order-system/shared/httpclient"
	"github.com/pkg/errors"
)

// ChargeHTTPGateway talks to the charge service over HTTP. Errors from
// the transport are passed through unclassified beyond the wrapped
// httpclient error: the caller decides what an unknown charge outcome
// means.
type ChargeHTTPGateway struct {
	client  *httpclient.Client
	baseURL string
}

// NewChargeHTTPGateway creates a new ChargeHTTPGateway
func NewChargeHTTPGateway(client *httpclient.Client, baseURL string) *ChargeHTTPGateway {
	return &ChargeHTTPGateway{
		client:  client,
		baseURL: baseURL,
	}
}

// Charge asks the charge service to capture a payment
func (g *ChargeHTTPGateway) Charge(ctx context.Context, request domain.ChargeRequest) (*domain.ChargeResult, error) {
	var result domain.ChargeResult
	err := g.client.DoJSON(ctx, "charge.capture", http.MethodPost,
		g.baseURL+"/api/charge", request, &result)
	if err != nil {
		return nil, errors.Wrap(err, "charge request failed")
	}
	return &result, nil
}

var _ domain.ChargeGateway = (*ChargeHTTPGateway)(nil)
