package infrastructure

import (
	"context"
	"net/http"

	"github.com/merchly/order-system/order-service/domain"
	"github.com/merchly/order-system/shared/httpclient"
	"github.com/pkg/errors"
)

// TrackingHTTPGateway talks to the tracking service over HTTP
type TrackingHTTPGateway struct {
	client  *httpclient.Client
	baseURL string
}

// NewTrackingHTTPGateway creates a new TrackingHTTPGateway
func NewTrackingHTTPGateway(client *httpclient.Client, baseURL string) *TrackingHTTPGateway {
	return &TrackingHTTPGateway{
		client:  client,
		baseURL: baseURL,
	}
}

// CreateStatus registers a tracking record for an order
func (g *TrackingHTTPGateway) CreateStatus(ctx context.Context, info domain.TrackingInfo) error {
	var created domain.TrackingInfo
	err := g.client.DoJSON(ctx, "tracking.create_status", http.MethodPost,
		g.baseURL+"/api/tracking/createStatus", info, &created)
	if err != nil {
		return errors.Wrap(err, "tracking status creation failed")
	}
	return nil
}

var _ domain.TrackingGateway = (*TrackingHTTPGateway)(nil)
