package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// FailureKind classifies a remote call failure
type FailureKind string

const (
	KindUnavailable   FailureKind = "unavailable"
	KindTimeout       FailureKind = "timeout"
	KindBadResponse   FailureKind = "bad_response"
	KindBusinessError FailureKind = "business_error"
)

// Error is a typed remote call failure. Callers decide retry policy;
// the client itself never retries.
type Error struct {
	Kind   FailureKind
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Kind, e.Status)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from an error chain
func KindOf(err error) (FailureKind, bool) {
	var remoteErr *Error
	if errors.As(err, &remoteErr) {
		return remoteErr.Kind, true
	}
	return "", false
}

// Client is a traced JSON request/response HTTP client shared by all
// collaborator gateways.
type Client struct {
	tracer     trace.Tracer
	httpClient *http.Client
	timeout    time.Duration
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithTimeout bounds every call the client makes. A caller context with
// an earlier deadline still wins.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a new client. Timeouts are controlled through the
// context and the WithTimeout option, not on the underlying http.Client.
func NewClient(tracer trace.Tracer, opts ...ClientOption) *Client {
	c := &Client{
		tracer: tracer,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// DoJSON performs an HTTP call with a JSON body and decodes a JSON
// response into out. Pass nil body for bodyless requests and nil out to
// discard the response body.
func (c *Client) DoJSON(ctx context.Context, op, method, url string, body, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ctx, span := c.tracer.Start(ctx, op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("http.url", url),
		attribute.String("http.method", method),
	)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "%s: failed to marshal request", op)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		span.RecordError(err)
		return errors.Wrapf(err, "%s: failed to build request", op)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return &Error{Kind: classifyTransportError(err), Op: op, Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= http.StatusInternalServerError {
		callErr := &Error{Kind: KindUnavailable, Op: op, Status: resp.StatusCode}
		span.SetStatus(codes.Error, callErr.Error())
		return callErr
	}
	if resp.StatusCode >= http.StatusBadRequest {
		callErr := &Error{Kind: KindBusinessError, Op: op, Status: resp.StatusCode}
		span.SetStatus(codes.Error, callErr.Error())
		return callErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return &Error{Kind: KindBadResponse, Op: op, Status: resp.StatusCode, Err: err}
	}

	return nil
}

func classifyTransportError(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	return KindUnavailable
}
