package application

import (
	"context"
	"time"

	"github.com/merchly/order-system/order-service/domain"
	"github.com/merchly/order-system/shared/events"
	"github.com/merchly/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

// ReconcilePendingOrders is the compensation half of the order saga: it
// sweeps orders stuck in PENDING past the staleness window, rolls their
// inventory reservation back, and only then removes them. It is the one
// place failures are retried automatically, by virtue of the next sweep.
type ReconcilePendingOrders struct {
	orderRepository domain.OrderRepository
	inventory       domain.InventoryGateway
	eventPublisher  events.Publisher
	staleness       time.Duration
	now             func() time.Time
	log             zerolog.Logger
}

// ReconcileOption configures the reconciler
type ReconcileOption func(*ReconcilePendingOrders)

// WithClock overrides the time source (used in tests)
func WithClock(now func() time.Time) ReconcileOption {
	return func(uc *ReconcilePendingOrders) {
		uc.now = now
	}
}

// NewReconcilePendingOrders creates a new ReconcilePendingOrders use case
func NewReconcilePendingOrders(
	orderRepository domain.OrderRepository,
	inventory domain.InventoryGateway,
	eventPublisher events.Publisher,
	staleness time.Duration,
	log zerolog.Logger,
	opts ...ReconcileOption,
) *ReconcilePendingOrders {
	uc := &ReconcilePendingOrders{
		orderRepository: orderRepository,
		inventory:       inventory,
		eventPublisher:  eventPublisher,
		staleness:       staleness,
		now:             time.Now,
		log:             log,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Execute runs one compensation sweep. Per-order failures are recovered
// locally by leaving the order for the next sweep; only the scan itself
// can fail the run.
func (uc *ReconcilePendingOrders) Execute(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, "reconcile_pending_orders")
	defer span.End()

	cutoff := uc.now().Add(-uc.staleness)

	// Snapshot candidates first; the store is never held locked across
	// the outbound rollback calls below.
	stale, err := uc.orderRepository.FindByStatusOlderThan(ctx, domain.StatusPending, cutoff)
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to scan for stale pending orders")
	}

	telemetry.RecordGauge(ctx, "orders_pending_stale", "Stale pending orders found by sweep", float64(len(stale)))

	for _, order := range stale {
		uc.compensate(ctx, order)
	}

	return nil
}

// compensate rolls back one order's reservation and removes the order.
// Rollback strictly precedes deletion: deleting first would leak the
// reservation permanently, while a confirmed rollback with a failed
// delete is retried safely because the collaborator's rollback is
// idempotent.
func (uc *ReconcilePendingOrders) compensate(ctx context.Context, order *domain.Order) {
	if err := uc.inventory.Rollback(ctx, order.Reservations()); err != nil {
		uc.log.Warn().Err(err).
			Str("order_number", order.OrderNumber).
			Msg("inventory rollback failed, deferring to next sweep")
		return
	}

	deleted, err := uc.orderRepository.DeletePending(ctx, order.ID)
	if err != nil {
		uc.log.Error().Err(err).
			Str("order_number", order.OrderNumber).
			Msg("failed to delete compensated order, deferring to next sweep")
		return
	}
	if !deleted {
		// The order left PENDING between scan and delete (completed
		// concurrently); its reservation now belongs to a real order.
		uc.log.Info().
			Str("order_number", order.OrderNumber).
			Msg("order no longer pending, skipping compensation")
		return
	}

	telemetry.RecordCounter(ctx, "orders_compensated_total", "Orders rolled back and removed by sweep", 1,
		attribute.String("reason", "stale_pending"),
	)

	if err := order.Cancel(); err == nil {
		if err := uc.eventPublisher.Publish(ctx, order.Events()...); err != nil {
			uc.log.Warn().Err(err).
				Str("order_number", order.OrderNumber).
				Msg("order compensated but cancellation publish failed")
		}
	}

	uc.log.Info().
		Str("order_number", order.OrderNumber).
		Str("user_id", order.UserID).
		Msg("stale pending order compensated")
}
