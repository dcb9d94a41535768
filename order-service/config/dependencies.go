package config

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/merchly/order-system/order-service/application"
	"github.com/merchly/order-system/order-service/handlers"
	"github.com/merchly/order-system/order-service/infrastructure"
	"github.com/merchly/order-system/shared/httpclient"
	sharedinfra "github.com/merchly/order-system/shared/infrastructure"
	"github.com/merchly/order-system/shared/scheduler"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	OrderRepository *infrastructure.PostgresOrderRepository

	// Gateways
	InventoryGateway *infrastructure.InventoryHTTPGateway
	ChargeGateway    *infrastructure.ChargeHTTPGateway
	TrackingGateway  *infrastructure.TrackingHTTPGateway
	CatalogGateway   *infrastructure.CatalogHTTPGateway

	// Use Cases
	PlaceOrder     *application.PlaceOrder
	CompleteOrder  *application.CompleteOrder
	GetOrder       *application.GetOrder
	ViewOrders     *application.ViewOrders
	UpdateTracking *application.UpdateTracking
	RemoveOrder    *application.RemoveOrder
	Reconcile      *application.ReconcilePendingOrders

	// Background tasks
	Reconciler *scheduler.Periodic

	// HTTP Handlers
	OrderHandlers *handlers.OrderHandlers

	// Event Handlers
	OrderEventHandlers *handlers.OrderEventHandlers

	// Infrastructure
	EventPublisher  *sharedinfra.SNSPublisherAdapter
	EventSubscriber *sharedinfra.SQSSubscriberAdapter
}

func BuildDependencies(config *Config, log zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	deps.DB = db

	// Initialize AWS infrastructure
	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}
	deps.EventPublisher = eventPublisher

	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.SQSQueueURL, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	// Initialize repositories and gateways
	deps.OrderRepository = infrastructure.NewPostgresOrderRepository(db)

	remoteClient := httpclient.NewClient(
		otel.Tracer(config.ServiceName),
		httpclient.WithTimeout(config.Collaborators.CallTimeout),
	)
	deps.InventoryGateway = infrastructure.NewInventoryHTTPGateway(remoteClient, config.Collaborators.InventoryURL)
	deps.ChargeGateway = infrastructure.NewChargeHTTPGateway(remoteClient, config.Collaborators.ChargeURL)
	deps.TrackingGateway = infrastructure.NewTrackingHTTPGateway(remoteClient, config.Collaborators.TrackingURL)
	deps.CatalogGateway = infrastructure.NewCatalogHTTPGateway(remoteClient, config.Collaborators.CatalogURL)

	// Initialize use cases
	deps.PlaceOrder = application.NewPlaceOrder(deps.OrderRepository, deps.InventoryGateway, eventPublisher, log)
	deps.CompleteOrder = application.NewCompleteOrder(deps.OrderRepository, deps.ChargeGateway, deps.TrackingGateway, eventPublisher, log)
	deps.GetOrder = application.NewGetOrder(deps.OrderRepository)
	deps.ViewOrders = application.NewViewOrders(deps.OrderRepository, deps.CatalogGateway)
	deps.UpdateTracking = application.NewUpdateTracking(deps.OrderRepository)
	deps.RemoveOrder = application.NewRemoveOrder(deps.OrderRepository)
	deps.Reconcile = application.NewReconcilePendingOrders(
		deps.OrderRepository,
		deps.InventoryGateway,
		eventPublisher,
		config.Reconcile.Staleness,
		log,
	)

	// The sweep is the saga's only compensator, so it runs for the
	// whole process lifetime.
	deps.Reconciler = scheduler.NewPeriodic(
		log,
		scheduler.NewTaskFunc("reconcile-pending-orders", deps.Reconcile.Execute),
		config.Reconcile.Period,
	)

	// Initialize handlers
	deps.OrderHandlers = handlers.NewOrderHandlers(
		deps.PlaceOrder,
		deps.CompleteOrder,
		deps.GetOrder,
		deps.ViewOrders,
		deps.UpdateTracking,
		deps.RemoveOrder,
	)
	deps.OrderEventHandlers = handlers.NewOrderEventHandlers(deps.UpdateTracking)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.Reconciler != nil {
		d.Reconciler.Stop()
	}

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.EventPublisher != nil {
		if err := d.EventPublisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
		}
	}

	if d.EventSubscriber != nil {
		if err := d.EventSubscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event subscriber: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
