package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/merchly/order-system/order-service/domain"
	"github.com/merchly/order-system/shared/models"
	"github.com/pkg/errors"
)

// PostgresOrderRepository implements OrderRepository using PostgreSQL.
// Line items live in order_line_items with ON DELETE CASCADE, so order
// deletes are single statements.
type PostgresOrderRepository struct {
	db *sqlx.DB
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository
func NewPostgresOrderRepository(db *sqlx.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// postgresOrder represents an order row
type postgresOrder struct {
	ID             string    `db:"id"`
	OrderNumber    string    `db:"order_number"`
	UserID         string    `db:"user_id"`
	Status         string    `db:"status"`
	TrackingStatus string    `db:"tracking_status"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	Version        int       `db:"version"`
}

// postgresLineItem represents a line item row
type postgresLineItem struct {
	OrderID  string `db:"order_id"`
	SKU      string `db:"sku"`
	Quantity int    `db:"quantity"`
	Price    int64  `db:"price"`
	Currency string `db:"currency"`
}

// Create inserts a new order with its line items in one transaction
func (r *PostgresOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (
			id, order_number, user_id, status, tracking_status,
			created_at, updated_at, version
		) VALUES (
			:id, :order_number, :user_id, :status, :tracking_status,
			:created_at, :updated_at, :version
		)`

	if _, err := tx.NamedExecContext(ctx, orderQuery, r.toPostgres(order)); err != nil {
		return errors.Wrap(err, "failed to insert order")
	}

	itemQuery := `
		INSERT INTO order_line_items (order_id, sku, quantity, price, currency)
		VALUES (:order_id, :sku, :quantity, :price, :currency)`

	for _, item := range order.LineItems {
		row := &postgresLineItem{
			OrderID:  order.ID.String(),
			SKU:      item.SKU,
			Quantity: item.Quantity,
			Price:    item.UnitPrice.Amount,
			Currency: item.UnitPrice.Currency,
		}
		if _, err := tx.NamedExecContext(ctx, itemQuery, row); err != nil {
			return errors.Wrap(err, "failed to insert line item")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit order")
	}

	return nil
}

// FindByID finds an order by internal id
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id models.ID) (*domain.Order, error) {
	return r.findOne(ctx, `
		SELECT id, order_number, user_id, status, tracking_status,
			   created_at, updated_at, version
		FROM orders
		WHERE id = $1`, id.String())
}

// FindByOrderNumber finds an order by its caller-facing order number
func (r *PostgresOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return r.findOne(ctx, `
		SELECT id, order_number, user_id, status, tracking_status,
			   created_at, updated_at, version
		FROM orders
		WHERE order_number = $1`, orderNumber)
}

// FindByUserID finds all orders owned by a user
func (r *PostgresOrderRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	query := `
		SELECT id, order_number, user_id, status, tracking_status,
			   created_at, updated_at, version
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var pgOrders []postgresOrder
	if err := r.db.SelectContext(ctx, &pgOrders, query, userID); err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user ID")
	}

	return r.hydrate(ctx, pgOrders)
}

// FindByStatusOlderThan finds orders in the given status created before
// the cutoff; served by the (status, created_at) index.
func (r *PostgresOrderRepository) FindByStatusOlderThan(ctx context.Context, status domain.Status, cutoff time.Time) ([]*domain.Order, error) {
	query := `
		SELECT id, order_number, user_id, status, tracking_status,
			   created_at, updated_at, version
		FROM orders
		WHERE status = $1 AND created_at < $2
		ORDER BY created_at ASC`

	var pgOrders []postgresOrder
	if err := r.db.SelectContext(ctx, &pgOrders, query, string(status), cutoff); err != nil {
		return nil, errors.Wrap(err, "failed to find orders by status and age")
	}

	return r.hydrate(ctx, pgOrders)
}

// Update persists order mutations guarded by a version compare-and-swap.
// Line items are immutable after creation and are not touched.
func (r *PostgresOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET status = :status, tracking_status = :tracking_status,
			updated_at = :updated_at, version = :version
		WHERE id = :id AND version = :old_version`

	res, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":              order.ID.String(),
		"status":          string(order.Status),
		"tracking_status": string(order.TrackingStatus),
		"updated_at":      order.Timestamps.UpdatedAt,
		"version":         order.Version.Value,
		"old_version":     order.Version.Value - 1,
	})
	if err != nil {
		return errors.Wrap(err, "failed to update order")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read update result")
	}
	if affected == 0 {
		return domain.ErrStaleOrder
	}

	return nil
}

// Delete removes an order unconditionally
func (r *PostgresOrderRepository) Delete(ctx context.Context, id models.ID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id.String()); err != nil {
		return errors.Wrap(err, "failed to delete order")
	}
	return nil
}

// DeletePending removes an order only while it is still PENDING
func (r *PostgresOrderRepository) DeletePending(ctx context.Context, id models.ID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM orders WHERE id = $1 AND status = $2`,
		id.String(), string(domain.StatusPending),
	)
	if err != nil {
		return false, errors.Wrap(err, "failed to delete pending order")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to read delete result")
	}

	return affected > 0, nil
}

func (r *PostgresOrderRepository) findOne(ctx context.Context, query string, arg interface{}) (*domain.Order, error) {
	var pgOrder postgresOrder
	err := r.db.GetContext(ctx, &pgOrder, query, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // order not found
		}
		return nil, errors.Wrap(err, "failed to find order")
	}

	items, err := r.findLineItems(ctx, pgOrder.ID)
	if err != nil {
		return nil, err
	}

	return r.toDomain(&pgOrder, items)
}

// hydrate attaches line items to a page of order rows
func (r *PostgresOrderRepository) hydrate(ctx context.Context, pgOrders []postgresOrder) ([]*domain.Order, error) {
	orders := make([]*domain.Order, len(pgOrders))
	for i, pgOrder := range pgOrders {
		items, err := r.findLineItems(ctx, pgOrder.ID)
		if err != nil {
			return nil, err
		}

		order, err := r.toDomain(&pgOrder, items)
		if err != nil {
			return nil, err
		}
		orders[i] = order
	}
	return orders, nil
}

func (r *PostgresOrderRepository) findLineItems(ctx context.Context, orderID string) ([]postgresLineItem, error) {
	query := `
		SELECT order_id, sku, quantity, price, currency
		FROM order_line_items
		WHERE order_id = $1`

	var items []postgresLineItem
	if err := r.db.SelectContext(ctx, &items, query, orderID); err != nil {
		return nil, errors.Wrap(err, "failed to find line items")
	}
	return items, nil
}

// toPostgres converts a domain order to its row model
func (r *PostgresOrderRepository) toPostgres(order *domain.Order) *postgresOrder {
	return &postgresOrder{
		ID:             order.ID.String(),
		OrderNumber:    order.OrderNumber,
		UserID:         order.UserID,
		Status:         string(order.Status),
		TrackingStatus: string(order.TrackingStatus),
		CreatedAt:      order.Timestamps.CreatedAt,
		UpdatedAt:      order.Timestamps.UpdatedAt,
		Version:        order.Version.Value,
	}
}

// toDomain converts row models to a domain order
func (r *PostgresOrderRepository) toDomain(pgOrder *postgresOrder, pgItems []postgresLineItem) (*domain.Order, error) {
	id, err := models.NewID(pgOrder.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	lineItems := make([]domain.LineItem, len(pgItems))
	for i, item := range pgItems {
		lineItems[i] = domain.LineItem{
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: models.NewMoney(item.Price, item.Currency),
		}
	}

	return &domain.Order{
		ID:             id,
		OrderNumber:    pgOrder.OrderNumber,
		UserID:         pgOrder.UserID,
		LineItems:      lineItems,
		Status:         domain.Status(pgOrder.Status),
		TrackingStatus: domain.TrackingStatus(pgOrder.TrackingStatus),
		Timestamps: models.Timestamps{
			CreatedAt: pgOrder.CreatedAt,
			UpdatedAt: pgOrder.UpdatedAt,
		},
		Version: models.Version{Value: pgOrder.Version},
	}, nil
}
