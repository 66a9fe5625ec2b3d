package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"food-marketplace/internal/data/entity"
	"food-marketplace/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id int64) (*entity.Order, error)
	List(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, error)
	SetPreference(ctx context.Context, id int64, preferenceID string) error

	// Business queries
	FindLatestByPreference(ctx context.Context, preferenceID string) (*entity.Order, error)
	FindLatestPending(ctx context.Context) (*entity.Order, error)
	AcceptIfReady(ctx context.Context, id, courierID int64) (bool, error)
	UpdateState(ctx context.Context, id int64, state entity.OrderState, preferenceID *string) (entity.OrderState, error)
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `
	id, establishment_id, total, items_json, state, preference_id, courier_id,
	customer_data_json, delivery_address, customer_phone, notes, created_at, updated_at
`

// Create inserts the order in its initial state and fills ID and timestamps
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (establishment_id, total, items_json, state, customer_data_json,
		                    delivery_address, customer_phone, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	var customerData any
	if len(order.CustomerData) > 0 {
		customerData = order.CustomerData
	}

	err = r.db.QueryRow(ctx, query,
		order.EstablishmentID,
		order.Total,
		items,
		order.State,
		customerData,
		order.DeliveryAddress,
		order.CustomerPhone,
		order.Notes,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.Int64("establishment_id", order.EstablishmentID),
			zap.Float64("total", order.Total),
		)
		return fmt.Errorf("create order for establishment %d: %w", order.EstablishmentID, err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID", zap.Error(err), zap.Int64("order_id", id))
		return nil, fmt.Errorf("find order by ID %d: %w", id, err)
	}

	return order, nil
}

// List returns orders newest first, bounded by filter.Limit
func (r *orderRepository) List(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + orderColumns + ` FROM orders WHERE 1=1`)

	args := []interface{}{}
	argCount := 1

	if filter.EstablishmentID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND establishment_id = $%d", argCount))
		args = append(args, *filter.EstablishmentID)
		argCount++
	}

	if filter.State != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND state = $%d", argCount))
		args = append(args, *filter.State)
		argCount++
	}

	if filter.CourierID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND courier_id = $%d", argCount))
		args = append(args, *filter.CourierID)
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY id DESC LIMIT $%d", argCount))
	args = append(args, filter.Limit)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to list orders", zap.Error(err), zap.Int("limit", filter.Limit))
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []*entity.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) SetPreference(ctx context.Context, id int64, preferenceID string) error {
	query := `UPDATE orders SET preference_id = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, preferenceID)
	if err != nil {
		r.log.Error("Failed to set preference", zap.Error(err), zap.Int64("order_id", id))
		return fmt.Errorf("set preference on order %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}

	return nil
}

func (r *orderRepository) FindLatestByPreference(ctx context.Context, preferenceID string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE preference_id = $1 ORDER BY id DESC LIMIT 1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, preferenceID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by preference", zap.Error(err), zap.String("preference_id", preferenceID))
		return nil, fmt.Errorf("find order by preference %s: %w", preferenceID, err)
	}

	return order, nil
}

func (r *orderRepository) FindLatestPending(ctx context.Context) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE state = $1 ORDER BY id DESC LIMIT 1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, entity.OrderPending))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find latest pending order", zap.Error(err))
		return nil, fmt.Errorf("find latest pending order: %w", err)
	}

	return order, nil
}

// AcceptIfReady assigns the courier and moves the order to EN_CAMINO in one statement.
// It reports false when the order does not exist or is not LISTO.
func (r *orderRepository) AcceptIfReady(ctx context.Context, id, courierID int64) (bool, error) {
	query := `
		UPDATE orders
		SET courier_id = $2, state = $3, updated_at = NOW()
		WHERE id = $1 AND state = $4
	`

	result, err := r.db.Exec(ctx, query, id, courierID, entity.OrderEnRoute, entity.OrderReady)
	if err != nil {
		r.log.Error("Failed to accept order",
			zap.Error(err),
			zap.Int64("order_id", id),
			zap.Int64("courier_id", courierID),
		)
		return false, fmt.Errorf("accept order %d: %w", id, err)
	}

	return result.RowsAffected() == 1, nil
}

// UpdateState writes state (and preferenceID when not nil) and returns the state the row
// had before the write. A missing order yields ErrNotFound.
func (r *orderRepository) UpdateState(ctx context.Context, id int64, state entity.OrderState, preferenceID *string) (entity.OrderState, error) {
	query := `
		UPDATE orders o
		SET state = $2,
		    preference_id = COALESCE($3, o.preference_id),
		    updated_at = NOW()
		FROM (SELECT id, state FROM orders WHERE id = $1 FOR UPDATE) prev
		WHERE o.id = prev.id
		RETURNING prev.state
	`

	var previous entity.OrderState
	err := r.db.QueryRow(ctx, query, id, state, preferenceID).Scan(&previous)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to update order state",
			zap.Error(err),
			zap.Int64("order_id", id),
			zap.String("state", string(state)),
		)
		return "", fmt.Errorf("update order %d state to %s: %w", id, state, err)
	}

	return previous, nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		order entity.Order
		items []byte
	)

	err := row.Scan(
		&order.ID,
		&order.EstablishmentID,
		&order.Total,
		&items,
		&order.State,
		&order.PreferenceID,
		&order.CourierID,
		&order.CustomerData,
		&order.DeliveryAddress,
		&order.CustomerPhone,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Items = []entity.OrderItem{}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("decode items of order %d: %w", order.ID, err)
		}
	}

	return &order, nil
}
