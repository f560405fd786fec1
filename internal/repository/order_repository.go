package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront/internal/domain"
)

// OrderRepository defines order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns all orders newest first.
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, COALESCE(user_id::text, ''), customer_name, customer_email, COALESCE(customer_phone, ''),
        customer_address, total_amount, status, payment_method, items, created_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (user_id, customer_name, customer_email, customer_phone, customer_address,
            total_amount, status, payment_method, items)
        VALUES (NULLIF($1, '')::uuid, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		order.UserID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.CustomerAddress,
		order.TotalAmount,
		order.Status,
		order.PaymentMethod,
		order.Items,
	).Scan(&order.ID, &order.CreatedAt)
	return mapError(err)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `UPDATE orders SET status=$1 WHERE id=$2 RETURNING `+orderColumns, status, id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

func (r *orderRepository) query(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.CustomerAddress,
		&o.TotalAmount,
		&o.Status,
		&o.PaymentMethod,
		&o.Items,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}
