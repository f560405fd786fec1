package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront/internal/domain"
)

// NewsletterRepository stores newsletter subscriptions.
type NewsletterRepository interface {
	Create(ctx context.Context, sub *domain.NewsletterSubscription) error
	List(ctx context.Context) ([]domain.NewsletterSubscription, error)
	UpdateStatusByEmail(ctx context.Context, email string, status domain.SubscriptionStatus) (*domain.NewsletterSubscription, error)
}

type newsletterRepository struct {
	pool *pgxpool.Pool
}

// NewNewsletterRepository returns a Postgres-backed implementation.
func NewNewsletterRepository(pool *pgxpool.Pool) NewsletterRepository {
	return &newsletterRepository{pool: pool}
}

const newsletterColumns = `id, email, COALESCE(first_name, ''), COALESCE(last_name, ''), status, created_at`

func (r *newsletterRepository) Create(ctx context.Context, sub *domain.NewsletterSubscription) error {
	const query = `
        INSERT INTO newsletter (email, first_name, last_name, status)
        VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query, sub.Email, sub.FirstName, sub.LastName, sub.Status).
		Scan(&sub.ID, &sub.CreatedAt)
	return mapError(err)
}

func (r *newsletterRepository) List(ctx context.Context) ([]domain.NewsletterSubscription, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+newsletterColumns+` FROM newsletter ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]domain.NewsletterSubscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

func (r *newsletterRepository) UpdateStatusByEmail(ctx context.Context, email string, status domain.SubscriptionStatus) (*domain.NewsletterSubscription, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE newsletter SET status=$1 WHERE lower(email)=lower($2) RETURNING `+newsletterColumns, status, email)
	sub, err := scanSubscription(row)
	if err != nil {
		return nil, mapError(err)
	}
	return sub, nil
}

func scanSubscription(row pgx.Row) (*domain.NewsletterSubscription, error) {
	var s domain.NewsletterSubscription
	if err := row.Scan(&s.ID, &s.Email, &s.FirstName, &s.LastName, &s.Status, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
