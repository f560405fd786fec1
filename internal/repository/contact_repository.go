package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront/internal/domain"
)

// ContactRepository stores contact-form messages.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	List(ctx context.Context) ([]domain.Contact, error)
	UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.Contact, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository returns a Postgres-backed implementation.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

const contactColumns = `id, first_name, last_name, email, COALESCE(phone, ''), message, status, created_at`

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
        INSERT INTO contacts (first_name, last_name, email, phone, message, status)
        VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.Message,
		contact.Status,
	).Scan(&contact.ID, &contact.CreatedAt)
	return mapError(err)
}

func (r *contactRepository) List(ctx context.Context) ([]domain.Contact, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make([]domain.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}
	return contacts, rows.Err()
}

func (r *contactRepository) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.Contact, error) {
	row := r.pool.QueryRow(ctx, `UPDATE contacts SET status=$1 WHERE id=$2 RETURNING `+contactColumns, status, id)
	contact, err := scanContact(row)
	if err != nil {
		return nil, mapError(err)
	}
	return contact, nil
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var c domain.Contact
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Message, &c.Status, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
