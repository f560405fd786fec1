package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// Store bundles every repository behind one storage variant.
// The variant (Postgres or in-memory) is chosen once at startup.
type Store struct {
	Users      UserRepository
	Sessions   SessionRepository
	Products   ProductRepository
	Orders     OrderRepository
	Contacts   ContactRepository
	Newsletter NewsletterRepository
}

// NewPostgresStore returns a Store backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Users:      NewUserRepository(pool),
		Sessions:   NewSessionRepository(pool),
		Products:   NewProductRepository(pool),
		Orders:     NewOrderRepository(pool),
		Contacts:   NewContactRepository(pool),
		Newsletter: NewNewsletterRepository(pool),
	}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrAlreadyExists
		case "22P02":
			// malformed uuid in a lookup
			return ErrNotFound
		}
	}
	return err
}
