package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront/internal/domain"
)

// UserRepository defines persistence access for storefront accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, COALESCE(first_name, ''), COALESCE(last_name, ''), email, COALESCE(password_hash, ''),
        role, COALESCE(profile_image_url, ''), COALESCE(phone, ''), COALESCE(address, ''), created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (first_name, last_name, email, password_hash, role, profile_image_url, phone, address)
        VALUES (NULLIF($1, ''), NULLIF($2, ''), $3, NULLIF($4, ''), $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.ProfileImageURL,
		user.Phone,
		user.Address,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return mapError(err)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET first_name=NULLIF($1, ''), last_name=NULLIF($2, ''), email=$3, password_hash=NULLIF($4, ''),
            role=$5, profile_image_url=NULLIF($6, ''), phone=NULLIF($7, ''), address=NULLIF($8, ''), updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.ProfileImageURL,
		user.Phone,
		user.Address,
		user.ID,
	).Scan(&user.UpdatedAt)
	return mapError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email)=lower($1)`
	return r.scanOne(ctx, query, email)
}

func (r *userRepository) scanOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.ProfileImageURL,
		&user.Phone,
		&user.Address,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}
