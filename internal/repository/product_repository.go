package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront/internal/domain"
)

// ProductRepository defines catalog persistence.
type ProductRepository interface {
	// List returns products newest first, optionally restricted to category.
	List(ctx context.Context, category string) ([]domain.Product, error)
	ListFeatured(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, name, COALESCE(name_bengali, ''), description, price, category, image_url,
        COALESCE(ingredients, ''), COALESCE(benefits, ''), in_stock, featured, created_at`

func (r *productRepository) List(ctx context.Context, category string) ([]domain.Product, error) {
	if category == "" {
		return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	}
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE category=$1 ORDER BY created_at DESC`, category)
}

func (r *productRepository) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE featured ORDER BY created_at DESC`)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id)
	product, err := scanProduct(row)
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (name, name_bengali, description, price, category, image_url, ingredients, benefits, in_stock, featured)
        VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		product.Name,
		product.NameBengali,
		product.Description,
		product.Price,
		product.Category,
		product.ImageURL,
		product.Ingredients,
		product.Benefits,
		product.InStock,
		product.Featured,
	).Scan(&product.ID, &product.CreatedAt)
	return mapError(err)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET name=$1, name_bengali=NULLIF($2, ''), description=$3, price=$4, category=$5,
            image_url=$6, ingredients=NULLIF($7, ''), benefits=NULLIF($8, ''), in_stock=$9, featured=$10
        WHERE id=$11`
	cmd, err := r.pool.Exec(ctx, query,
		product.Name,
		product.NameBengali,
		product.Description,
		product.Price,
		product.Category,
		product.ImageURL,
		product.Ingredients,
		product.Benefits,
		product.InStock,
		product.Featured,
		product.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) query(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.NameBengali,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.ImageURL,
		&p.Ingredients,
		&p.Benefits,
		&p.InStock,
		&p.Featured,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
