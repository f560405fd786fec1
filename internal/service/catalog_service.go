package service

import (
	"context"
	"strings"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/repository"
)

// CatalogService manages products.
type CatalogService struct {
	products repository.ProductRepository
}

// NewCatalogService constructs the service.
func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// List returns products newest first, optionally filtered by category.
func (s *CatalogService) List(ctx context.Context, category string) ([]domain.Product, error) {
	return s.products.List(ctx, strings.TrimSpace(category))
}

func (s *CatalogService) Featured(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListFeatured(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs("product", err)
	}
	return product, nil
}

func (s *CatalogService) Create(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := s.products.Create(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update applies a partial change to an existing product.
func (s *CatalogService) Update(ctx context.Context, id string, update domain.ProductUpdate) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs("product", err)
	}
	update.Apply(product)
	if err := s.products.Update(ctx, product); err != nil {
		return nil, notFoundAs("product", err)
	}
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return notFoundAs("product", s.products.Delete(ctx, id))
}
