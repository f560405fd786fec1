package dto

import (
	"time"

	"github.com/spec-kit/storefront/internal/domain"
)

// ProductCreateRequest payload for new products.
type ProductCreateRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	NameBengali string  `json:"nameBengali" validate:"max=200"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gt=0"`
	Category    string  `json:"category" validate:"required,max=50"`
	ImageURL    string  `json:"imageUrl" validate:"required"`
	Ingredients string  `json:"ingredients"`
	Benefits    string  `json:"benefits"`
	InStock     *bool   `json:"inStock"`
	Featured    bool    `json:"featured"`
}

// ToDomain converts the request; inStock defaults to true.
func (r ProductCreateRequest) ToDomain() domain.Product {
	inStock := true
	if r.InStock != nil {
		inStock = *r.InStock
	}
	return domain.Product{
		Name:        r.Name,
		NameBengali: r.NameBengali,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		Ingredients: r.Ingredients,
		Benefits:    r.Benefits,
		InStock:     inStock,
		Featured:    r.Featured,
	}
}

// ProductUpdateRequest is a partial product change.
type ProductUpdateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	NameBengali *string  `json:"nameBengali" validate:"omitempty,max=200"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    *string  `json:"category" validate:"omitempty,min=1,max=50"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,min=1"`
	Ingredients *string  `json:"ingredients"`
	Benefits    *string  `json:"benefits"`
	InStock     *bool    `json:"inStock"`
	Featured    *bool    `json:"featured"`
}

// ToDomain converts the request.
func (r ProductUpdateRequest) ToDomain() domain.ProductUpdate {
	return domain.ProductUpdate{
		Name:        r.Name,
		NameBengali: r.NameBengali,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		Ingredients: r.Ingredients,
		Benefits:    r.Benefits,
		InStock:     r.InStock,
		Featured:    r.Featured,
	}
}

// ProductResponse is the public product shape.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	NameBengali string    `json:"nameBengali"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	Ingredients string    `json:"ingredients"`
	Benefits    string    `json:"benefits"`
	InStock     bool      `json:"inStock"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewProductResponse maps a product.
func NewProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		NameBengali: p.NameBengali,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Ingredients: p.Ingredients,
		Benefits:    p.Benefits,
		InStock:     p.InStock,
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt,
	}
}

// NewProductList maps products.
func NewProductList(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return out
}
