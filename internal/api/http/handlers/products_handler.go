package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/api/dto"
	"github.com/spec-kit/storefront/internal/service"
)

// ProductsHandler serves the catalog.
type ProductsHandler struct {
	catalog  *service.CatalogService
	validate *dto.Validator
}

// NewProductsHandler constructs handler.
func NewProductsHandler(catalog *service.CatalogService, validate *dto.Validator) *ProductsHandler {
	return &ProductsHandler{catalog: catalog, validate: validate}
}

// List handles GET /api/products with an optional category filter.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.catalog.List(c.UserContext(), c.Query("category"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductList(products))
}

// Featured handles GET /api/products/featured.
func (h *ProductsHandler) Featured(c *fiber.Ctx) error {
	products, err := h.catalog.Featured(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductList(products))
}

// Get handles GET /api/products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.catalog.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductResponse(product))
}

// Create handles POST /api/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductCreateRequest
	if err := bind(c, h.validate, &req, "invalid product data"); err != nil {
		return err
	}
	product, err := h.catalog.Create(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewProductResponse(product))
}

// Update handles PUT /api/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	var req dto.ProductUpdateRequest
	if err := bind(c, h.validate, &req, "invalid product data"); err != nil {
		return err
	}
	product, err := h.catalog.Update(c.UserContext(), c.Params("id"), req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductResponse(product))
}

// Delete handles DELETE /api/products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(message("Product deleted successfully"))
}
