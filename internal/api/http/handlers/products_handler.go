package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fashion-oms/oms-service/internal/api/dto"
	"github.com/fashion-oms/oms-service/internal/domain"
	"github.com/fashion-oms/oms-service/internal/repository"
	"github.com/fashion-oms/oms-service/internal/service"
)

// ProductsHandler exposes catalog endpoints.
type ProductsHandler struct {
	catalog *service.CatalogService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(catalogService *service.CatalogService) *ProductsHandler {
	return &ProductsHandler{catalog: catalogService}
}

// List handles GET /products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}

	products, err := h.catalog.ListProducts(c.Context(), filter)
	if err != nil {
		return err
	}

	rows := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		rows = append(rows, productResponse(&p))
	}
	return c.JSON(fiber.Map{"data": rows})
}

// Get handles GET /products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.catalog.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponse(product)})
}

// Create handles POST /products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.catalog.CreateProduct(c.Context(), &domain.Product{
		Name:      req.Name,
		SKU:       req.SKU,
		Category:  req.Category,
		PriceCent: req.PriceCent,
		Stock:     req.Stock,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": productResponse(product)})
}

// Update handles PUT /products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.catalog.UpdateProduct(c.Context(), &domain.Product{
		ID:        c.Params("id"),
		Name:      req.Name,
		SKU:       req.SKU,
		Category:  req.Category,
		PriceCent: req.PriceCent,
		Stock:     req.Stock,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponse(product)})
}

// Delete handles DELETE /products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

func productResponse(p *domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Category:  p.Category,
		PriceCent: p.PriceCent,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
