package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/fashion-oms/oms-service/internal/domain"
	"github.com/fashion-oms/oms-service/internal/repository"
	apperrors "github.com/fashion-oms/oms-service/pkg/util"
)

// CatalogService manages products and customers.
type CatalogService struct {
	products  repository.ProductRepository
	customers repository.CustomerRepository
}

// NewCatalogService constructs the service.
func NewCatalogService(products repository.ProductRepository, customers repository.CustomerRepository) *CatalogService {
	return &CatalogService{products: products, customers: customers}
}

// CreateProduct validates and stores a catalog item.
func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.Name == "" || product.SKU == "" {
		return nil, apperrors.NewValidationError("name and sku required", nil)
	}
	if product.PriceCent < 0 || product.Stock < 0 {
		return nil, apperrors.NewValidationError("price and stock must be non-negative", nil)
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// UpdateProduct modifies an existing catalog item.
func (s *CatalogService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.PriceCent < 0 || product.Stock < 0 {
		return nil, apperrors.NewValidationError("price and stock must be non-negative", nil)
	}
	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": product.ID})
		}
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// DeleteProduct removes a catalog item.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// GetProduct fetches one catalog item.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// ListProducts returns catalog items.
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return products, nil
}

// CreateCustomer stores a new customer record.
func (s *CatalogService) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer.Name == "" || customer.Email == "" {
		return nil, apperrors.NewValidationError("name and email required", nil)
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, apperrors.MapError(err)
	}
	return customer, nil
}

// ListCustomers returns customer records.
func (s *CatalogService) ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	customers, err := s.customers.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return customers, nil
}
