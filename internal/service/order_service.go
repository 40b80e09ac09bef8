package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/fashion-oms/oms-service/internal/domain"
	"github.com/fashion-oms/oms-service/internal/events"
	"github.com/fashion-oms/oms-service/internal/repository"
	apperrors "github.com/fashion-oms/oms-service/pkg/util"
)

// OrderService manages customer orders.
type OrderService struct {
	orders     repository.OrderRepository
	customers  repository.CustomerRepository
	products   repository.ProductRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewOrderService constructs the service.
func NewOrderService(orders repository.OrderRepository, customers repository.CustomerRepository, products repository.ProductRepository, dispatcher events.Dispatcher, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orders:     orders,
		customers:  customers,
		products:   products,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// NewOrderItem describes one requested line item.
type NewOrderItem struct {
	ProductID string
	Quantity  int
}

// Create validates the request, prices items from the current catalog, and
// stores the order with its items transactionally.
func (s *OrderService) Create(ctx context.Context, customerID string, items []NewOrderItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("at least one item required", nil)
	}

	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer", map[string]any{"id": customerID})
		}
		return nil, apperrors.MapError(err)
	}

	order := &domain.Order{
		Number:     fmt.Sprintf("ORD-%s", uuid.NewString()[:8]),
		CustomerID: customerID,
		Status:     domain.OrderStatusPending,
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, apperrors.NewValidationError("item quantity must be positive", nil)
		}
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("product", map[string]any{"id": item.ProductID})
			}
			return nil, apperrors.MapError(err)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:     product.ID,
			Quantity:      item.Quantity,
			UnitPriceCent: product.PriceCent,
		})
		order.TotalCent += product.PriceCent * int64(item.Quantity)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderCreated,
			Timestamp: time.Now(),
			Payload: events.OrderCreatedPayload{
				OrderID:    order.ID,
				Number:     order.Number,
				CustomerID: order.CustomerID,
				TotalCent:  order.TotalCent,
			},
		})
	}
	s.logger.Info("order created", zap.String("order_id", order.ID), zap.String("number", order.Number))
	return order, nil
}

// Get fetches an order with its items.
func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return order, nil
}

// List returns orders matching the filter.
func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return orders, nil
}

// UpdateStatus transitions an order to a new status.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !domain.ValidOrderStatus(status) {
		return apperrors.NewValidationError("unknown order status", map[string]any{"status": status})
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("order", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderStatusChanged,
			Timestamp: time.Now(),
			Payload: events.OrderStatusChangedPayload{
				OrderID:   id,
				OldStatus: order.Status,
				NewStatus: status,
			},
		})
	}
	return nil
}

// Delete removes an order and its items.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("order", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// DashboardStats aggregates headline numbers for the landing page.
type DashboardStats struct {
	Orders      int64
	Products    int64
	Customers   int64
	RevenueCent int64
}

// Stats computes dashboard counters.
func (s *OrderService) Stats(ctx context.Context) (*DashboardStats, error) {
	orders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	customers, err := s.customers.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	revenue, err := s.orders.RevenueCent(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &DashboardStats{
		Orders:      orders,
		Products:    products,
		Customers:   customers,
		RevenueCent: revenue,
	}, nil
}
