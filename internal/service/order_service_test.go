package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fashion-oms/oms-service/internal/domain"
	"github.com/fashion-oms/oms-service/internal/repository"
	"github.com/fashion-oms/oms-service/internal/service"
	apperrors "github.com/fashion-oms/oms-service/pkg/util"
)

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
	nextID int
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *memOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	order.ID = fmt.Sprintf("ord-%d", r.nextID)
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *order
	return &clone, nil
}

func (r *memOrderRepo) List(_ context.Context, _ repository.OrderFilter) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Order
	for _, order := range r.orders {
		result = append(result, *order)
	}
	return result, nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	order.Status = status
	return nil
}

func (r *memOrderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.orders, id)
	return nil
}

func (r *memOrderRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

func (r *memOrderRepo) RevenueCent(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, order := range r.orders {
		if order.Status != domain.OrderStatusCancelled {
			total += order.TotalCent
		}
	}
	return total, nil
}

type memCustomerRepo struct {
	customers map[string]*domain.Customer
}

func (r *memCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return customer, nil
}

func (r *memCustomerRepo) List(_ context.Context, _, _ int) ([]domain.Customer, error) {
	var result []domain.Customer
	for _, customer := range r.customers {
		result = append(result, *customer)
	}
	return result, nil
}

func (r *memCustomerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.customers)), nil
}

type memProductRepo struct {
	products map[string]*domain.Product
}

func (r *memProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *memProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.products[product.ID] = product
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return product, nil
}

func (r *memProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]domain.Product, error) {
	var result []domain.Product
	for _, product := range r.products {
		result = append(result, *product)
	}
	return result, nil
}

func (r *memProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func newOrderFixture() (*service.OrderService, *memOrderRepo) {
	orders := newMemOrderRepo()
	customers := &memCustomerRepo{customers: map[string]*domain.Customer{
		"c1": {ID: "c1", Name: "Ada", Email: "ada@example.com"},
	}}
	products := &memProductRepo{products: map[string]*domain.Product{
		"p1": {ID: "p1", Name: "Silk Scarf", SKU: "SS-01", PriceCent: 2500, Stock: 10},
		"p2": {ID: "p2", Name: "Wool Coat", SKU: "WC-01", PriceCent: 12000, Stock: 3},
	}}
	svc := service.NewOrderService(orders, customers, products, nil, nil)
	return svc, orders
}

func TestOrderService(t *testing.T) {
	ctx := context.Background()

	t.Run("creates order priced from catalog", func(t *testing.T) {
		svc, _ := newOrderFixture()

		order, err := svc.Create(ctx, "c1", []service.NewOrderItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2*2500+12000), order.TotalCent)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.Len(t, order.Items, 2)
		assert.NotEmpty(t, order.Number)
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		svc, _ := newOrderFixture()

		_, err := svc.Create(ctx, "c1", nil)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	})

	t.Run("rejects unknown customer", func(t *testing.T) {
		svc, _ := newOrderFixture()

		_, err := svc.Create(ctx, "ghost", []service.NewOrderItem{{ProductID: "p1", Quantity: 1}})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		svc, _ := newOrderFixture()

		_, err := svc.Create(ctx, "c1", []service.NewOrderItem{{ProductID: "p1", Quantity: 0}})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	})

	t.Run("status transition and stats", func(t *testing.T) {
		svc, orders := newOrderFixture()

		order, err := svc.Create(ctx, "c1", []service.NewOrderItem{{ProductID: "p1", Quantity: 1}})
		require.NoError(t, err)

		require.NoError(t, svc.UpdateStatus(ctx, order.ID, domain.OrderStatusPaid))
		stored, err := orders.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusPaid, stored.Status)

		require.Error(t, svc.UpdateStatus(ctx, order.ID, domain.OrderStatus("BOGUS")))

		stats, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.Orders)
		assert.Equal(t, int64(2500), stats.RevenueCent)
	})
}
