package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fashion-oms/oms-service/internal/api/dto"
	"github.com/fashion-oms/oms-service/internal/domain"
	"github.com/fashion-oms/oms-service/internal/service"
)

// CustomersHandler exposes customer endpoints.
type CustomersHandler struct {
	catalog *service.CatalogService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(catalogService *service.CatalogService) *CustomersHandler {
	return &CustomersHandler{catalog: catalogService}
}

// List handles GET /customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	customers, err := h.catalog.ListCustomers(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}

	rows := make([]dto.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		rows = append(rows, customerResponse(&customer))
	}
	return c.JSON(fiber.Map{"data": rows})
}

// Create handles POST /customers.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	customer, err := h.catalog.CreateCustomer(c.Context(), &domain.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": customerResponse(customer)})
}

func customerResponse(customer *domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		Phone:     customer.Phone,
		CreatedAt: customer.CreatedAt,
	}
}
