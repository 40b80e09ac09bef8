package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fashion-oms/oms-service/internal/api/dto"
	"github.com/fashion-oms/oms-service/internal/domain"
	"github.com/fashion-oms/oms-service/internal/repository"
	"github.com/fashion-oms/oms-service/internal/service"
)

// OrdersHandler exposes order endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orderService}
}

// List handles GET /orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	filter := repository.OrderFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if status := c.Query("status"); status != "" {
		s := domain.OrderStatus(status)
		filter.Status = &s
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		filter.CustomerID = &customerID
	}

	orders, err := h.orders.List(c.Context(), filter)
	if err != nil {
		return err
	}

	rows := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, orderResponse(&order))
	}
	return c.JSON(fiber.Map{"data": rows})
}

// Get handles GET /orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	order, err := h.orders.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponse(order)})
}

// Create handles POST /orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	var req dto.OrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.CustomerID == "" {
		return fiber.NewError(http.StatusBadRequest, "customer_id required")
	}

	items := make([]service.NewOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.NewOrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.orders.Create(c.Context(), req.CustomerID, items)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": orderResponse(order)})
}

// UpdateStatus handles PATCH /orders/:id/status.
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.OrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Status == "" {
		return fiber.NewError(http.StatusBadRequest, "status required")
	}

	if err := h.orders.UpdateStatus(c.Context(), c.Params("id"), domain.OrderStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "updated"}})
}

// Delete handles DELETE /orders/:id.
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	if err := h.orders.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

func orderResponse(order *domain.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:         order.ID,
		Number:     order.Number,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
		TotalCent:  order.TotalCent,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			UnitPriceCent: item.UnitPriceCent,
		})
	}
	return resp
}
