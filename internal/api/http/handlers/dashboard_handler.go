package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fashion-oms/oms-service/internal/service"
)

// DashboardHandler serves headline stats for the landing page.
type DashboardHandler struct {
	orders *service.OrderService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(orderService *service.OrderService) *DashboardHandler {
	return &DashboardHandler{orders: orderService}
}

// Stats handles GET /dashboard/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.orders.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"orders":       stats.Orders,
			"products":     stats.Products,
			"customers":    stats.Customers,
			"revenue_cent": stats.RevenueCent,
		},
	})
}
