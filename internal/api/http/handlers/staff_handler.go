package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fashion-oms/oms-service/internal/api/dto"
	"github.com/fashion-oms/oms-service/internal/auth"
	"github.com/fashion-oms/oms-service/internal/domain"
	"github.com/fashion-oms/oms-service/internal/email"
	"github.com/fashion-oms/oms-service/internal/service"
	apperrors "github.com/fashion-oms/oms-service/pkg/util"
)

// StaffHandler exposes the admin staff-management endpoints, including the
// role-upgrade initiation. Routes are mounted behind the auth middleware
// plus RequireRole(ADMIN), so caller privilege is settled before any
// handler here runs.
type StaffHandler struct {
	staff    *service.StaffService
	upgrades *service.RoleUpgradeService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService, upgradeService *service.RoleUpgradeService) *StaffHandler {
	return &StaffHandler{staff: staffService, upgrades: upgradeService}
}

// List handles GET /admin/staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	employees, err := h.staff.List(c.Context())
	if err != nil {
		return err
	}

	rows := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, employeeResponse(&e))
	}
	return c.JSON(fiber.Map{"data": rows})
}

// Delete handles DELETE /admin/staff/:id.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	var actor *domain.Employee
	if principal != nil {
		actor = principal.Employee
	}

	if err := h.staff.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// InitiateRoleUpgrade handles POST /admin/staff/:id/role-upgrade.
func (h *StaffHandler) InitiateRoleUpgrade(c *fiber.Ctx) error {
	var req dto.RoleUpgradeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid payload")
		}
	}

	err := h.upgrades.Initiate(c.Context(), c.Params("id"), req.Email)
	switch {
	case err == nil:
		return c.Status(http.StatusAccepted).JSON(fiber.Map{
			"data": fiber.Map{"status": "verification_email_sent"},
		})
	case errors.Is(err, service.ErrEmployeeNotFound):
		return apperrors.NewNotFound("employee", map[string]any{"id": c.Params("id")})
	case errors.Is(err, service.ErrAlreadyAtRole):
		return apperrors.NewValidationError(err.Error(), nil)
	case errors.Is(err, email.ErrNotConfigured):
		return apperrors.NewNotConfigured("email service")
	case errors.Is(err, service.ErrNotificationFailed):
		return apperrors.NewDomainError("NOTIFICATION_FAILED",
			"verification email could not be sent; re-initiate to issue a new link",
			http.StatusBadGateway, nil)
	default:
		return apperrors.MapError(err)
	}
}

func employeeResponse(e *domain.Employee) dto.EmployeeResponse {
	var pending *string
	if e.PendingRole != nil {
		value := string(*e.PendingRole)
		pending = &value
	}
	return dto.EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		Role:        string(e.Role),
		PendingRole: pending,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
