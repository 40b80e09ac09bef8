package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fashion-oms/oms-service/internal/service"
	apperrors "github.com/fashion-oms/oms-service/pkg/util"
)

// VerifyHandler serves the unauthenticated verification link from the
// role-upgrade email.
type VerifyHandler struct {
	upgrades *service.RoleUpgradeService
}

// NewVerifyHandler constructs handler.
func NewVerifyHandler(upgradeService *service.RoleUpgradeService) *VerifyHandler {
	return &VerifyHandler{upgrades: upgradeService}
}

// VerifyRole handles GET /verify-role?token=...
//
// A missing token parameter is rejected before any store access and with a
// different message than an unknown token, per the page the emailed link
// lands on.
func (h *VerifyHandler) VerifyRole(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return apperrors.NewValidationError("no verification token provided", nil)
	}

	err := h.upgrades.Verify(c.Context(), token)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{
			"data": fiber.Map{
				"status":  "role_upgraded",
				"message": "You are now an Admin. Please log in again to access admin features.",
			},
		})
	case errors.Is(err, service.ErrTokenNotFound), errors.Is(err, service.ErrTokenExpired):
		// Consumed, expired and never-issued tokens are indistinguishable
		// to the caller.
		return apperrors.NewValidationError("invalid or expired token", nil)
	case errors.Is(err, service.ErrRoleMismatch):
		return apperrors.NewValidationError("invalid pending role", nil)
	default:
		return apperrors.MapError(err)
	}
}
