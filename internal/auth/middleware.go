package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/fashion-oms/oms-service/internal/domain"
	"github.com/fashion-oms/oms-service/internal/repository"
	apperrors "github.com/fashion-oms/oms-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated employee.
type Principal struct {
	Employee *domain.Employee
	Role     domain.EmployeeRole
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens    *TokenManager
	employees repository.EmployeeRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, employees repository.EmployeeRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, employees: employees}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	// The role claim in the JWT may be stale after a verified upgrade;
	// the freshly loaded record is authoritative.
	employee, err := m.employees.GetByID(c.Context(), claims.EmployeeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("employee not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{Employee: employee, Role: employee.Role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated employee.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
