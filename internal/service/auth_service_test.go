package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fashion-oms/oms-service/internal/config"
	"github.com/fashion-oms/oms-service/internal/domain"
	"github.com/fashion-oms/oms-service/internal/service"
)

func newAuthService(repo *memEmployeeRepo) *service.AuthService {
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 5
	cfg.Auth.BcryptCost = 4 // min cost keeps the test fast
	return service.NewAuthService(cfg, repo)
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()

	t.Run("signup creates a lowest tier account", func(t *testing.T) {
		repo := newMemEmployeeRepo()
		svc := newAuthService(repo)

		employee, token, _, err := svc.Signup(ctx, "Sam Lee", "sam@example.com", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, domain.EmployeeRoleStaff, employee.Role)
		assert.NotEmpty(t, token)
		assert.NotEqual(t, "hunter22", employee.PasswordHash)
	})

	t.Run("signup rejects duplicate email", func(t *testing.T) {
		repo := newMemEmployeeRepo()
		svc := newAuthService(repo)

		_, _, _, err := svc.Signup(ctx, "Sam Lee", "sam@example.com", "hunter22")
		require.NoError(t, err)

		_, _, _, err = svc.Signup(ctx, "Other", "sam@example.com", "hunter23")
		require.Error(t, err)
	})

	t.Run("login round trip", func(t *testing.T) {
		repo := newMemEmployeeRepo()
		svc := newAuthService(repo)

		created, _, _, err := svc.Signup(ctx, "Sam Lee", "sam@example.com", "hunter22")
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		employee, token, _, err := svc.Login(ctx, "sam@example.com", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, "sam@example.com", employee.Email)
		assert.NotEmpty(t, token)
	})

	t.Run("login rejects wrong password", func(t *testing.T) {
		repo := newMemEmployeeRepo()
		svc := newAuthService(repo)

		_, _, _, err := svc.Signup(ctx, "Sam Lee", "sam@example.com", "hunter22")
		require.NoError(t, err)

		_, _, _, err = svc.Login(ctx, "sam@example.com", "wrong")
		require.EqualError(t, err, "invalid credentials")
	})

	t.Run("login rejects unknown email", func(t *testing.T) {
		svc := newAuthService(newMemEmployeeRepo())

		_, _, _, err := svc.Login(ctx, "nobody@example.com", "pw")
		require.EqualError(t, err, "invalid credentials")
	})
}
