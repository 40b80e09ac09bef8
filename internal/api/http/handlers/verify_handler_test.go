package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/fashion-oms/oms-service/internal/api/http"
	"github.com/fashion-oms/oms-service/internal/api/http/handlers"
	"github.com/fashion-oms/oms-service/internal/config"
	"github.com/fashion-oms/oms-service/internal/domain"
	"github.com/fashion-oms/oms-service/internal/observability"
	"github.com/fashion-oms/oms-service/internal/repository"
	"github.com/fashion-oms/oms-service/internal/service"
)

// stubEmployeeRepo implements only the verification path and counts token
// lookups, so the tests can prove the missing-parameter branch never
// touches the store.
type stubEmployeeRepo struct {
	repository.EmployeeRepository
	employee     *domain.Employee
	tokenLookups int
}

func (r *stubEmployeeRepo) GetByRoleChangeToken(_ context.Context, token string) (*domain.Employee, error) {
	r.tokenLookups++
	if r.employee != nil && r.employee.RoleChangeToken != nil && *r.employee.RoleChangeToken == token {
		clone := *r.employee
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubEmployeeRepo) ApplyRoleUpgrade(_ context.Context, id string) error {
	if r.employee == nil || r.employee.ID != id || r.employee.PendingRole == nil {
		return pgx.ErrNoRows
	}
	r.employee.Role = *r.employee.PendingRole
	r.employee.PendingRole = nil
	r.employee.RoleChangeToken = nil
	r.employee.RoleChangeRequestedAt = nil
	return nil
}

type noopSender struct{}

func (noopSender) Send(context.Context, string, string, string) error { return nil }

func newVerifyApp(repo *stubEmployeeRepo) *fiber.App {
	cfg := config.Config{}
	cfg.App.BaseURL = "http://oms.test"
	cfg.RoleUpgrade.TokenTTLHours = 24

	upgrades := service.NewRoleUpgradeService(cfg, service.RoleUpgradeDependencies{
		EmployeeRepo: repo,
		Sender:       noopSender{},
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Get("/verify-role", handlers.NewVerifyHandler(upgrades).VerifyRole)
	return app
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestVerifyRoleEndpoint(t *testing.T) {
	pendingAdmin := func() *domain.Employee {
		token := "a3f1c9"
		pending := domain.EmployeeRoleAdmin
		return &domain.Employee{
			ID:              "u1",
			Email:           "u1@example.com",
			Role:            domain.EmployeeRoleStaff,
			PendingRole:     &pending,
			RoleChangeToken: &token,
		}
	}

	t.Run("missing token never reaches the store", func(t *testing.T) {
		repo := &stubEmployeeRepo{}
		app := newVerifyApp(repo)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/verify-role", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "no verification token provided", decodeError(t, resp).Error.Message)
		assert.Zero(t, repo.tokenLookups)
	})

	t.Run("unknown token reports invalid or expired", func(t *testing.T) {
		repo := &stubEmployeeRepo{}
		app := newVerifyApp(repo)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/verify-role?token=deadbeef", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid or expired token", decodeError(t, resp).Error.Message)
		assert.Equal(t, 1, repo.tokenLookups)
	})

	t.Run("valid token upgrades the role", func(t *testing.T) {
		repo := &stubEmployeeRepo{employee: pendingAdmin()}
		app := newVerifyApp(repo)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/verify-role?token=a3f1c9", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, domain.EmployeeRoleAdmin, repo.employee.Role)
		assert.Nil(t, repo.employee.RoleChangeToken)
	})

	t.Run("replay after success reports invalid or expired", func(t *testing.T) {
		repo := &stubEmployeeRepo{employee: pendingAdmin()}
		app := newVerifyApp(repo)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/verify-role?token=a3f1c9", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/verify-role?token=a3f1c9", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid or expired token", decodeError(t, resp).Error.Message)
	})

	t.Run("pending role mismatch", func(t *testing.T) {
		employee := pendingAdmin()
		employee.PendingRole = nil
		repo := &stubEmployeeRepo{employee: employee}
		app := newVerifyApp(repo)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/verify-role?token=a3f1c9", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid pending role", decodeError(t, resp).Error.Message)
	})
}
