package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/fashion-oms/oms-service/internal/cache"
	"github.com/fashion-oms/oms-service/internal/config"
	"github.com/fashion-oms/oms-service/internal/domain"
	"github.com/fashion-oms/oms-service/internal/email"
	"github.com/fashion-oms/oms-service/internal/events"
	"github.com/fashion-oms/oms-service/internal/repository"
)

// Workflow outcomes. ErrTokenNotFound and ErrTokenExpired deliberately share
// the same user-facing message so a prober cannot distinguish a consumed
// token from one that never existed.
var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrAlreadyAtRole      = errors.New("employee already has the requested role")
	ErrNotificationFailed = errors.New("failed to send verification email")
	ErrTokenNotFound      = errors.New("invalid or expired token")
	ErrTokenExpired       = errors.New("role upgrade token expired")
	ErrRoleMismatch       = errors.New("pending role does not match the requested upgrade")
)

// RoleUpgradeService runs the admin role-upgrade verification workflow:
// an admin initiates an upgrade for a staff member, a single-use token is
// persisted on the employee row and mailed out, and the target confirms by
// following the emailed link.
type RoleUpgradeService struct {
	employees  repository.EmployeeRepository
	sender     email.Sender
	staffCache *cache.StaffListCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	baseURL    string
	tokenTTL   time.Duration
	targetRole domain.EmployeeRole
}

// RoleUpgradeDependencies encapsulates collaborator requirements.
type RoleUpgradeDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	Sender       email.Sender
	StaffCache   *cache.StaffListCache
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewRoleUpgradeService builds the service. The workflow is scoped to a
// single target role: ADMIN.
func NewRoleUpgradeService(cfg config.Config, deps RoleUpgradeDependencies) *RoleUpgradeService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleUpgradeService{
		employees:  deps.EmployeeRepo,
		sender:     deps.Sender,
		staffCache: deps.StaffCache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		baseURL:    cfg.App.BaseURL,
		tokenTTL:   cfg.RoleUpgrade.TokenTTL(),
		targetRole: domain.EmployeeRoleAdmin,
	}
}

// Initiate mints a single-use verification token for the target employee,
// persists it together with the pending role in one atomic row update, and
// emails the verification link. Caller authorization (admin) is enforced by
// the HTTP layer before this entry point is reachable.
//
// If the email dispatch fails the pending state is deliberately left in
// place and ErrNotificationFailed returned, so an operator can re-initiate;
// re-initiation mints a fresh token and the stale link goes dead.
func (s *RoleUpgradeService) Initiate(ctx context.Context, employeeID, recipientEmail string) error {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("load employee: %w", err)
	}

	if employee.Role == s.targetRole {
		return ErrAlreadyAtRole
	}

	overwrote := employee.HasPendingUpgrade()
	if overwrote {
		s.logger.Warn("overwriting outstanding role-upgrade token; the previously emailed link is now dead",
			zap.String("employee_id", employee.ID))
	}

	token, err := newVerificationToken()
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	if recipientEmail == "" {
		recipientEmail = employee.Email
	}

	if err := s.employees.SetPendingUpgrade(ctx, employee.ID, s.targetRole, token, time.Now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("persist pending upgrade: %w", err)
	}

	verificationURL := fmt.Sprintf("%s/verify-role?token=%s", s.baseURL, token)
	if err := s.sender.Send(ctx, recipientEmail, "Verify Admin Role Upgrade", verificationBody(verificationURL)); err != nil {
		if errors.Is(err, email.ErrNotConfigured) {
			return err
		}
		s.logger.Error("verification email dispatch failed; pending upgrade retained",
			zap.String("employee_id", employee.ID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	s.staffCache.Invalidate(ctx)
	s.publish(ctx, events.EventRoleUpgradeInitiated, events.RoleUpgradeInitiatedPayload{
		EmployeeID:  employee.ID,
		PendingRole: s.targetRole,
		Overwrote:   overwrote,
	})

	s.logger.Info("role upgrade initiated",
		zap.String("employee_id", employee.ID),
		zap.String("pending_role", string(s.targetRole)))
	return nil
}

// Verify consumes a token presented via the emailed link. All checks fail
// fast in a fixed order: lookup, pending-role match, expiry. The commit is
// a single atomic update setting role=pending_role and clearing the token,
// so a second Verify with the same token resolves to ErrTokenNotFound.
func (s *RoleUpgradeService) Verify(ctx context.Context, token string) error {
	employee, err := s.employees.GetByRoleChangeToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("token lookup: %w", err)
	}

	if employee.PendingRole == nil || *employee.PendingRole != s.targetRole {
		return ErrRoleMismatch
	}

	if employee.RoleChangeRequestedAt != nil && time.Since(*employee.RoleChangeRequestedAt) > s.tokenTTL {
		// Expiry is a terminal failure: clear the pending state so the
		// token cannot linger indefinitely.
		if err := s.employees.ClearPendingUpgrade(ctx, employee.ID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("clear expired upgrade: %w", err)
		}
		s.staffCache.Invalidate(ctx)
		s.logger.Info("expired role-upgrade token rejected", zap.String("employee_id", employee.ID))
		return ErrTokenExpired
	}

	if err := s.employees.ApplyRoleUpgrade(ctx, employee.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Raced with another verify or an external clear.
			return ErrTokenNotFound
		}
		return fmt.Errorf("apply role upgrade: %w", err)
	}

	s.staffCache.Invalidate(ctx)
	s.publish(ctx, events.EventRoleUpgradeVerified, events.RoleUpgradeVerifiedPayload{
		EmployeeID: employee.ID,
		NewRole:    s.targetRole,
	})

	s.logger.Info("role upgrade verified",
		zap.String("employee_id", employee.ID),
		zap.String("new_role", string(s.targetRole)))
	return nil
}

func (s *RoleUpgradeService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

// newVerificationToken returns 256 bits of entropy hex-encoded (64 chars).
func newVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func verificationBody(verificationURL string) string {
	return `<h1>Admin Role Verification</h1>
<p>You have been invited to become an Admin for the Fashion OMS.</p>
<p>Please click the link below to accept this role change:</p>
<a href="` + verificationURL + `">Accept Admin Role</a>
<p>If you did not request this, please ignore this email.</p>`
}
