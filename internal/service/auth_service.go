package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fashion-oms/oms-service/internal/auth"
	"github.com/fashion-oms/oms-service/internal/config"
	"github.com/fashion-oms/oms-service/internal/domain"
	"github.com/fashion-oms/oms-service/internal/repository"
)

// AuthService coordinates signup and login flows for employees.
type AuthService struct {
	employees  repository.EmployeeRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, employees repository.EmployeeRepository) *AuthService {
	return &AuthService{
		employees:  employees,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Signup creates a new employee account at the lowest-privilege tier.
// Role advancement happens only through the upgrade verification workflow
// or a direct administrative edit.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.Employee, string, time.Time, error) {
	if _, err := s.employees.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, errors.New("email already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	employee := &domain.Employee{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.EmployeeRoleStaff,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(employee.ID, employee.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return employee, token, exp, nil
}

// Login authenticates an employee and issues a role-bearing token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Employee, string, time.Time, error) {
	employee, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, errors.New("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(employee.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(employee.ID, employee.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return employee, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
