package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/fashion-oms/oms-service/internal/cache"
	"github.com/fashion-oms/oms-service/internal/domain"
	"github.com/fashion-oms/oms-service/internal/events"
	"github.com/fashion-oms/oms-service/internal/repository"
	apperrors "github.com/fashion-oms/oms-service/pkg/util"
)

// StaffService manages employee accounts for the admin area.
type StaffService struct {
	employees  repository.EmployeeRepository
	staffCache *cache.StaffListCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewStaffService constructs the service.
func NewStaffService(employees repository.EmployeeRepository, staffCache *cache.StaffListCache, dispatcher events.Dispatcher, logger *zap.Logger) *StaffService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{
		employees:  employees,
		staffCache: staffCache,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// List returns all staff, served from the Redis cache when fresh. The
// cache is invalidated by the role-upgrade workflow and by deletions, so
// pending-upgrade markers shown in the admin table never go stale.
func (s *StaffService) List(ctx context.Context) ([]domain.Employee, error) {
	if cached, ok := s.staffCache.Get(ctx); ok {
		return cached, nil
	}

	employees, err := s.employees.List(ctx, repository.EmployeeFilter{Limit: 200})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.staffCache.Set(ctx, employees)
	return employees, nil
}

// Get fetches a single employee.
func (s *StaffService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return employee, nil
}

// Delete removes an employee account. Self-deletion is rejected so an
// admin cannot lock the last admin out by accident.
func (s *StaffService) Delete(ctx context.Context, actor *domain.Employee, id string) error {
	if actor != nil && actor.ID == id {
		return apperrors.NewConflict("cannot delete your own account", nil)
	}

	if err := s.employees.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("employee", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}

	s.staffCache.Invalidate(ctx)
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventStaffDeleted,
			Timestamp: time.Now(),
			Payload:   events.StaffDeletedPayload{EmployeeID: id},
		})
	}
	s.logger.Info("staff deleted", zap.String("employee_id", id))
	return nil
}
