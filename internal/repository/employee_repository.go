package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fashion-oms/oms-service/internal/domain"
)

// EmployeeRepository handles persistence for back-office accounts,
// including the role-upgrade token store. Every write touching the
// pending-upgrade fields is a single statement so the row update is
// atomic with respect to concurrent initiate/verify calls.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	GetByRoleChangeToken(ctx context.Context, token string) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	SetPendingUpgrade(ctx context.Context, id string, pendingRole domain.EmployeeRole, token string, requestedAt time.Time) error
	ApplyRoleUpgrade(ctx context.Context, id string) error
	ClearPendingUpgrade(ctx context.Context, id string) error
}

// EmployeeFilter defines query params for staff listing.
type EmployeeFilter struct {
	Role   *domain.EmployeeRole
	Limit  int
	Offset int
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `id, name, email, password_hash, role, pending_role, role_change_token, role_change_requested_at, created_at, updated_at`

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var employee domain.Employee
	if err := row.Scan(
		&employee.ID,
		&employee.Name,
		&employee.Email,
		&employee.PasswordHash,
		&employee.Role,
		&employee.PendingRole,
		&employee.RoleChangeToken,
		&employee.RoleChangeRequestedAt,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (name, email, password_hash, role)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		employee.Name,
		employee.Email,
		employee.PasswordHash,
		employee.Role,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	const query = `
        UPDATE employees
        SET name=$1, email=$2, password_hash=$3, role=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		employee.Name,
		employee.Email,
		employee.PasswordHash,
		employee.Role,
		employee.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`
	return scanEmployee(r.pool.QueryRow(ctx, query, id))
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE email=$1`
	return scanEmployee(r.pool.QueryRow(ctx, query, email))
}

// GetByRoleChangeToken performs an exact-match lookup; the unique index on
// role_change_token guarantees at most one row.
func (r *employeeRepository) GetByRoleChangeToken(ctx context.Context, token string) (*domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE role_change_token=$1`
	return scanEmployee(r.pool.QueryRow(ctx, query, token))
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	args := []any{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		query += ` WHERE role=$1`
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *employee)
	}
	return result, rows.Err()
}

func (r *employeeRepository) SetPendingUpgrade(ctx context.Context, id string, pendingRole domain.EmployeeRole, token string, requestedAt time.Time) error {
	const query = `
        UPDATE employees
        SET pending_role=$1, role_change_token=$2, role_change_requested_at=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query, pendingRole, token, requestedAt, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ApplyRoleUpgrade promotes the pending role and clears the token in one
// statement, so a partially applied upgrade can never leave the token live.
func (r *employeeRepository) ApplyRoleUpgrade(ctx context.Context, id string) error {
	const query = `
        UPDATE employees
        SET role=pending_role, pending_role=NULL, role_change_token=NULL, role_change_requested_at=NULL, updated_at=NOW()
        WHERE id=$1 AND pending_role IS NOT NULL`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) ClearPendingUpgrade(ctx context.Context, id string) error {
	const query = `
        UPDATE employees
        SET pending_role=NULL, role_change_token=NULL, role_change_requested_at=NULL, updated_at=NOW()
        WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
