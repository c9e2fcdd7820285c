package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (AuthUser, error) {
	var user AuthUser
	err := s.DB.QueryRow(ctx, `
    SELECT u.id, u.email, u.password_hash, u.role, u.mfa_enabled, COALESCE(u.mfa_secret, ''),
           COALESCE(e.id::text, ''), COALESCE(e.name, ''), COALESCE(e.office_start, '09:00:00')
    FROM users u
    LEFT JOIN employees e ON e.user_id = u.id
    WHERE u.email = $1
  `, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.MFAEnabled, &user.MFASecret, &user.EmployeeID, &user.Name, &user.OfficeStart)
	if err != nil {
		return AuthUser{}, err
	}
	return user, nil
}

func (s *Store) GetProfile(ctx context.Context, userID string) (Profile, error) {
	var profile Profile
	err := s.DB.QueryRow(ctx, `
    SELECT u.id, u.email, u.role, COALESCE(e.id::text, ''), COALESCE(e.name, ''),
           COALESCE(e.department, ''), COALESCE(e.designation, ''), COALESCE(e.join_date, '0001-01-01'::date)
    FROM users u
    LEFT JOIN employees e ON e.user_id = u.id
    WHERE u.id = $1
  `, userID).Scan(&profile.ID, &profile.Email, &profile.Role, &profile.EmployeeID, &profile.Name, &profile.Department, &profile.Designation, &profile.JoinDate)
	if err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateUserWithEmployee creates the user, its employee record and an initial
// leave balance in one transaction. A salary row is added when basicSalary > 0.
func (s *Store) CreateUserWithEmployee(ctx context.Context, params RegisterParams, passwordHash, officeStart string) (userID, employeeID string, err error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return "", "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err = tx.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role)
    VALUES ($1,$2,$3)
    RETURNING id
  `, params.Email, passwordHash, params.Role).Scan(&userID); err != nil {
		return "", "", err
	}

	if err = tx.QueryRow(ctx, `
    INSERT INTO employees (user_id, name, department, designation, join_date, office_start)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, userID, params.Name, params.Department, params.Designation, params.JoinDate, officeStart).Scan(&employeeID); err != nil {
		return "", "", err
	}

	if _, err = tx.Exec(ctx, "INSERT INTO leave_balance (employee_id) VALUES ($1)", employeeID); err != nil {
		return "", "", err
	}

	if params.BasicSalary > 0 {
		if _, err = tx.Exec(ctx, `
      INSERT INTO salary (employee_id, basic_salary, net_salary)
      VALUES ($1,$2,$2)
    `, employeeID, params.BasicSalary); err != nil {
			return "", "", err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return "", "", err
	}
	return userID, employeeID, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]EmployeeSummary, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT u.id, u.email, u.role, e.id, e.name, e.department, e.designation, e.join_date
    FROM users u
    JOIN employees e ON e.user_id = u.id
    WHERE u.role = $1
    ORDER BY e.name ASC
  `, RoleEmployee)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []EmployeeSummary
	for rows.Next() {
		var employee EmployeeSummary
		if err := rows.Scan(&employee.UserID, &employee.Email, &employee.Role, &employee.EmployeeID, &employee.Name, &employee.Department, &employee.Designation, &employee.JoinDate); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, nil
}

// DeleteEmployee removes the employee, its user account and every dependent
// row. Returns the removed user's id, or pgx.ErrNoRows when unknown.
func (s *Store) DeleteEmployee(ctx context.Context, employeeID string) (string, error) {
	var userID string
	if err := s.DB.QueryRow(ctx, `
    SELECT u.id
    FROM employees e
    JOIN users u ON e.user_id = u.id
    WHERE e.id = $1
  `, employeeID).Scan(&userID); err != nil {
		return "", err
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	statements := []struct {
		sql  string
		args []any
	}{
		{"DELETE FROM leave_balance WHERE employee_id = $1", []any{employeeID}},
		{"DELETE FROM salary WHERE employee_id = $1", []any{employeeID}},
		{"DELETE FROM attendance WHERE employee_id = $1", []any{employeeID}},
		{"DELETE FROM tasks WHERE employee_id = $1 OR assigned_by = $1", []any{employeeID}},
		{"DELETE FROM personal_tasks WHERE employee_id = $1", []any{employeeID}},
		{"DELETE FROM leaves WHERE employee_id = $1 OR approved_by = $1", []any{employeeID}},
		{"DELETE FROM warnings WHERE employee_id = $1", []any{employeeID}},
		{"DELETE FROM scores WHERE employee_id = $1", []any{employeeID}},
		{"DELETE FROM employees WHERE id = $1", []any{employeeID}},
		{"DELETE FROM users WHERE id = $1", []any{userID}},
	}
	for _, statement := range statements {
		if _, err := tx.Exec(ctx, statement.sql, statement.args...); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return userID, nil
}

func (s *Store) SetMFASecret(ctx context.Context, userID, secret string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET mfa_secret = $1, mfa_enabled = false WHERE id = $2", secret, userID)
	return err
}

func (s *Store) MFASecret(ctx context.Context, userID string) (string, error) {
	var secret string
	if err := s.DB.QueryRow(ctx, "SELECT COALESCE(mfa_secret, '') FROM users WHERE id = $1", userID).Scan(&secret); err != nil {
		return "", err
	}
	return secret, nil
}

func (s *Store) EnableMFA(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET mfa_enabled = true WHERE id = $1", userID)
	return err
}
