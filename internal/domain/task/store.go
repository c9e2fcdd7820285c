package task

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// ListAssigned returns an employee's assigned tasks, open work first.
func (s *Store) ListAssigned(ctx context.Context, employeeID string) ([]Task, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT t.id, t.employee_id, COALESCE(t.assigned_by::text, ''), COALESCE(e.name, ''),
           t.title, t.description, COALESCE(t.priority, ''), t.due_date, t.status, t.completed_at, t.created_at
    FROM tasks t
    LEFT JOIN employees e ON t.assigned_by = e.id
    WHERE t.employee_id = $1
    ORDER BY
      CASE
        WHEN t.status = 'Pending' THEN 1
        WHEN t.status = 'In Progress' THEN 2
        ELSE 3
      END,
      t.due_date ASC NULLS LAST
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.EmployeeID, &t.AssignedBy, &t.AssignedByName, &t.Title, &t.Description, &t.Priority, &t.DueDate, &t.Status, &t.CompletedAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// UpdateAssignedStatus updates a task owned by the employee; pgx.ErrNoRows
// when the task does not exist or belongs to someone else.
func (s *Store) UpdateAssignedStatus(ctx context.Context, taskID, employeeID, status string, completedAt *time.Time) (Task, error) {
	var t Task
	err := s.DB.QueryRow(ctx, `
    UPDATE tasks
    SET status = $1, completed_at = $2
    WHERE id = $3 AND employee_id = $4
    RETURNING id, employee_id, COALESCE(assigned_by::text, ''), title, description, COALESCE(priority, ''), due_date, status, completed_at, created_at
  `, status, completedAt, taskID, employeeID).Scan(&t.ID, &t.EmployeeID, &t.AssignedBy, &t.Title, &t.Description, &t.Priority, &t.DueDate, &t.Status, &t.CompletedAt, &t.CreatedAt)
	if err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Store) Assign(ctx context.Context, params AssignParams) (Task, error) {
	var t Task
	err := s.DB.QueryRow(ctx, `
    INSERT INTO tasks (employee_id, assigned_by, title, description, priority, due_date)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id, employee_id, COALESCE(assigned_by::text, ''), title, description, COALESCE(priority, ''), due_date, status, completed_at, created_at
  `, params.EmployeeID, params.AssignedBy, params.Title, params.Description, params.Priority, params.DueDate).Scan(&t.ID, &t.EmployeeID, &t.AssignedBy, &t.Title, &t.Description, &t.Priority, &t.DueDate, &t.Status, &t.CompletedAt, &t.CreatedAt)
	if err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Store) ListAll(ctx context.Context) ([]Task, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT t.id, t.employee_id, COALESCE(t.assigned_by::text, ''), COALESCE(a.name, ''),
           e.name, e.department,
           t.title, t.description, COALESCE(t.priority, ''), t.due_date, t.status, t.completed_at, t.created_at
    FROM tasks t
    JOIN employees e ON t.employee_id = e.id
    LEFT JOIN employees a ON t.assigned_by = a.id
    ORDER BY t.created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.EmployeeID, &t.AssignedBy, &t.AssignedByName, &t.EmployeeName, &t.Department, &t.Title, &t.Description, &t.Priority, &t.DueDate, &t.Status, &t.CompletedAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Task, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, COALESCE(assigned_by::text, ''), title, description, COALESCE(priority, ''), due_date, status, completed_at, created_at
    FROM tasks
    WHERE employee_id = $1
    ORDER BY created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.EmployeeID, &t.AssignedBy, &t.Title, &t.Description, &t.Priority, &t.DueDate, &t.Status, &t.CompletedAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM tasks WHERE id = $1", taskID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) ListPersonal(ctx context.Context, employeeID string) ([]PersonalTask, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, title, description, status, completed_at, created_at
    FROM personal_tasks
    WHERE employee_id = $1
    ORDER BY created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []PersonalTask
	for rows.Next() {
		var t PersonalTask
		if err := rows.Scan(&t.ID, &t.EmployeeID, &t.Title, &t.Description, &t.Status, &t.CompletedAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (s *Store) CreatePersonal(ctx context.Context, employeeID, title, description string) (PersonalTask, error) {
	var t PersonalTask
	err := s.DB.QueryRow(ctx, `
    INSERT INTO personal_tasks (employee_id, title, description)
    VALUES ($1,$2,$3)
    RETURNING id, employee_id, title, description, status, completed_at, created_at
  `, employeeID, title, description).Scan(&t.ID, &t.EmployeeID, &t.Title, &t.Description, &t.Status, &t.CompletedAt, &t.CreatedAt)
	if err != nil {
		return PersonalTask{}, err
	}
	return t, nil
}

func (s *Store) UpdatePersonalStatus(ctx context.Context, taskID, employeeID, status string, completedAt *time.Time) (PersonalTask, error) {
	var t PersonalTask
	err := s.DB.QueryRow(ctx, `
    UPDATE personal_tasks
    SET status = $1, completed_at = $2
    WHERE id = $3 AND employee_id = $4
    RETURNING id, employee_id, title, description, status, completed_at, created_at
  `, status, completedAt, taskID, employeeID).Scan(&t.ID, &t.EmployeeID, &t.Title, &t.Description, &t.Status, &t.CompletedAt, &t.CreatedAt)
	if err != nil {
		return PersonalTask{}, err
	}
	return t, nil
}

func (s *Store) DeletePersonal(ctx context.Context, taskID, employeeID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM personal_tasks WHERE id = $1 AND employee_id = $2", taskID, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
