package score

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"staffhub/internal/domain/attendance"
	"staffhub/internal/domain/task"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

var _ StoreAPI = (*Store)(nil)

func (s *Store) DayInputs(ctx context.Context, employeeID string, date time.Time) (DayInputs, error) {
	var in DayInputs

	err := s.DB.QueryRow(ctx, `
		SELECT COALESCE(
			(SELECT status FROM attendance WHERE employee_id = $1 AND date = $2),
			$3)`,
		employeeID, date, attendance.StatusNotMarked).
		Scan(&in.AttendanceStatus)
	if err != nil {
		return DayInputs{}, err
	}

	// Tasks count toward the month they were assigned in, not the day they
	// are due.
	err = s.DB.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE status = $3), COUNT(*)
		FROM tasks
		WHERE employee_id = $1
		  AND EXTRACT(MONTH FROM created_at) = EXTRACT(MONTH FROM $2::date)
		  AND EXTRACT(YEAR FROM created_at) = EXTRACT(YEAR FROM $2::date)`,
		employeeID, date, task.StatusCompleted).
		Scan(&in.TasksCompleted, &in.TasksTotal)
	if err != nil {
		return DayInputs{}, err
	}

	err = s.DB.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM attendance
		WHERE employee_id = $1
		  AND is_late = true
		  AND EXTRACT(MONTH FROM date) = EXTRACT(MONTH FROM $2::date)
		  AND EXTRACT(YEAR FROM date) = EXTRACT(YEAR FROM $2::date)`,
		employeeID, date).
		Scan(&in.LateCount)
	if err != nil {
		return DayInputs{}, err
	}

	return in, nil
}

func (s *Store) GetScore(ctx context.Context, employeeID string, date time.Time) (Score, error) {
	var sc Score
	err := s.DB.QueryRow(ctx, `
		SELECT id, employee_id, date, attendance_score, task_score,
		       punctuality_score, total_score, created_at
		FROM scores
		WHERE employee_id = $1 AND date = $2`, employeeID, date).
		Scan(&sc.ID, &sc.EmployeeID, &sc.Date, &sc.Attendance, &sc.Task,
			&sc.Punctuality, &sc.Total, &sc.CreatedAt)
	return sc, err
}

func (s *Store) InsertScore(ctx context.Context, sc Score) (Score, error) {
	err := s.DB.QueryRow(ctx, `
		INSERT INTO scores (employee_id, date, attendance_score, task_score,
		                    punctuality_score, total_score)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		sc.EmployeeID, sc.Date, sc.Attendance, sc.Task, sc.Punctuality, sc.Total).
		Scan(&sc.ID, &sc.CreatedAt)
	return sc, err
}

func (s *Store) InsertWarning(ctx context.Context, w Warning) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO warnings (employee_id, warning_type, message, score, date)
		VALUES ($1, $2, $3, $4, $5)`,
		w.EmployeeID, w.WarningType, w.Message, w.Score, w.Date)
	return err
}

func (s *Store) ListScores(ctx context.Context, employeeID string, month, year, limit int) ([]Score, error) {
	query := `
		SELECT id, employee_id, date, attendance_score, task_score,
		       punctuality_score, total_score, created_at
		FROM scores
		WHERE employee_id = $1`
	args := []any{employeeID}
	if month > 0 && year > 0 {
		query += ` AND EXTRACT(MONTH FROM date) = $2 AND EXTRACT(YEAR FROM date) = $3`
		args = append(args, month, year)
	}
	query += ` ORDER BY date DESC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := []Score{}
	for rows.Next() {
		var sc Score
		if err := rows.Scan(&sc.ID, &sc.EmployeeID, &sc.Date, &sc.Attendance, &sc.Task,
			&sc.Punctuality, &sc.Total, &sc.CreatedAt); err != nil {
			return nil, err
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

func (s *Store) ListWarnings(ctx context.Context, employeeID string, limit int) ([]Warning, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, employee_id, warning_type, message, score, date, created_at
		FROM warnings
		WHERE employee_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	warnings := []Warning{}
	for rows.Next() {
		var w Warning
		if err := rows.Scan(&w.ID, &w.EmployeeID, &w.WarningType, &w.Message,
			&w.Score, &w.Date, &w.CreatedAt); err != nil {
			return nil, err
		}
		warnings = append(warnings, w)
	}
	return warnings, rows.Err()
}

func (s *Store) DeleteScore(ctx context.Context, employeeID string, date time.Time) error {
	_, err := s.DB.Exec(ctx, `
		DELETE FROM scores WHERE employee_id = $1 AND date = $2`, employeeID, date)
	return err
}

func (s *Store) EmployeeIDs(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `SELECT id FROM employees ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) ScoresForDate(ctx context.Context, date time.Time) ([]EmployeeScore, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT s.id, s.employee_id, s.date, s.attendance_score, s.task_score,
		       s.punctuality_score, s.total_score, s.created_at,
		       e.name, e.department, e.designation
		FROM scores s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.date = $1
		ORDER BY s.total_score DESC, e.name ASC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := []EmployeeScore{}
	for rows.Next() {
		var es EmployeeScore
		if err := rows.Scan(&es.ID, &es.EmployeeID, &es.Date, &es.Attendance, &es.Task,
			&es.Punctuality, &es.Total, &es.CreatedAt,
			&es.EmployeeName, &es.Department, &es.Designation); err != nil {
			return nil, err
		}
		scores = append(scores, es)
	}
	return scores, rows.Err()
}

func (s *Store) BestEmployee(ctx context.Context, month, year int) (BestEmployee, error) {
	var be BestEmployee
	err := s.DB.QueryRow(ctx, `
		SELECT s.employee_id, e.name, e.department, e.designation,
		       ROUND(AVG(s.total_score)::numeric, 2), COUNT(*)
		FROM scores s
		JOIN employees e ON e.id = s.employee_id
		WHERE EXTRACT(MONTH FROM s.date) = $1 AND EXTRACT(YEAR FROM s.date) = $2
		GROUP BY s.employee_id, e.name, e.department, e.designation
		HAVING COUNT(*) >= $3
		ORDER BY AVG(s.total_score) DESC, s.employee_id ASC
		LIMIT 1`, month, year, MinScoreDays).
		Scan(&be.EmployeeID, &be.EmployeeName, &be.Department, &be.Designation,
			&be.Average, &be.ScoredDays)
	return be, err
}
