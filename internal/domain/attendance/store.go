package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Get(ctx context.Context, employeeID string, date time.Time) (Record, error) {
	var record Record
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, date, login_time, logout_time, status, is_late
    FROM attendance
    WHERE employee_id = $1 AND date = $2
  `, employeeID, date).Scan(&record.ID, &record.EmployeeID, &record.Date, &record.LoginTime, &record.LogoutTime, &record.Status, &record.IsLate)
	if err != nil {
		return Record{}, err
	}
	return record, nil
}

// InsertLogin records the first login of the day. Later logins the same day
// are no-ops; only the first one determines the status.
func (s *Store) InsertLogin(ctx context.Context, employeeID string, date time.Time, login time.Time, status string, isLate bool) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO attendance (employee_id, date, login_time, status, is_late)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (employee_id, date) DO NOTHING
  `, employeeID, date, login, status, isLate)
	return err
}

func (s *Store) SetLogout(ctx context.Context, employeeID string, date time.Time, logout time.Time) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE attendance SET logout_time = $1 WHERE employee_id = $2 AND date = $3
  `, logout, employeeID, date)
	return err
}

func (s *Store) List(ctx context.Context, employeeID string, month, year, limit int) ([]Record, error) {
	query := `
    SELECT id, employee_id, date, login_time, logout_time, status, is_late
    FROM attendance
    WHERE employee_id = $1
  `
	args := []any{employeeID}
	if month > 0 && year > 0 {
		query += " AND EXTRACT(MONTH FROM date) = $2 AND EXTRACT(YEAR FROM date) = $3"
		args = append(args, month, year)
	}
	query += " ORDER BY date DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		if err := rows.Scan(&record.ID, &record.EmployeeID, &record.Date, &record.LoginTime, &record.LogoutTime, &record.Status, &record.IsLate); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *Store) ListForDate(ctx context.Context, date time.Time) ([]EmployeeRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.id, a.employee_id, a.date, a.login_time, a.logout_time, a.status, a.is_late,
           e.name, e.department, e.designation
    FROM attendance a
    JOIN employees e ON a.employee_id = e.id
    WHERE a.date = $1
    ORDER BY a.login_time ASC NULLS LAST
  `, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []EmployeeRecord
	for rows.Next() {
		var record EmployeeRecord
		if err := rows.Scan(&record.ID, &record.EmployeeID, &record.Date, &record.LoginTime, &record.LogoutTime, &record.Status, &record.IsLate, &record.Name, &record.Department, &record.Designation); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Upsert sets or replaces a day's attendance, used by the manual HR marking path.
func (s *Store) Upsert(ctx context.Context, employeeID string, date time.Time, status string, login *time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO attendance (employee_id, date, login_time, status, is_late)
    VALUES ($1,$2,$3,$4,$4 = 'Late')
    ON CONFLICT (employee_id, date)
    DO UPDATE SET status = EXCLUDED.status, is_late = EXCLUDED.is_late,
                  login_time = COALESCE(EXCLUDED.login_time, attendance.login_time)
  `, employeeID, date, login, status)
	return err
}
