package leave

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"staffhub/internal/domain/attendance"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Balance(ctx context.Context, employeeID string) (Balance, error) {
	var b Balance
	err := s.DB.QueryRow(ctx, `
		SELECT employee_id, paid_leaves, sick_leaves, unpaid_leaves, updated_at
		FROM leave_balance
		WHERE employee_id = $1`, employeeID).
		Scan(&b.EmployeeID, &b.PaidLeaves, &b.SickLeaves, &b.UnpaidLeaves, &b.UpdatedAt)
	return b, err
}

// CountOverlapping reports how many non-rejected requests intersect the range.
func (s *Store) CountOverlapping(ctx context.Context, employeeID string, start, end time.Time) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM leaves
		WHERE employee_id = $1
		  AND status <> $2
		  AND start_date <= $3
		  AND end_date >= $4`, employeeID, StatusRejected, end, start).
		Scan(&count)
	return count, err
}

func (s *Store) Insert(ctx context.Context, l Leave) (Leave, error) {
	err := s.DB.QueryRow(ctx, `
		INSERT INTO leaves (employee_id, leave_type, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		l.EmployeeID, l.LeaveType, l.StartDate, l.EndDate, l.Reason, l.Status).
		Scan(&l.ID, &l.CreatedAt)
	return l, err
}

func (s *Store) Get(ctx context.Context, id string) (Leave, error) {
	var l Leave
	err := s.DB.QueryRow(ctx, `
		SELECT l.id, l.employee_id, e.name, e.department, l.leave_type,
		       l.start_date, l.end_date, l.reason, l.status,
		       COALESCE(l.approved_by::text, ''), l.approved_at, l.created_at
		FROM leaves l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1`, id).
		Scan(&l.ID, &l.EmployeeID, &l.EmployeeName, &l.Department, &l.LeaveType,
			&l.StartDate, &l.EndDate, &l.Reason, &l.Status,
			&l.ApprovedBy, &l.ApprovedAt, &l.CreatedAt)
	return l, err
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, employee_id, leave_type, start_date, end_date, reason, status,
		       COALESCE(approved_by::text, ''), approved_at, created_at
		FROM leaves
		WHERE employee_id = $1
		ORDER BY created_at DESC`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaves := []Leave{}
	for rows.Next() {
		var l Leave
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.LeaveType, &l.StartDate, &l.EndDate,
			&l.Reason, &l.Status, &l.ApprovedBy, &l.ApprovedAt, &l.CreatedAt); err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

func (s *Store) ListAll(ctx context.Context, status string) ([]Leave, error) {
	query := `
		SELECT l.id, l.employee_id, e.name, e.department, l.leave_type,
		       l.start_date, l.end_date, l.reason, l.status,
		       COALESCE(l.approved_by::text, ''), COALESCE(u.email, ''), l.approved_at, l.created_at
		FROM leaves l
		JOIN employees e ON e.id = l.employee_id
		LEFT JOIN users u ON u.id = l.approved_by`
	args := []any{}
	if status != "" {
		query += ` WHERE l.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY l.created_at DESC`

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaves := []Leave{}
	for rows.Next() {
		var l Leave
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.EmployeeName, &l.Department, &l.LeaveType,
			&l.StartDate, &l.EndDate, &l.Reason, &l.Status,
			&l.ApprovedBy, &l.ApprovedByName, &l.ApprovedAt, &l.CreatedAt); err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

// DeletePending removes an employee's own request while it is still pending.
func (s *Store) DeletePending(ctx context.Context, id, employeeID string) error {
	tag, err := s.DB.Exec(ctx, `
		DELETE FROM leaves
		WHERE id = $1 AND employee_id = $2 AND status = $3`,
		id, employeeID, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Approve marks the request approved, debits the balance, and records every
// day of the range as a Leave attendance day. Runs in one transaction so a
// failed balance update never leaves a half-approved request behind.
func (s *Store) Approve(ctx context.Context, l Leave, approvedBy string, days int) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE leaves
		SET status = $1, approved_by = $2, approved_at = now()
		WHERE id = $3 AND status = $4`,
		StatusApproved, approvedBy, l.ID, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	var column string
	switch l.LeaveType {
	case TypePaid:
		column = "paid_leaves"
	case TypeSick:
		column = "sick_leaves"
	case TypeUnpaid:
		column = "unpaid_leaves"
	}
	if l.LeaveType == TypeUnpaid {
		_, err = tx.Exec(ctx, `
			UPDATE leave_balance
			SET unpaid_leaves = unpaid_leaves + $1, updated_at = now()
			WHERE employee_id = $2`, days, l.EmployeeID)
	} else {
		_, err = tx.Exec(ctx, `
			UPDATE leave_balance
			SET `+column+` = `+column+` - $1, updated_at = now()
			WHERE employee_id = $2`, days, l.EmployeeID)
	}
	if err != nil {
		return err
	}

	for d := l.StartDate; !d.After(l.EndDate); d = d.AddDate(0, 0, 1) {
		_, err = tx.Exec(ctx, `
			INSERT INTO attendance (employee_id, date, status)
			VALUES ($1, $2, $3)
			ON CONFLICT (employee_id, date)
			DO UPDATE SET status = EXCLUDED.status`,
			l.EmployeeID, d, attendance.StatusLeave)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) Reject(ctx context.Context, id, approvedBy string) error {
	tag, err := s.DB.Exec(ctx, `
		UPDATE leaves
		SET status = $1, approved_by = $2, approved_at = now()
		WHERE id = $3 AND status = $4`,
		StatusRejected, approvedBy, id, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) ListHolidays(ctx context.Context) ([]Holiday, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, name, date
		FROM holidays
		ORDER BY date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := []Holiday{}
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (s *Store) CreateHoliday(ctx context.Context, name string, date time.Time) (Holiday, error) {
	h := Holiday{Name: name, Date: date}
	err := s.DB.QueryRow(ctx, `
		INSERT INTO holidays (name, date)
		VALUES ($1, $2)
		RETURNING id`, name, date).
		Scan(&h.ID)
	return h, err
}
