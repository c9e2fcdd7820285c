package salary

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

func (s *Store) Get(ctx context.Context, employeeID string) (EmployeeSalary, error) {
	var es EmployeeSalary
	err := s.DB.QueryRow(ctx, `
		SELECT s.id, s.employee_id, s.basic_salary, s.allowances, s.deductions,
		       s.net_salary, s.updated_at, e.name, e.department, e.designation
		FROM salary s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.employee_id = $1`, employeeID).
		Scan(&es.ID, &es.EmployeeID, &es.BasicSalary, &es.Allowances, &es.Deductions,
			&es.NetSalary, &es.UpdatedAt, &es.EmployeeName, &es.Department, &es.Designation)
	return es, err
}

func (s *Store) ListAll(ctx context.Context) ([]EmployeeSalary, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT s.id, s.employee_id, s.basic_salary, s.allowances, s.deductions,
		       s.net_salary, s.updated_at, e.name, e.department, e.designation
		FROM salary s
		JOIN employees e ON e.id = s.employee_id
		ORDER BY e.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	salaries := []EmployeeSalary{}
	for rows.Next() {
		var es EmployeeSalary
		if err := rows.Scan(&es.ID, &es.EmployeeID, &es.BasicSalary, &es.Allowances, &es.Deductions,
			&es.NetSalary, &es.UpdatedAt, &es.EmployeeName, &es.Department, &es.Designation); err != nil {
			return nil, err
		}
		salaries = append(salaries, es)
	}
	return salaries, rows.Err()
}

func (s *Store) Upsert(ctx context.Context, employeeID string, p UpsertParams, net float64) (Salary, error) {
	var sal Salary
	err := s.DB.QueryRow(ctx, `
		INSERT INTO salary (employee_id, basic_salary, allowances, deductions, net_salary)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id)
		DO UPDATE SET basic_salary = EXCLUDED.basic_salary,
		              allowances = EXCLUDED.allowances,
		              deductions = EXCLUDED.deductions,
		              net_salary = EXCLUDED.net_salary,
		              updated_at = now()
		RETURNING id, employee_id, basic_salary, allowances, deductions, net_salary, updated_at`,
		employeeID, p.BasicSalary, p.Allowances, p.Deductions, net).
		Scan(&sal.ID, &sal.EmployeeID, &sal.BasicSalary, &sal.Allowances,
			&sal.Deductions, &sal.NetSalary, &sal.UpdatedAt)
	return sal, err
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(net_salary), 0),
		       COALESCE(ROUND(AVG(net_salary), 2), 0),
		       COALESCE(MAX(net_salary), 0),
		       COALESCE(MIN(net_salary), 0),
		       COUNT(*)
		FROM salary`).
		Scan(&stats.TotalPayroll, &stats.AverageNet, &stats.HighestNet,
			&stats.LowestNet, &stats.Employees)
	return stats, err
}
