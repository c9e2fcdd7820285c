package salary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jung-kurt/gofpdf"
)

var ErrNotFound = errors.New("salary record not found")

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, employeeID string) (EmployeeSalary, error) {
	es, err := s.store.Get(ctx, employeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeSalary{}, ErrNotFound
	}
	return es, err
}

func (s *Service) All(ctx context.Context) ([]EmployeeSalary, error) {
	return s.store.ListAll(ctx)
}

// Set upserts the structure for an employee; net is always derived, never
// accepted from the caller.
func (s *Service) Set(ctx context.Context, employeeID string, p UpsertParams) (Salary, error) {
	net, err := Net(p.BasicSalary, p.Allowances, p.Deductions)
	if err != nil {
		return Salary{}, err
	}
	return s.store.Upsert(ctx, employeeID, p, net)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.store.Stats(ctx)
}

// WriteSlipPDF renders a salary slip for the current month and streams it to w.
func (s *Service) WriteSlipPDF(ctx context.Context, w io.Writer, employeeID string) error {
	es, err := s.Get(ctx, employeeID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Salary Slip", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Salary Slip", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, now.Format("January 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Employee Details", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	detail := func(label, value string) {
		pdf.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}
	detail("Name", es.EmployeeName)
	detail("Department", es.Department)
	detail("Designation", es.Designation)
	detail("Generated", now.Format("02 Jan 2006"))
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Earnings & Deductions", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	amount := func(label string, value float64) {
		pdf.CellFormat(100, 8, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, fmt.Sprintf("%.2f", value), "1", 1, "R", false, 0, "")
	}
	amount("Basic Salary", es.BasicSalary)
	amount("Allowances", es.Allowances)
	amount("Deductions", es.Deductions)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(100, 10, "Net Salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("%.2f", es.NetSalary), "1", 1, "R", false, 0, "")

	return pdf.Output(w)
}
