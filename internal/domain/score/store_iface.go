package score

import (
	"context"
	"time"
)

// StoreAPI is everything the scoring service needs from persistence. The
// pgx-backed Store satisfies it; tests substitute an in-memory fake.
type StoreAPI interface {
	// DayInputs gathers the attendance status for the day, the task counts
	// for the day's calendar month, and the month's late-login count.
	DayInputs(ctx context.Context, employeeID string, date time.Time) (DayInputs, error)

	GetScore(ctx context.Context, employeeID string, date time.Time) (Score, error)
	InsertScore(ctx context.Context, sc Score) (Score, error)
	InsertWarning(ctx context.Context, w Warning) error

	// ListScores returns scores newest first, optionally filtered to a
	// calendar month (both month and year must be set). A limit of 0 means
	// no cap.
	ListScores(ctx context.Context, employeeID string, month, year, limit int) ([]Score, error)
	ListWarnings(ctx context.Context, employeeID string, limit int) ([]Warning, error)

	DeleteScore(ctx context.Context, employeeID string, date time.Time) error
	EmployeeIDs(ctx context.Context) ([]string, error)

	ScoresForDate(ctx context.Context, date time.Time) ([]EmployeeScore, error)
	BestEmployee(ctx context.Context, month, year int) (BestEmployee, error)
}
