package score

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNoBestEmployee means no employee has enough scored days in the period.
// It is a valid empty result, not a failure.
var ErrNoBestEmployee = errors.New("no employee qualifies for best employee")

const (
	warningHistoryLimit   = 10
	analyticsWarningLimit = 5
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// GetOrCompute returns the employee's score for the date, computing and
// persisting it on first request. Recomputing an already-scored day returns
// the stored row unchanged, so repeated calls are idempotent even if the
// underlying attendance or task data changed in between.
func (s *Service) GetOrCompute(ctx context.Context, employeeID string, date time.Time) (Score, error) {
	existing, err := s.store.GetScore(ctx, employeeID, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Score{}, fmt.Errorf("looking up score: %w", err)
	}

	in, err := s.store.DayInputs(ctx, employeeID, date)
	if err != nil {
		return Score{}, fmt.Errorf("gathering score inputs: %w", err)
	}
	components := ComputeComponents(in)

	inserted, err := s.store.InsertScore(ctx, Score{
		EmployeeID: employeeID,
		Date:       date,
		Components: components,
	})
	if err != nil {
		// Two concurrent first requests can race on the unique
		// (employee_id, date) constraint; the loser reads the winner's row.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return s.store.GetScore(ctx, employeeID, date)
		}
		return Score{}, fmt.Errorf("inserting score: %w", err)
	}

	if NeedsWarning(components.Total) {
		warning := Warning{
			EmployeeID:  employeeID,
			WarningType: WarningTypeLowPerformance,
			Message:     WarningMessageLowScore,
			Score:       components.Total,
			Date:        date,
		}
		if err := s.store.InsertWarning(ctx, warning); err != nil {
			slog.Warn("failed to record performance warning",
				slog.String("employeeId", employeeID),
				slog.String("date", date.Format("2006-01-02")),
				slog.String("error", err.Error()))
		}
	}

	return inserted, nil
}

// History returns the employee's scores newest first with their average.
// Month and year filter to one calendar month when both are set; a limit of
// 0 returns everything.
func (s *Service) History(ctx context.Context, employeeID string, month, year, limit int) (History, error) {
	scores, err := s.store.ListScores(ctx, employeeID, month, year, limit)
	if err != nil {
		return History{}, err
	}

	h := History{Scores: scores, Average: averageTotal(scores)}
	return h, nil
}

func (s *Service) Warnings(ctx context.Context, employeeID string) ([]Warning, error) {
	return s.store.ListWarnings(ctx, employeeID, warningHistoryLimit)
}

func (s *Service) AllForDate(ctx context.Context, date time.Time) ([]EmployeeScore, error) {
	return s.store.ScoresForDate(ctx, date)
}

func (s *Service) Best(ctx context.Context, month, year int) (BestEmployee, error) {
	be, err := s.store.BestEmployee(ctx, month, year)
	if errors.Is(err, pgx.ErrNoRows) {
		return BestEmployee{}, ErrNoBestEmployee
	}
	return be, err
}

// Analytics is the HR drill-down for one employee: scores (optionally one
// month), the latest warnings, and min/max/average over the returned rows.
func (s *Service) Analytics(ctx context.Context, employeeID string, month, year int) (Analytics, error) {
	scores, err := s.store.ListScores(ctx, employeeID, month, year, 0)
	if err != nil {
		return Analytics{}, fmt.Errorf("listing scores: %w", err)
	}
	warnings, err := s.store.ListWarnings(ctx, employeeID, analyticsWarningLimit)
	if err != nil {
		return Analytics{}, fmt.Errorf("listing warnings: %w", err)
	}

	stats := AnalyticsStats{Average: averageTotal(scores), Total: len(scores)}
	for i, sc := range scores {
		if i == 0 || sc.Total > stats.Highest {
			stats.Highest = sc.Total
		}
		if i == 0 || sc.Total < stats.Lowest {
			stats.Lowest = sc.Total
		}
	}

	return Analytics{Scores: scores, Warnings: warnings, Stats: stats}, nil
}

// RecalculateAll rescores every employee for one date: the existing score row
// is deleted and recomputed from current attendance and task state. This is
// the only path that overwrites a persisted score. One employee failing does
// not abort the run; failures are collected in the summary.
func (s *Service) RecalculateAll(ctx context.Context, date time.Time) (RecalcSummary, error) {
	ids, err := s.store.EmployeeIDs(ctx)
	if err != nil {
		return RecalcSummary{}, fmt.Errorf("listing employees: %w", err)
	}

	summary := RecalcSummary{Date: date, Employees: len(ids)}
	for _, id := range ids {
		if err := s.recalculateEmployee(ctx, id, date); err != nil {
			slog.Warn("score recalculation failed for employee",
				slog.String("employeeId", id),
				slog.String("date", date.Format("2006-01-02")),
				slog.String("error", err.Error()))
			summary.Failed = append(summary.Failed, id)
			continue
		}
		summary.Scored++
	}
	return summary, nil
}

func (s *Service) recalculateEmployee(ctx context.Context, employeeID string, date time.Time) error {
	if err := s.store.DeleteScore(ctx, employeeID, date); err != nil {
		return fmt.Errorf("deleting score: %w", err)
	}
	if _, err := s.GetOrCompute(ctx, employeeID, date); err != nil {
		return err
	}
	return nil
}

func averageTotal(scores []Score) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, sc := range scores {
		sum += sc.Total
	}
	return round2(sum / float64(len(scores)))
}
