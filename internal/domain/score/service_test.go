package score

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"staffhub/internal/domain/attendance"
)

type fakeStore struct {
	inputs   map[string]DayInputs
	scores   map[string]Score
	warnings []Warning

	employeeIDs   []string
	failInputsFor string

	insertCalls int
	// raceOnInsert simulates a concurrent writer winning the unique
	// constraint on the first insert attempt.
	raceOnInsert bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		inputs: map[string]DayInputs{},
		scores: map[string]Score{},
	}
}

func key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeStore) DayInputs(_ context.Context, employeeID string, date time.Time) (DayInputs, error) {
	if f.failInputsFor == employeeID {
		return DayInputs{}, errors.New("boom")
	}
	return f.inputs[key(employeeID, date)], nil
}

func (f *fakeStore) GetScore(_ context.Context, employeeID string, date time.Time) (Score, error) {
	sc, ok := f.scores[key(employeeID, date)]
	if !ok {
		return Score{}, pgx.ErrNoRows
	}
	return sc, nil
}

func (f *fakeStore) InsertScore(_ context.Context, sc Score) (Score, error) {
	f.insertCalls++
	k := key(sc.EmployeeID, sc.Date)
	if _, exists := f.scores[k]; exists || f.raceOnInsert {
		if f.raceOnInsert {
			f.raceOnInsert = false
			f.scores[k] = Score{ID: "winner", EmployeeID: sc.EmployeeID, Date: sc.Date, Components: sc.Components}
		}
		return Score{}, &pgconn.PgError{Code: "23505"}
	}
	sc.ID = "fake-id"
	f.scores[k] = sc
	return sc, nil
}

func (f *fakeStore) InsertWarning(_ context.Context, w Warning) error {
	f.warnings = append(f.warnings, w)
	return nil
}

func (f *fakeStore) ListScores(_ context.Context, employeeID string, month, year, limit int) ([]Score, error) {
	scores := []Score{}
	for _, sc := range f.scores {
		if sc.EmployeeID != employeeID {
			continue
		}
		if month > 0 && year > 0 && (int(sc.Date.Month()) != month || sc.Date.Year() != year) {
			continue
		}
		scores = append(scores, sc)
	}
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}

func (f *fakeStore) ListWarnings(_ context.Context, employeeID string, limit int) ([]Warning, error) {
	warnings := []Warning{}
	for _, w := range f.warnings {
		if w.EmployeeID == employeeID {
			warnings = append(warnings, w)
		}
	}
	if limit > 0 && len(warnings) > limit {
		warnings = warnings[:limit]
	}
	return warnings, nil
}

func (f *fakeStore) DeleteScore(_ context.Context, employeeID string, date time.Time) error {
	delete(f.scores, key(employeeID, date))
	return nil
}

func (f *fakeStore) EmployeeIDs(_ context.Context) ([]string, error) {
	return f.employeeIDs, nil
}

func (f *fakeStore) ScoresForDate(_ context.Context, _ time.Time) ([]EmployeeScore, error) {
	return nil, nil
}

func (f *fakeStore) BestEmployee(_ context.Context, _, _ int) (BestEmployee, error) {
	return BestEmployee{}, pgx.ErrNoRows
}

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func TestGetOrComputeIdempotent(t *testing.T) {
	store := newFakeStore()
	store.inputs[key("emp-1", day)] = DayInputs{
		AttendanceStatus: attendance.StatusPresent,
		TasksCompleted:   3,
		TasksTotal:       3,
	}
	svc := NewService(store)

	first, err := svc.GetOrCompute(context.Background(), "emp-1", day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Total != 100 {
		t.Fatalf("expected total 100, got %v", first.Total)
	}

	// Change the underlying inputs; the stored score must not move.
	store.inputs[key("emp-1", day)] = DayInputs{AttendanceStatus: attendance.StatusAbsent}

	second, err := svc.GetOrCompute(context.Background(), "emp-1", day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != first.ID || second.Total != first.Total {
		t.Fatalf("expected identical stored score, got %+v vs %+v", first, second)
	}
	if store.insertCalls != 1 {
		t.Fatalf("expected a single insert, got %d", store.insertCalls)
	}
}

func TestGetOrComputeWarningPolicy(t *testing.T) {
	store := newFakeStore()
	store.inputs[key("emp-1", day)] = DayInputs{
		AttendanceStatus: attendance.StatusAbsent,
		TasksCompleted:   0,
		TasksTotal:       2,
		LateCount:        10,
	}
	svc := NewService(store)

	sc, err := svc.GetOrCompute(context.Background(), "emp-1", day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Total != 0 {
		t.Fatalf("expected total 0, got %v", sc.Total)
	}
	if len(store.warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(store.warnings))
	}
	w := store.warnings[0]
	if w.WarningType != WarningTypeLowPerformance || w.Message != WarningMessageLowScore {
		t.Fatalf("unexpected warning: %+v", w)
	}
	if w.Score != 0 {
		t.Fatalf("expected warning to carry the total, got %v", w.Score)
	}

	// A total at exactly the threshold earns no warning.
	nextDay := day.AddDate(0, 0, 1)
	store.inputs[key("emp-2", nextDay)] = DayInputs{
		AttendanceStatus: attendance.StatusAbsent,
		TasksCompleted:   2,
		TasksTotal:       2,
		LateCount:        10,
	}
	sc, err = svc.GetOrCompute(context.Background(), "emp-2", nextDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Total != 40 {
		t.Fatalf("expected total 40, got %v", sc.Total)
	}
	if len(store.warnings) != 1 {
		t.Fatalf("expected no additional warning, got %d", len(store.warnings))
	}
}

func TestGetOrComputeInsertRace(t *testing.T) {
	store := newFakeStore()
	store.inputs[key("emp-1", day)] = DayInputs{AttendanceStatus: attendance.StatusPresent}
	store.raceOnInsert = true
	svc := NewService(store)

	sc, err := svc.GetOrCompute(context.Background(), "emp-1", day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.ID != "winner" {
		t.Fatalf("expected the concurrent winner's row, got %+v", sc)
	}
}

func TestRecalculateAllOverwritesAndContinuesOnFailure(t *testing.T) {
	store := newFakeStore()
	store.employeeIDs = []string{"emp-bad", "emp-good"}
	store.failInputsFor = "emp-bad"
	store.inputs[key("emp-good", day)] = DayInputs{AttendanceStatus: attendance.StatusLate}
	// A stale score from before the attendance correction.
	store.scores[key("emp-good", day)] = Score{ID: "stale", EmployeeID: "emp-good", Date: day, Components: Components{Total: 12}}
	svc := NewService(store)

	summary, err := svc.RecalculateAll(context.Background(), day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Employees != 2 {
		t.Fatalf("expected 2 employees, got %d", summary.Employees)
	}
	if summary.Scored != 1 {
		t.Fatalf("expected 1 employee scored, got %d", summary.Scored)
	}
	if len(summary.Failed) != 1 || summary.Failed[0] != "emp-bad" {
		t.Fatalf("expected emp-bad to fail, got %v", summary.Failed)
	}

	fresh, err := store.GetScore(context.Background(), "emp-good", day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh.ID == "stale" || fresh.Total != 90 {
		t.Fatalf("expected the stale score replaced with Late=30+40+20, got %+v", fresh)
	}
}

func TestRecalculateAppendsWarningPerRun(t *testing.T) {
	store := newFakeStore()
	store.employeeIDs = []string{"emp-1"}
	store.inputs[key("emp-1", day)] = DayInputs{
		AttendanceStatus: attendance.StatusAbsent,
		TasksCompleted:   0,
		TasksTotal:       5,
		LateCount:        10,
	}
	svc := NewService(store)

	// Every recalculation of a sub-threshold day re-applies the warning
	// policy, so each run appends another warning row.
	for run := 1; run <= 2; run++ {
		summary, err := svc.RecalculateAll(context.Background(), day)
		if err != nil {
			t.Fatalf("run %d: unexpected error: %v", run, err)
		}
		if summary.Scored != 1 || len(summary.Failed) != 0 {
			t.Fatalf("run %d: unexpected summary: %+v", run, summary)
		}
		if len(store.warnings) != run {
			t.Fatalf("run %d: expected %d warnings, got %d", run, run, len(store.warnings))
		}
	}
	for _, w := range store.warnings {
		if w.WarningType != WarningTypeLowPerformance || w.Score != 0 {
			t.Fatalf("unexpected warning: %+v", w)
		}
	}
}

func TestBestNotFound(t *testing.T) {
	svc := NewService(newFakeStore())
	if _, err := svc.Best(context.Background(), 3, 2025); !errors.Is(err, ErrNoBestEmployee) {
		t.Fatalf("expected ErrNoBestEmployee, got %v", err)
	}
}

func TestHistoryAverage(t *testing.T) {
	store := newFakeStore()
	store.scores[key("emp-1", day)] = Score{EmployeeID: "emp-1", Date: day, Components: Components{Total: 80}}
	store.scores[key("emp-1", day.AddDate(0, 0, 1))] = Score{EmployeeID: "emp-1", Date: day.AddDate(0, 0, 1), Components: Components{Total: 91}}
	store.scores[key("emp-1", day.AddDate(0, 2, 0))] = Score{EmployeeID: "emp-1", Date: day.AddDate(0, 2, 0), Components: Components{Total: 10}}
	svc := NewService(store)

	h, err := svc.History(context.Background(), "emp-1", 3, 2025, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.Scores) != 2 {
		t.Fatalf("expected 2 scores in March, got %d", len(h.Scores))
	}
	if h.Average != 85.5 {
		t.Fatalf("expected average 85.5, got %v", h.Average)
	}
}

func TestAnalyticsStats(t *testing.T) {
	store := newFakeStore()
	store.scores[key("emp-1", day)] = Score{EmployeeID: "emp-1", Date: day, Components: Components{Total: 35}}
	store.scores[key("emp-1", day.AddDate(0, 0, 1))] = Score{EmployeeID: "emp-1", Date: day.AddDate(0, 0, 1), Components: Components{Total: 95}}
	store.warnings = []Warning{{EmployeeID: "emp-1", Score: 35}}
	svc := NewService(store)

	a, err := svc.Analytics(context.Background(), "emp-1", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Stats.Total != 2 || a.Stats.Highest != 95 || a.Stats.Lowest != 35 || a.Stats.Average != 65 {
		t.Fatalf("unexpected stats: %+v", a.Stats)
	}
	if len(a.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(a.Warnings))
	}
}
