package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// MarkLogin records attendance for an employee's first login of the day.
func (s *Service) MarkLogin(ctx context.Context, employeeID, officeStart string, now time.Time) error {
	status, late := LoginStatus(now, officeStart)
	return s.store.InsertLogin(ctx, employeeID, dateOnly(now), now, status, late)
}

// Today returns the day's record; found is false when attendance is not marked.
func (s *Service) Today(ctx context.Context, employeeID string, now time.Time) (Record, bool, error) {
	record, err := s.store.Get(ctx, employeeID, dateOnly(now))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return record, true, nil
}

func (s *Service) MarkLogout(ctx context.Context, employeeID string, now time.Time) error {
	return s.store.SetLogout(ctx, employeeID, dateOnly(now), now)
}

// History returns the most recent records (30 when filtered by nothing)
// together with presence statistics.
func (s *Service) History(ctx context.Context, employeeID string, month, year int) ([]Record, Stats, error) {
	records, err := s.store.List(ctx, employeeID, month, year, 30)
	if err != nil {
		return nil, Stats{}, err
	}
	return records, BuildStats(records), nil
}

// EmployeeHistory is the HR view: the full filtered history, no cap.
func (s *Service) EmployeeHistory(ctx context.Context, employeeID string, month, year int) ([]Record, Stats, error) {
	records, err := s.store.List(ctx, employeeID, month, year, 0)
	if err != nil {
		return nil, Stats{}, err
	}
	return records, BuildStats(records), nil
}

func (s *Service) AllForDate(ctx context.Context, date time.Time) ([]EmployeeRecord, error) {
	return s.store.ListForDate(ctx, dateOnly(date))
}

// Mark is the manual HR path: set a status (and optional login time) for a day.
func (s *Service) Mark(ctx context.Context, employeeID string, date time.Time, status string, login *time.Time) error {
	return s.store.Upsert(ctx, employeeID, dateOnly(date), status, login)
}
