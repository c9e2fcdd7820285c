package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Apply validates a request against the employee's balance and any existing
// requests over the same period, then records it as Pending.
func (s *Service) Apply(ctx context.Context, employeeID, leaveType string, start, end time.Time, reason string) (Leave, error) {
	days, err := Days(start, end)
	if err != nil {
		return Leave{}, err
	}

	balance, err := s.store.Balance(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Leave{}, ErrNotFound
		}
		return Leave{}, fmt.Errorf("loading leave balance: %w", err)
	}
	if err := CheckBalance(balance, leaveType, days); err != nil {
		return Leave{}, err
	}

	overlapping, err := s.store.CountOverlapping(ctx, employeeID, start, end)
	if err != nil {
		return Leave{}, fmt.Errorf("checking overlapping leaves: %w", err)
	}
	if overlapping > 0 {
		return Leave{}, ErrOverlap
	}

	return s.store.Insert(ctx, Leave{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  start,
		EndDate:    end,
		Reason:     reason,
		Status:     StatusPending,
	})
}

func (s *Service) Cancel(ctx context.Context, id, employeeID string) error {
	err := s.store.DeletePending(ctx, id, employeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *Service) Balance(ctx context.Context, employeeID string) (Balance, error) {
	balance, err := s.store.Balance(ctx, employeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Balance{}, ErrNotFound
	}
	return balance, err
}

func (s *Service) History(ctx context.Context, employeeID string) ([]Leave, Stats, error) {
	leaves, err := s.store.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, Stats{}, err
	}
	return leaves, BuildStats(leaves), nil
}

func (s *Service) All(ctx context.Context, status string) ([]Leave, error) {
	return s.store.ListAll(ctx, status)
}

// Decide approves or rejects a pending request. Approval debits the balance
// and marks the covered days as Leave in attendance; rejection only flips
// the status.
func (s *Service) Decide(ctx context.Context, id, status, approvedBy string) (Leave, error) {
	l, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Leave{}, ErrNotFound
		}
		return Leave{}, err
	}
	if l.Status != StatusPending {
		return Leave{}, ErrNotFound
	}

	switch status {
	case StatusApproved:
		days, err := Days(l.StartDate, l.EndDate)
		if err != nil {
			return Leave{}, err
		}
		balance, err := s.store.Balance(ctx, l.EmployeeID)
		if err != nil {
			return Leave{}, fmt.Errorf("loading leave balance: %w", err)
		}
		if err := CheckBalance(balance, l.LeaveType, days); err != nil {
			return Leave{}, err
		}
		if err := s.store.Approve(ctx, l, approvedBy, days); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return Leave{}, ErrNotFound
			}
			return Leave{}, err
		}
		slog.Info("leave approved",
			slog.String("leaveId", l.ID),
			slog.String("employeeId", l.EmployeeID),
			slog.Int("days", days))
	case StatusRejected:
		if err := s.store.Reject(ctx, id, approvedBy); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return Leave{}, ErrNotFound
			}
			return Leave{}, err
		}
	}

	return s.store.Get(ctx, id)
}

func (s *Service) Holidays(ctx context.Context) ([]Holiday, error) {
	return s.store.ListHolidays(ctx)
}

func (s *Service) AddHoliday(ctx context.Context, name string, date time.Time) (Holiday, error) {
	return s.store.CreateHoliday(ctx, name, date)
}
