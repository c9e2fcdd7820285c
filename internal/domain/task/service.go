package task

import (
	"context"
	"time"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Assigned(ctx context.Context, employeeID string) ([]Task, Stats, error) {
	tasks, err := s.store.ListAssigned(ctx, employeeID)
	if err != nil {
		return nil, Stats{}, err
	}
	return tasks, BuildStats(tasks), nil
}

func (s *Service) UpdateAssigned(ctx context.Context, taskID, employeeID, status string) (Task, error) {
	return s.store.UpdateAssignedStatus(ctx, taskID, employeeID, status, completionTime(status))
}

func (s *Service) Assign(ctx context.Context, params AssignParams) (Task, error) {
	return s.store.Assign(ctx, params)
}

func (s *Service) All(ctx context.Context) ([]Task, error) {
	return s.store.ListAll(ctx)
}

func (s *Service) StatsForEmployee(ctx context.Context, employeeID string) ([]Task, Stats, error) {
	tasks, err := s.store.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, Stats{}, err
	}
	return tasks, BuildStats(tasks), nil
}

func (s *Service) Delete(ctx context.Context, taskID string) error {
	return s.store.Delete(ctx, taskID)
}

func (s *Service) Personal(ctx context.Context, employeeID string) ([]PersonalTask, error) {
	return s.store.ListPersonal(ctx, employeeID)
}

func (s *Service) CreatePersonal(ctx context.Context, employeeID, title, description string) (PersonalTask, error) {
	return s.store.CreatePersonal(ctx, employeeID, title, description)
}

func (s *Service) UpdatePersonal(ctx context.Context, taskID, employeeID, status string) (PersonalTask, error) {
	return s.store.UpdatePersonalStatus(ctx, taskID, employeeID, status, completionTime(status))
}

func (s *Service) DeletePersonal(ctx context.Context, taskID, employeeID string) error {
	return s.store.DeletePersonal(ctx, taskID, employeeID)
}

func completionTime(status string) *time.Time {
	if status != StatusCompleted {
		return nil
	}
	now := time.Now().UTC()
	return &now
}
