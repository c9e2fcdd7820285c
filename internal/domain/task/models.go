package task

import (
	"math"
	"time"
)

type Task struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employeeId"`
	AssignedBy     string     `json:"assignedBy,omitempty"`
	AssignedByName string     `json:"assignedByName,omitempty"`
	EmployeeName   string     `json:"employeeName,omitempty"`
	Department     string     `json:"department,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Priority       string     `json:"priority,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	Status         string     `json:"status"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type PersonalTask struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type Stats struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Pending    int     `json:"pending"`
	InProgress int     `json:"inProgress"`
	Percentage float64 `json:"percentage"`
}

// BuildStats summarizes assigned-task progress; Pending counts anything not
// yet completed, mirroring the dashboard's "outstanding" number.
func BuildStats(tasks []Task) Stats {
	stats := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusCompleted:
			stats.Completed++
		case StatusInProgress:
			stats.InProgress++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.Percentage = math.Round(float64(stats.Completed)/float64(stats.Total)*100*100) / 100
	}
	return stats
}

type AssignParams struct {
	EmployeeID  string
	AssignedBy  string
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
}
