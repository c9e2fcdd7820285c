package score

import "time"

type Components struct {
	Attendance  float64 `json:"attendanceScore"`
	Task        float64 `json:"taskScore"`
	Punctuality float64 `json:"punctualityScore"`
	Total       float64 `json:"totalScore"`
}

type Score struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Date       time.Time `json:"date"`
	Components
	CreatedAt time.Time `json:"createdAt"`
}

type Warning struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	WarningType string    `json:"warningType"`
	Message     string    `json:"message"`
	Score       float64   `json:"score"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EmployeeScore is a score row joined with employee identity for HR views.
type EmployeeScore struct {
	Score
	EmployeeName string `json:"employeeName"`
	Department   string `json:"department"`
	Designation  string `json:"designation"`
}

type History struct {
	Scores  []Score `json:"scores"`
	Average float64 `json:"average"`
}

type BestEmployee struct {
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Department   string  `json:"department"`
	Designation  string  `json:"designation"`
	Average      float64 `json:"average"`
	ScoredDays   int     `json:"scoredDays"`
}

// Analytics is the HR per-employee drill-down: the score rows (optionally
// one month's worth), the latest warnings, and summary stats over the rows.
type Analytics struct {
	Scores   []Score        `json:"scores"`
	Warnings []Warning      `json:"warnings"`
	Stats    AnalyticsStats `json:"stats"`
}

type AnalyticsStats struct {
	Average float64 `json:"average"`
	Highest float64 `json:"highest"`
	Lowest  float64 `json:"lowest"`
	Total   int     `json:"total"`
}

// RecalcSummary reports the outcome of a batch recalculation for one date.
type RecalcSummary struct {
	Date      time.Time `json:"date"`
	Employees int       `json:"employees"`
	Scored    int       `json:"scored"`
	Failed    []string  `json:"failed,omitempty"`
}

// DayInputs are the per-employee facts a day's score is derived from.
type DayInputs struct {
	AttendanceStatus string
	TasksCompleted   int
	TasksTotal       int
	LateCount        int
}
