package score

import (
	"math"

	"staffhub/internal/domain/attendance"
)

// AttendanceComponent maps the day's attendance status onto the 40-point
// attendance component. Late still earns most of the points; unexcused
// absence earns none.
func AttendanceComponent(status string) float64 {
	switch status {
	case attendance.StatusPresent:
		return 40
	case attendance.StatusLate:
		return 30
	case attendance.StatusLeave:
		return 20
	default:
		return 0
	}
}

// TaskComponent scores the month's task completion ratio out of 40 points.
// A month with nothing assigned earns full marks rather than penalizing the
// employee for an empty queue.
func TaskComponent(completed, total int) float64 {
	if total <= 0 {
		return TaskMax
	}
	return round2(float64(completed) / float64(total) * TaskMax)
}

// PunctualityComponent starts at 20 and loses 2 points per late arrival in
// the month, floored at zero.
func PunctualityComponent(lateCount int) float64 {
	p := PunctualityMax - LatePenalty*float64(lateCount)
	if p < 0 {
		return 0
	}
	return p
}

// ComputeComponents derives the day's full score breakdown. Each component
// is rounded to 2 decimal places before summing.
func ComputeComponents(in DayInputs) Components {
	c := Components{
		Attendance:  round2(AttendanceComponent(in.AttendanceStatus)),
		Task:        round2(TaskComponent(in.TasksCompleted, in.TasksTotal)),
		Punctuality: round2(PunctualityComponent(in.LateCount)),
	}
	c.Total = round2(c.Attendance + c.Task + c.Punctuality)
	return c
}

// NeedsWarning reports whether the day's total falls below the warning
// threshold.
func NeedsWarning(total float64) bool {
	return total < WarningThreshold
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
