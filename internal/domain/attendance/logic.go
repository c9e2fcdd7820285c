package attendance

import (
	"math"
	"time"
)

// IsLate reports whether a login falls after the office start time, compared
// on the wall-clock HH:MM:SS of the login timestamp.
func IsLate(login time.Time, officeStart string) bool {
	if officeStart == "" {
		officeStart = DefaultOfficeStart
	}
	return login.Format("15:04:05") > officeStart
}

// LoginStatus derives the attendance status recorded at login time.
func LoginStatus(login time.Time, officeStart string) (status string, late bool) {
	if IsLate(login, officeStart) {
		return StatusLate, true
	}
	return StatusPresent, false
}

// BuildStats summarizes attendance records. Present counts both on-time and
// late days, matching how attendance percentage is reported.
func BuildStats(records []Record) Stats {
	stats := Stats{Total: len(records)}
	for _, record := range records {
		switch record.Status {
		case StatusPresent, StatusLate:
			stats.Present++
		case StatusAbsent:
			stats.Absent++
		}
		if record.IsLate {
			stats.Late++
		}
	}
	if stats.Total > 0 {
		stats.Percentage = math.Round(float64(stats.Present)/float64(stats.Total)*100*100) / 100
	}
	return stats
}

func dateOnly(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
