package score

const (
	// Component maxima. The three components sum to 100.
	AttendanceMax  = 40.0
	TaskMax        = 40.0
	PunctualityMax = 20.0

	// LatePenalty is deducted from the punctuality component per late day
	// in the month.
	LatePenalty = 2.0

	// WarningThreshold is the total below which a performance warning is
	// issued for the day.
	WarningThreshold = 40.0

	// MinScoreDays is how many scored days an employee needs before they
	// are eligible for best-employee ranking.
	MinScoreDays = 15

	WarningTypeLowPerformance = "Low Performance"
	WarningMessageLowScore    = "Daily performance score below 40"
)
