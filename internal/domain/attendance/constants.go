package attendance

const (
	StatusPresent   = "Present"
	StatusLate      = "Late"
	StatusAbsent    = "Absent"
	StatusLeave     = "Leave"
	StatusNotMarked = "Not Marked"
)

// ValidStatuses are the values HR may set through the manual mark path.
var ValidStatuses = []string{StatusPresent, StatusLate, StatusAbsent, StatusLeave}

// DefaultOfficeStart is the fallback office start time (HH:MM:SS).
const DefaultOfficeStart = "09:00:00"
