package task

const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

var ValidStatuses = []string{StatusPending, StatusInProgress, StatusCompleted}
