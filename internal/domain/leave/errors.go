package leave

import "errors"

var (
	ErrInvalidRange        = errors.New("leave end date before start date")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrOverlap             = errors.New("leave already applied for this period")
	ErrNotFound            = errors.New("leave request not found")
)
