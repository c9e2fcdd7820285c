package leave

import "time"

// Days returns the inclusive day count between two calendar dates.
func Days(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// CheckBalance verifies the balance covers a request. Unpaid leave is never
// limited; it accrues on the balance instead.
func CheckBalance(balance Balance, leaveType string, days int) error {
	switch leaveType {
	case TypePaid:
		if balance.PaidLeaves < days {
			return ErrInsufficientBalance
		}
	case TypeSick:
		if balance.SickLeaves < days {
			return ErrInsufficientBalance
		}
	}
	return nil
}

// BuildStats summarizes an employee's leave requests by status.
func BuildStats(leaves []Leave) Stats {
	stats := Stats{Total: len(leaves)}
	for _, l := range leaves {
		switch l.Status {
		case StatusApproved:
			stats.Approved++
		case StatusPending:
			stats.Pending++
		case StatusRejected:
			stats.Rejected++
		}
	}
	return stats
}
