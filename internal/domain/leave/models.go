package leave

import "time"

type Balance struct {
	EmployeeID   string    `json:"employeeId"`
	PaidLeaves   int       `json:"paidLeaves"`
	SickLeaves   int       `json:"sickLeaves"`
	UnpaidLeaves int       `json:"unpaidLeaves"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Leave struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employeeId"`
	EmployeeName   string     `json:"employeeName,omitempty"`
	Department     string     `json:"department,omitempty"`
	LeaveType      string     `json:"leaveType"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        time.Time  `json:"endDate"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	ApprovedBy     string     `json:"approvedBy,omitempty"`
	ApprovedByName string     `json:"approvedByName,omitempty"`
	ApprovedAt     *time.Time `json:"approvedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type Stats struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

type Holiday struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}
