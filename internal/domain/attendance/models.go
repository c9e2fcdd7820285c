package attendance

import "time"

type Record struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	Date       time.Time  `json:"date"`
	LoginTime  *time.Time `json:"loginTime,omitempty"`
	LogoutTime *time.Time `json:"logoutTime,omitempty"`
	Status     string     `json:"status"`
	IsLate     bool       `json:"isLate"`
}

type EmployeeRecord struct {
	Record
	Name        string `json:"name"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
}

type Stats struct {
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	Percentage float64 `json:"percentage"`
}
