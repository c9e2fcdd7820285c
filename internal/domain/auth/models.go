package auth

import "time"

type AuthUser struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	MFAEnabled   bool
	MFASecret    string
	EmployeeID   string
	Name         string
	OfficeStart  string
}

type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	EmployeeID  string    `json:"employeeId,omitempty"`
	Name        string    `json:"name,omitempty"`
	Department  string    `json:"department,omitempty"`
	Designation string    `json:"designation,omitempty"`
	JoinDate    time.Time `json:"joinDate,omitempty"`
}

type EmployeeSummary struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	EmployeeID  string    `json:"employeeId"`
	Name        string    `json:"name"`
	Department  string    `json:"department"`
	Designation string    `json:"designation"`
	JoinDate    time.Time `json:"joinDate"`
}

type RegisterParams struct {
	Email       string
	Password    string
	Role        string
	Name        string
	Department  string
	Designation string
	JoinDate    time.Time
	BasicSalary float64
}
