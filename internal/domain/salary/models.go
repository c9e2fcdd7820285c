package salary

import "time"

type Salary struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	BasicSalary float64   `json:"basicSalary"`
	Allowances  float64   `json:"allowances"`
	Deductions  float64   `json:"deductions"`
	NetSalary   float64   `json:"netSalary"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type EmployeeSalary struct {
	Salary
	EmployeeName string `json:"employeeName"`
	Department   string `json:"department"`
	Designation  string `json:"designation"`
}

type Stats struct {
	TotalPayroll float64 `json:"totalPayroll"`
	AverageNet   float64 `json:"averageNet"`
	HighestNet   float64 `json:"highestNet"`
	LowestNet    float64 `json:"lowestNet"`
	Employees    int     `json:"employees"`
}

type UpsertParams struct {
	BasicSalary float64
	Allowances  float64
	Deductions  float64
}
