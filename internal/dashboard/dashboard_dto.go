package dashboard

// ReportQuery narrows the report to a date range and optional filters.
// Dates are "YYYY-MM-DD"; both default to today when absent. Employee
// matches code or name as a substring, Department is a department id.
type ReportQuery struct {
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	Employee   string `form:"employee"`
	Department string `form:"department"`
}

type RowResponse struct {
	Date         string   `json:"date"`
	EmployeeCode string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	Department   string   `json:"department"`
	CheckIn      string   `json:"check_in"`
	CheckOut     string   `json:"check_out"`
	Status       string   `json:"status"`
	WorkingHours *float64 `json:"working_hours"`
	Permissions  string   `json:"permissions"`
	Remarks      string   `json:"remarks"`
}

type Summary struct {
	TotalEmployees    int     `json:"total_employees"`
	Present           int     `json:"present"`
	Absent            int     `json:"absent"`
	Late              int     `json:"late"`
	TotalWorkingHours float64 `json:"total_working_hours"`
}

type ReportResponse struct {
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Rows      []RowResponse `json:"rows"`
	Summary   Summary       `json:"summary"`
}
