package permission

type CreatePermissionRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type RejectPermissionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type PermissionResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name,omitempty"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	DurationHours float64 `json:"duration_hours"`
}
