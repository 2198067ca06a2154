package leave

type CreateLeaveTypeRequest struct {
	Name             string `json:"name" binding:"required,max=50"`
	MaxDaysPerYear   int    `json:"max_days_per_year" binding:"required,min=1"`
	RequiresApproval *bool  `json:"requires_approval"`
	Description      string `json:"description"`
}

type CreateLeaveRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type LeaveTypeResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	MaxDaysPerYear   int    `json:"max_days_per_year"`
	RequiresApproval bool   `json:"requires_approval"`
	Description      string `json:"description"`
	IsActive         bool   `json:"is_active"`
}

type LeaveRequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	LeaveType       string  `json:"leave_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

// BalanceEntry reports one leave type's yearly usage. Available is not
// clamped, so over-committed pending requests surface as a negative number.
type BalanceEntry struct {
	LeaveType string `json:"leave_type"`
	Allowed   int    `json:"allowed"`
	Used      int    `json:"used"`
	Pending   int    `json:"pending"`
	Available int    `json:"available"`
}
