package employee

type CreateEmployeeRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
}

type UpdateEmployeeRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
}

// CreateEmployeeResponse carries the generated password exactly once; it is
// never persisted in clear and never shown again.
type CreateEmployeeResponse struct {
	EmployeeResponse
	GeneratedPassword string `json:"generated_password"`
}
