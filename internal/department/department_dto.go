package department

type CreateDepartmentRequest struct {
	Name       string `json:"name" binding:"required"`
	CodePrefix string `json:"code_prefix" binding:"required,min=2,max=10"`
}

type UpdateDepartmentRequest struct {
	Name       string `json:"name" binding:"required"`
	CodePrefix string `json:"code_prefix" binding:"required,min=2,max=10"`
}

type DepartmentResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CodePrefix string `json:"code_prefix"`
}
