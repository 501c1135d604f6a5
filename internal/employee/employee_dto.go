package employee

type AllowanceInput struct {
	Name    string `json:"name" binding:"required"`
	Amount  int64  `json:"amount"`
	Enabled bool   `json:"enabled"`
}

type CreateEmployeeRequest struct {
	FullName           string           `json:"full_name" binding:"required"`
	Email              string           `json:"email" binding:"required,email"`
	Role               string           `json:"role" binding:"required"`
	MonthlyBasicSalary int64            `json:"monthly_basic_salary"`
	Allowances         []AllowanceInput `json:"allowances"`
}

type UpdateEmployeeRequest struct {
	FullName           string           `json:"full_name" binding:"required"`
	Email              string           `json:"email" binding:"required,email"`
	Role               string           `json:"role" binding:"required"`
	MonthlyBasicSalary int64            `json:"monthly_basic_salary"`
	Allowances         []AllowanceInput `json:"allowances"`
}

type AllowanceResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Amount  int64  `json:"amount"`
	Enabled bool   `json:"enabled"`
}

type EmployeeResponse struct {
	ID                 string              `json:"id"`
	FullName           string              `json:"full_name"`
	Email              string              `json:"email"`
	Role               string              `json:"role"`
	MonthlyBasicSalary int64               `json:"monthly_basic_salary"`
	Allowances         []AllowanceResponse `json:"allowances"`
}
