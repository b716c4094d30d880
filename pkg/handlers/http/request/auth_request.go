package request

type RegisterRequest struct {
	Email        string `json:"email"`     // @required
	Name         string `json:"name"`      // @required
	Password     string `json:"password"`  // @required
	CompanyID    string `json:"company_id"`
	DepartmentID string `json:"department_id"`
	Role         string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
