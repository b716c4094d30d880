package request

type CreateUserRequest struct {
	Email        string `json:"email"`    // @required
	Name         string `json:"name"`     // @required
	Password     string `json:"password"` // @required
	CompanyID    string `json:"company_id"`
	DepartmentID string `json:"department_id"`
	Role         string `json:"role"`
}

// UpdateUserRequest uses pointers so absent fields are left untouched.
type UpdateUserRequest struct {
	Name         *string `json:"name"`
	Role         *string `json:"role"`
	DepartmentID *string `json:"department_id"`
	Active       *bool   `json:"active"`
	Password     *string `json:"password"`
}
