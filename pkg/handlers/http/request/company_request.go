package request

type CreateCompanyRequest struct {
	Name   string `json:"name"` // @required
	Sector string `json:"sector"`
}

type CreateDepartmentRequest struct {
	Name      string `json:"name"` // @required
	CompanyID string `json:"company_id"`
}
