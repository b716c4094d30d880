package common

type contextKey string

const (
	UserIDContextKey    contextKey = "user_id"
	CompanyIDContextKey contextKey = "company_id"
	RoleContextKey      contextKey = "role"
)
