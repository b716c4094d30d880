package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/common"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/user"
	handlers "github.com/orgpulse/orgpulse/pkg/handlers/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepositoryMock struct {
	lastFilter user.ListFilter
	users      []user.User
	total      int64
}

func (m *userRepositoryMock) Save(ctx context.Context, u *user.User) error { return nil }

func (m *userRepositoryMock) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return nil, domain.NewNotFoundError("user", id)
}

func (m *userRepositoryMock) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, domain.NewNotFoundError("user", uuid.Nil)
}

func (m *userRepositoryMock) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	m.lastFilter = filter
	return m.users, m.total, nil
}

func (m *userRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func setupListUsersApp(repo *userRepositoryMock, role string, companyID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Get("/users", func(c *fiber.Ctx) error {
		c.Locals(common.RoleContextKey, role)
		c.Locals(common.CompanyIDContextKey, companyID.String())
		return c.Next()
	}, handlers.NewListUsersHandler(testLogger(), repo).Handle)
	return app
}

func TestListUsersHandler_AppliesQueryFilters(t *testing.T) {
	companyID := uuid.New()
	departmentID := uuid.New()
	repo := &userRepositoryMock{
		users: []user.User{{ID: uuid.New(), Name: "Dana", Email: "dana@example.com"}},
		total: 37,
	}
	app := setupListUsersApp(repo, user.RoleCompanyAdmin, companyID)

	req := httptest.NewRequest("GET",
		"/users?page=2&limit=10&search=dana&role=employee&department_id="+departmentID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, companyID, repo.lastFilter.CompanyID)
	assert.Equal(t, departmentID, repo.lastFilter.DepartmentID)
	assert.Equal(t, "employee", repo.lastFilter.Role)
	assert.Equal(t, "dana", repo.lastFilter.Search)
	assert.Equal(t, 2, repo.lastFilter.Page)
	assert.Equal(t, 10, repo.lastFilter.Limit)

	var body struct {
		Users []user.User `json:"users"`
		Total int64       `json:"total"`
		Page  int         `json:"page"`
		Limit int         `json:"limit"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Users, 1)
	assert.Equal(t, int64(37), body.Total)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 10, body.Limit)
}

func TestListUsersHandler_SuperAdminIsNotCompanyScoped(t *testing.T) {
	repo := &userRepositoryMock{}
	app := setupListUsersApp(repo, user.RoleSuperAdmin, uuid.New())

	resp, err := app.Test(httptest.NewRequest("GET", "/users", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, uuid.Nil, repo.lastFilter.CompanyID)
}

func TestListUsersHandler_RejectsInvalidFilters(t *testing.T) {
	app := setupListUsersApp(&userRepositoryMock{}, user.RoleCompanyAdmin, uuid.New())

	resp, err := app.Test(httptest.NewRequest("GET", "/users?role=owner", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/users?department_id=nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
