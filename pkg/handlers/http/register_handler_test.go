package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/orgpulse/orgpulse/pkg/domain/user"
	handlers "github.com/orgpulse/orgpulse/pkg/handlers/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type registerRepositoryMock struct {
	userRepositoryMock
	saved *user.User
}

func (m *registerRepositoryMock) Save(ctx context.Context, u *user.User) error {
	m.saved = u
	return nil
}

func (m *registerRepositoryMock) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func setupRegisterApp(repo *registerRepositoryMock) *fiber.App {
	app := fiber.New()
	app.Post("/register", handlers.NewRegisterHandler(testLogger(), repo).Handle)
	return app
}

func TestRegisterHandler_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "malformed email",
			body: `{"email":"invalid-email","name":"Sam","password":"correct horse"}`,
		},
		{
			name: "email without domain",
			body: `{"email":"sam@","name":"Sam","password":"correct horse"}`,
		},
		{
			name: "short password",
			body: `{"email":"sam@example.com","name":"Sam","password":"short"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &registerRepositoryMock{}
			app := setupRegisterApp(repo)

			req := httptest.NewRequest("POST", "/register", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Nil(t, repo.saved)
		})
	}
}

func TestRegisterHandler_CreatesUserForValidInput(t *testing.T) {
	repo := &registerRepositoryMock{}
	app := setupRegisterApp(repo)

	body := `{"email":"sam@example.com","name":"Sam","password":"correct horse"}`
	req := httptest.NewRequest("POST", "/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.NotNil(t, repo.saved)
	assert.Equal(t, "sam@example.com", repo.saved.Email)
	assert.NotEmpty(t, repo.saved.PasswordHash)

	var created user.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Sam", created.Name)
}
