package jwt_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/infra/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJwtManager_RoundTrip(t *testing.T) {
	manager := jwt.NewJwtManager("test-secret")
	userID := uuid.New()
	companyID := uuid.New()

	token, err := manager.CreateToken(userID, companyID, "company_admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, companyID.String(), claims.CompanyID)
	assert.Equal(t, "company_admin", claims.Role)
}

func TestJwtManager_RejectsForeignSecret(t *testing.T) {
	issuer := jwt.NewJwtManager("secret-a")
	verifier := jwt.NewJwtManager("secret-b")

	token, err := issuer.CreateToken(uuid.New(), uuid.New(), "employee")
	require.NoError(t, err)

	_, err = verifier.DecodeToken(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestJwtManager_RejectsGarbage(t *testing.T) {
	manager := jwt.NewJwtManager("test-secret")
	_, err := manager.DecodeToken("definitely.not.a-token")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
