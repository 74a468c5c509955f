package jwt_test

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depotix/depotix-api/pkg/jwt"
)

const secret = "depotix-test-secret"

func TestGenerateAndParse(t *testing.T) {
	tok, err := jwt.Generate(secret, "u1", "c1", jwt.RoleStaff, "depotix", 5)
	require.NoError(t, err)

	userID, companyID, role, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "c1", companyID)
	assert.Equal(t, jwt.RoleStaff, role)
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.Claims{UserID: "u1", CompanyID: "c1", Role: jwt.RoleAdmin}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_RequiresExpiration(t *testing.T) {
	claims := jwt.Claims{UserID: "u1", CompanyID: "c1", Role: jwt.RoleAdmin}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := jwt.Generate("", "u1", "c1", jwt.RoleAdmin, "depotix", 5)
	assert.Error(t, err)
	_, _, _, err = jwt.Parse("", "x.y.z")
	assert.Error(t, err)
}
