package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Polizas-api/pkg/jwt"
)

const (
	secret = "clave-de-prueba"
	issuer = "polizas-api-test"
)

func TestGenerateYParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "emp-1", []string{"user", "sub_admin"}, issuer, 60)
	require.NoError(t, err)

	userID, companyID, roles, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)

	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "emp-1", companyID)
	assert.Equal(t, []string{"user", "sub_admin"}, roles)
}

// CompanyID vacío viaja como claim omitido y vuelve vacío.
func TestGenerateYParse_SinEmpresa(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "", []string{"user"}, issuer, 60)
	require.NoError(t, err)

	_, companyID, _, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Empty(t, companyID)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "", []string{"user"}, issuer, 60)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otra-clave", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "", []string{"user"}, issuer, -5)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "", nil, issuer, 60)
	assert.Error(t, err)
}
