package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateParse(t *testing.T) {
	token, err := Generate(secret, "u1", "c1", "TUTOR", "practicas-api", 5)
	require.NoError(t, err)

	userID, companyID, role, err := Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "c1", companyID)
	assert.Equal(t, "TUTOR", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate(secret, "u1", "", "ESTUDIANTE", "practicas-api", 5)
	require.NoError(t, err)

	_, _, _, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := Generate(secret, "u1", "", "ESTUDIANTE", "practicas-api", -1)
	require.NoError(t, err)

	_, _, _, err = Parse(secret, token)
	assert.Error(t, err)
}

func TestRefresh_NoSirveComoAcceso(t *testing.T) {
	refresh, err := GenerateRefresh(secret, "u1", "", "DOCENTE", "practicas-api", 60)
	require.NoError(t, err)

	_, _, _, err = Parse(secret, refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	claims, err := ParseRefresh(secret, refresh)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "DOCENTE", claims.Role)

	access, err := Generate(secret, "u1", "", "DOCENTE", "practicas-api", 60)
	require.NoError(t, err)
	_, err = ParseRefresh(secret, access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestGenerate_SinSecreto(t *testing.T) {
	_, err := Generate("", "u1", "", "ESTUDIANTE", "x", 5)
	assert.Error(t, err)
}
