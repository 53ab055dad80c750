package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	base := int64(2)
	tok, err := Generate("secreto", 7, "base_commander", &base, "intendencia", 5)
	require.NoError(t, err)

	claims, err := Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "base_commander", claims.Role)
	require.NotNil(t, claims.HomeBaseID)
	assert.Equal(t, int64(2), *claims.HomeBaseID)
	assert.NotEmpty(t, claims.ID)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate("secreto", 1, "admin", nil, "intendencia", 5)
	require.NoError(t, err)

	_, err = Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate("secreto", 1, "admin", nil, "intendencia", -1)
	require.NoError(t, err)

	_, err = Parse("secreto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", 1, "admin", nil, "intendencia", 5)
	assert.Error(t, err)
}
