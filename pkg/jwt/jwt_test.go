package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 42, "ana@almacen.test", "admin", "almacen-test", 60)
	require.NoError(t, err)

	id, email, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "ana@almacen.test", email)
	assert.Equal(t, "admin", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "a@b.test", "user", "x", 60)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "a@b.test", "user", "x", -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "un token vencido debe rechazarse")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", 1, "a@b.test", "user", "x", 60)
	assert.Error(t, err)
}
