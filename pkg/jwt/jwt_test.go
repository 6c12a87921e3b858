package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/estoque-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "estoque-api-test"
)

func TestGenerateYParse(t *testing.T) {
	before := time.Now()
	tok, exp, err := pkgjwt.Generate(testSecret, testUserID, "operador", testIssuer, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.WithinDuration(t, before.Add(time.Hour), exp, 2*time.Second)

	claims, err := pkgjwt.Parse(testSecret, testIssuer, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID())
	assert.Equal(t, "operador", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestParse_Rechazos(t *testing.T) {
	valid, _, err := pkgjwt.Generate(testSecret, testUserID, "admin", testIssuer, time.Hour)
	require.NoError(t, err)
	expired, _, err := pkgjwt.Generate(testSecret, testUserID, "admin", testIssuer, -time.Hour)
	require.NoError(t, err)

	// HS512 con el mismo secret: el método no está permitido.
	hs512, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: testUserID, ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
		Role:             "admin",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	// Sin vencimiento.
	noExp, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: testUserID},
		Role:             "admin",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	cases := []struct {
		name, secret, issuer, token string
	}{
		{"vencido", testSecret, testIssuer, expired},
		{"secret incorrecto", "otro-secret-completamente-distinto", testIssuer, valid},
		{"issuer ajeno", testSecret, "otro-emisor", valid},
		{"algoritmo no permitido", testSecret, "", hs512},
		{"sin exp", testSecret, "", noExp},
		{"basura", testSecret, "", "token.invalido.aqui"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pkgjwt.Parse(tc.secret, tc.issuer, tc.token)
			assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
		})
	}
}

func TestParse_IssuerVacioNoSeVerifica(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testSecret, testUserID, "admin", "cualquiera", time.Minute)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(testSecret, "", tok)
	assert.NoError(t, err)
}

func TestGenerate_EntradaInvalida(t *testing.T) {
	_, _, err := pkgjwt.Generate("", testUserID, "admin", testIssuer, time.Minute)
	assert.Error(t, err)
	_, _, err = pkgjwt.Generate(testSecret, "", "admin", testIssuer, time.Minute)
	assert.Error(t, err)
}
