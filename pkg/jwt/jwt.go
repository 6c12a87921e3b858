// Package jwt emite y valida los tokens Bearer de los operadores (HS256).
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken agrupa firma incorrecta, token vencido, issuer ajeno y claims incompletos.
var ErrInvalidToken = errors.New("jwt: token inválido")

// Leeway tolerancia de reloj entre emisor y validador.
const Leeway = 30 * time.Second

// Claims el subject es el id del operador.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// UserID devuelve el subject del token.
func (c *Claims) UserID() string { return c.Subject }

// Generate firma un token para userID con vigencia ttl y devuelve también su vencimiento.
func Generate(secret, userID, role, issuer string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, fmt.Errorf("jwt: secret vacío")
	}
	if userID == "" || role == "" {
		return "", time.Time{}, fmt.Errorf("jwt: userID y role son obligatorios")
	}
	now := time.Now()
	exp := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role: role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: firmar: %w", err)
	}
	return signed, exp, nil
}

// Parse valida firma, vencimiento y (si issuer no es vacío) el emisor.
// Todo rechazo envuelve ErrInvalidToken.
func Parse(secret, issuer, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(Leeway),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	var claims Claims
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, fmt.Errorf("%w: subject o role ausentes", ErrInvalidToken)
	}
	return &claims, nil
}
