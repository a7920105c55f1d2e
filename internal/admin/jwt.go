package admin

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/karlos-perez/hundred-to-one/pkg/errors"
)

const tokenLifetime = 24 * time.Hour

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// generateToken issues a signed session token for an admin.
func generateToken(email, secret string) (string, error) {
	now := time.Now()
	c := claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// parseToken validates a session token and returns the admin email.
func parseToken(token, secret string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(errors.ErrCodeUnauthorized, "unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUnauthorized, "invalid token")
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return "", errors.New(errors.ErrCodeUnauthorized, "invalid token")
	}
	return c.Email, nil
}
