package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SignToken issues an HS256 token embedding the requester's id and role.
func SignToken(identity Identity, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: identity.ID,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken parses and validates a token, returning the embedded identity.
func VerifyToken(tokenString, secret string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &Identity{ID: claims.UserID, Role: claims.Role}, nil
}
