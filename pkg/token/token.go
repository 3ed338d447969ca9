package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"notetaker/pkg/apperror"
)

// Claims carries the authenticated user id alongside the registered set.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

func Generate(userID string, secret []byte, validity time.Duration) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID: userID,
	})
	return t.SignedString(secret)
}

// Parse validates tokenString and returns the user id it was issued for.
func Parse(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return "", apperror.ErrUnauthorized
	}
	if claims.UserID == "" {
		return "", apperror.ErrUnauthorized
	}
	return claims.UserID, nil
}
