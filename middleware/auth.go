package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"

	"notetaker/pkg/logger"
	"notetaker/pkg/token"
)

type contextKey string

const UserIDKey contextKey = "userID"

// UserID returns the authenticated user id stored by AuthMiddleware.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(UserIDKey).(string)
	return id
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// WebSocket clients pass the token in the query string because
		// the browser WebSocket API cannot set headers.
		tokenString := r.URL.Query().Get("token")

		if tokenString == "" {
			authHeader := r.Header.Get("Authorization")
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			http.Error(w, "Unauthorized: no token provided", http.StatusUnauthorized)
			return
		}

		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			logger.Sugar.Error("JWT_SECRET environment variable not set")
			http.Error(w, "Server is not configured to validate tokens", http.StatusInternalServerError)
			return
		}

		userID, err := token.Parse(tokenString, []byte(secret))
		if err != nil {
			http.Error(w, "Unauthorized: invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
