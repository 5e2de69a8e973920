package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/TmanScript/umoja-swap-collection/internal/usecase"
	"github.com/TmanScript/umoja-swap-collection/pkg/logger"
)

type contextKey string

const identityKey contextKey = "identity"

// identityFrom extracts the authenticated admin from the request
// context.
func identityFrom(r *http.Request) usecase.Identity {
	identity, _ := r.Context().Value(identityKey).(usecase.Identity)
	return identity
}

// Authenticate validates the Bearer session token and injects the admin
// identity into the request context.
func Authenticate(auth *usecase.AuthUsecase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
				return
			}

			claims, err := auth.ValidateToken(parts[1])
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			identity := usecase.Identity{AdminID: claims.AdminID, AdminName: claims.Name}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Recover turns handler panics into 500 responses instead of dropped
// connections.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("Handler panic", "path", r.URL.Path, "panic", rec)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
