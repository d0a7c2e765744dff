package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/UmangSachdeva/BudgetX/models"
)

// Context key for user data
type contextKey string

const UserContextKey contextKey = "user"

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

func detail(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(struct {
		Detail string `json:"detail"`
	}{msg}); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	tokenParts := strings.Fields(r.Header.Get("Authorization"))
	if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
		return "", false
	}
	return tokenParts[1], true
}

// Authentication rejects requests without a valid bearer token and stores the
// authenticated user in the request context.
func Authentication(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := BearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", "Bearer")
				detail(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			user, err := auth.Authenticate(r.Context(), tokenString)
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				detail(w, http.StatusUnauthorized, "Could not validate credentials")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(UserContextKey).(models.User)
	return u, ok
}
