package middleware

import (
	"crypto/subtle"
	"net/http"
)

const MaintenanceKeyHeader = "X-Maintenance-Key"

// Maintenance guards operator endpoints with a shared key. An empty key
// leaves them open.
func Maintenance(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(MaintenanceKeyHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				detail(w, http.StatusForbidden, "Invalid maintenance key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
