package server

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// AdminAuth guards moderation endpoints with a bearer token checked against
// the configured bcrypt hash. An empty hash disables the admin surface
// entirely rather than leaving it open.
func AdminAuth(tokenHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if tokenHash == "" {
				RespondJSON(w, http.StatusForbidden, map[string]string{"error": "admin surface disabled"})
				return
			}
			token := strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer ")
			if token == "" ||
				bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)) != nil {
				RespondJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
