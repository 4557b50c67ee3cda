// Package auth guards mutating API routes behind a shared bearer token.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/seth-vargas/biztime/internal/platform/httpx"
)

// Guard rejects POST, PUT, PATCH and DELETE requests without a valid
// "Authorization: Bearer <token>" header. Reads always pass. A disabled
// verifier lets everything through.
func Guard(v *Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !v.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			if err := v.Verify(bearerToken(r)); err != nil {
				if logger != nil {
					logger.Warn("rejected api token", slog.String("method", r.Method), slog.String("path", r.URL.Path))
				}
				httpx.Unauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
