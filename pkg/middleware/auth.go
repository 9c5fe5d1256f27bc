package middleware

import (
	"net/http"
	"strings"

	"github.com/AnshuShetty/HotelManagementBackend/internal/auth"
	"github.com/AnshuShetty/HotelManagementBackend/pkg/logger"
)

// Authentication verifies a Bearer token if one is present and attaches the
// resulting identity to the request context. Requests without a token pass
// through anonymously; per-operation guards decide what requires identity.
// A token that is present but invalid is rejected here.
func Authentication(secret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				rejectUnauthenticated(w, log, r, "malformed Authorization header")
				return
			}

			identity, err := auth.VerifyToken(token, secret)
			if err != nil {
				rejectUnauthenticated(w, log, r, "token verification failed")
				return
			}

			ctx := auth.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func rejectUnauthenticated(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	log.Warn("Rejected request with invalid credentials",
		"request_id", requestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"reason", reason,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Invalid or expired token"}`))
}
