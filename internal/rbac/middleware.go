package rbac

import (
	"log/slog"
	"net/http"
)

// RequireAdmin gates a route group to admin identities. Route gating is a
// convenience: services re-validate admin-ness on every privileged operation.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			access, ok := AccessFromContext(r.Context())
			if !ok {
				logger.Warn("admin check failed: no access in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !access.IsAdmin() {
				logger.WarnContext(r.Context(), "access denied: admin role required",
					"user_id", access.UserID,
					"role", access.Role)
				http.Error(w, "Forbidden: administrator access required", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireNotBlocked rejects blocked identities before any handler runs.
func RequireNotBlocked(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			access, ok := AccessFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if access.IsBlocked() {
				logger.WarnContext(r.Context(), "access denied: user is blocked", "user_id", access.UserID)
				http.Error(w, "Forbidden: account is blocked", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
