package auth

import (
	"log/slog"
	"net/http"
)

// RoleAuthorization guards routes by resolved role. Services still perform
// their own capability checks; this middleware only rejects the obvious
// cases before a handler runs.
type RoleAuthorization struct {
	logger *slog.Logger
}

func NewRoleAuthorization(logger *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{logger: logger}
}

func (ra *RoleAuthorization) require(check func(RoleContext) bool, denied string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				ra.logger.Warn("authorization check failed: principal not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			rc := ResolveRole(principal)
			if !check(rc) {
				ra.logger.WarnContext(r.Context(), "access denied",
					"user_id", principal.ID,
					"role", rc.Role,
					"required", denied)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaff admits managers and admins, the two tiers allowed to reject
// leave and read reminder alarms.
func (ra *RoleAuthorization) RequireStaff() func(http.Handler) http.Handler {
	return ra.require(RoleContext.IsStaff, "staff")
}

func (ra *RoleAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.require(RoleContext.IsAdmin, "admin")
}

// RequireApprover admits every role that can advance the approval workflow:
// admins, enterprise accounts and managers.
func (ra *RoleAuthorization) RequireApprover() func(http.Handler) http.Handler {
	return ra.require(func(rc RoleContext) bool {
		return rc.Role != RoleEmployee
	}, "approver")
}
