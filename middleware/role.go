package middleware

import (
	"context"
	"net/http"

	"github.com/fyb-funds/fund-service/config"
	"github.com/fyb-funds/fund-service/utils"
)

// Role is the caller's resolved access level.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleGuest  Role = "guest"
)

// AccessKeyHeader carries the shared access key on each request.
const AccessKeyHeader = "X-Access-Key"

// Context key types to avoid collisions
type contextKey string

const roleKey contextKey = "role"

// ResolveRole maps an access key to a role. An empty or unknown key is a
// guest; there is no error path, gating happens per-route via RequireRole.
func ResolveRole(keys config.AccessKeys, accessKey string) Role {
	switch {
	case accessKey == "":
		return RoleGuest
	case keys.Admin != "" && accessKey == keys.Admin:
		return RoleAdmin
	case keys.Member != "" && accessKey == keys.Member:
		return RoleMember
	default:
		return RoleGuest
	}
}

// RoleMiddleware resolves the caller's role from the access key header and
// stores it in the request context. Every request gets a role; handlers and
// RequireRole read it with RoleFromContext.
func RoleMiddleware(keys config.AccessKeys) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := ResolveRole(keys, r.Header.Get(AccessKeyHeader))
			ctx := context.WithValue(r.Context(), roleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleFromContext returns the resolved role, defaulting to guest when the
// middleware did not run.
func RoleFromContext(ctx context.Context) Role {
	if role, ok := ctx.Value(roleKey).(Role); ok {
		return role
	}
	return RoleGuest
}

// Allows reports whether a caller with the given role may act at the
// required level. Admin covers member, member covers guest.
func (r Role) Allows(required Role) bool {
	switch required {
	case RoleGuest:
		return true
	case RoleMember:
		return r == RoleMember || r == RoleAdmin
	case RoleAdmin:
		return r == RoleAdmin
	}
	return false
}

// RequireRole rejects requests whose resolved role does not reach the
// required level.
func RequireRole(required Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := RoleFromContext(r.Context())
		if !role.Allows(required) {
			utils.RespondWithError(w, http.StatusForbidden, "insufficient role")
			return
		}
		next.ServeHTTP(w, r)
	})
}
