package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fyb-funds/fund-service/config"
	"github.com/stretchr/testify/assert"
)

var testKeys = config.AccessKeys{Admin: "admin-key", Member: "member-key"}

func TestResolveRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ResolveRole(testKeys, "admin-key"))
	assert.Equal(t, RoleMember, ResolveRole(testKeys, "member-key"))
	assert.Equal(t, RoleGuest, ResolveRole(testKeys, "wrong-key"))
	assert.Equal(t, RoleGuest, ResolveRole(testKeys, ""))

	// Unconfigured keys never match, even against an empty header value.
	assert.Equal(t, RoleGuest, ResolveRole(config.AccessKeys{}, "anything"))
}

func TestRoleAllows(t *testing.T) {
	assert.True(t, RoleAdmin.Allows(RoleAdmin))
	assert.True(t, RoleAdmin.Allows(RoleMember))
	assert.True(t, RoleAdmin.Allows(RoleGuest))

	assert.False(t, RoleMember.Allows(RoleAdmin))
	assert.True(t, RoleMember.Allows(RoleMember))
	assert.True(t, RoleMember.Allows(RoleGuest))

	assert.False(t, RoleGuest.Allows(RoleAdmin))
	assert.False(t, RoleGuest.Allows(RoleMember))
	assert.True(t, RoleGuest.Allows(RoleGuest))
}

func TestRoleMiddlewareAndRequireRole(t *testing.T) {
	var seenRole Role
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := RoleMiddleware(testKeys)(RequireRole(RoleAdmin, inner))

	t.Run("AdminKeyPasses", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(AccessKeyHeader, "admin-key")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, RoleAdmin, seenRole)
	})

	t.Run("MemberKeyIsForbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(AccessKeyHeader, "member-key")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("NoKeyIsForbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRoleFromContextDefaultsToGuest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, RoleGuest, RoleFromContext(req.Context()))
}
