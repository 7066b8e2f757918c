package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	societies map[string]PacsRef
}

func (r *fakeResolver) ResolveSlug(_ context.Context, slug string) (PacsRef, bool, error) {
	ref, ok := r.societies[slug]
	return ref, ok, nil
}

type fakeAssignments struct {
	// keyed by userID, value is pacsID -> role
	roles map[uint]map[uint]string
}

func (a *fakeAssignments) RoleFor(_ context.Context, userID, pacsID uint) (string, bool, error) {
	role, ok := a.roles[userID][pacsID]
	return role, ok, nil
}

func newGuardRouter(ac AccessContext) (*gin.Engine, *AccessContext) {
	gin.SetMode(gin.TestMode)

	resolver := &fakeResolver{societies: map[string]PacsRef{
		"green-valley": {ID: 7, Slug: "green-valley"},
	}}
	assignments := &fakeAssignments{roles: map[uint]map[uint]string{
		10: {7: RoleStaff},
	}}

	var captured AccessContext
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("access_context", ac)
	})
	r.GET("/admin/:slug/ping", RequireSocietyAccess(resolver, assignments), func(c *gin.Context) {
		captured, _ = GetAccessContext(c)
		c.Status(http.StatusOK)
	})
	return r, &captured
}

func perform(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGuardUnknownSlug(t *testing.T) {
	r, _ := newGuardRouter(AccessContext{UserID: 10, RoleName: RoleAdmin})
	w := perform(r, "/admin/no-such-society/ping")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGuardUnassignedUser(t *testing.T) {
	r, _ := newGuardRouter(AccessContext{UserID: 99, RoleName: RoleAdmin})
	w := perform(r, "/admin/green-valley/ping")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGuardAssignedUser(t *testing.T) {
	r, captured := newGuardRouter(AccessContext{UserID: 10, RoleName: RoleAdmin})
	w := perform(r, "/admin/green-valley/ping")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, uint(7), captured.PacsID)
	assert.Equal(t, "green-valley", captured.PacsSlug)
	assert.Equal(t, RoleStaff, captured.AssignmentRole)
}

func TestGuardSuperadminBypass(t *testing.T) {
	r, captured := newGuardRouter(AccessContext{UserID: 1, RoleName: RoleSuperAdmin})
	w := perform(r, "/admin/green-valley/ping")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, uint(7), captured.PacsID)
	assert.Equal(t, RoleSuperAdmin, captured.AssignmentRole)
}

func TestGuardMissingAccessContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := &fakeResolver{societies: map[string]PacsRef{}}
	assignments := &fakeAssignments{}

	r := gin.New()
	r.GET("/admin/:slug/ping", RequireSocietyAccess(resolver, assignments), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := perform(r, "/admin/green-valley/ping")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
