package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/pacs-portal-backend/internal/auth"
)

// PacsRef is the minimal society shape the guard needs
type PacsRef struct {
	ID   uint
	Slug string
}

// SocietyResolver looks up a society by its public slug.
// found=false means no such society (404), err means the store failed.
type SocietyResolver interface {
	ResolveSlug(ctx context.Context, slug string) (PacsRef, bool, error)
}

// AssignmentSource answers whether a user is assigned to a society
type AssignmentSource interface {
	RoleFor(ctx context.Context, userID, pacsID uint) (string, bool, error)
}

// RBACMiddleware checks if the user has one of the allowed platform roles
func RBACMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userVal, exists := c.Get("user")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		user, ok := userVal.(auth.User)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user object"})
			return
		}

		for _, role := range allowedRoles {
			if user.Role.RoleName == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
	}
}

// RequireSocietyAccess is the tenant gate applied to every /admin/:slug route.
// It resolves the slug, then requires either a super_admin caller or an
// assignment row linking the caller to that society, and stores the result
// in the access context for handlers.
func RequireSocietyAccess(societies SocietyResolver, assignments AssignmentSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := GetAccessContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
			return
		}

		slug := c.Param("slug")
		if slug == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "society slug missing"})
			return
		}

		pacs, found, err := societies.ResolveSlug(c.Request.Context(), slug)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve society"})
			return
		}
		if !found {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "society not found"})
			return
		}

		ac.PacsID = pacs.ID
		ac.PacsSlug = pacs.Slug

		if ac.RoleName == RoleSuperAdmin {
			ac.AssignmentRole = RoleSuperAdmin
			c.Set("access_context", ac)
			c.Next()
			return
		}

		role, assigned, err := assignments.RoleFor(c.Request.Context(), ac.UserID, pacs.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to check assignment"})
			return
		}
		if !assigned {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "no assignment for this society"})
			return
		}

		ac.AssignmentRole = role
		c.Set("access_context", ac)
		c.Next()
	}
}
