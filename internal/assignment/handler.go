package assignment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharath018/pacs-portal-backend/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListMySocieties backs the admin dashboard: the societies the caller manages
// GET /admin/societies
func (h *Handler) ListMySocieties(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	societies, err := h.service.ListMySocieties(c.Request.Context(), ac.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch societies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"societies": societies})
}

// ListStaff lists the resolved society's staff
// GET /admin/:slug/staff
func (h *Handler) ListStaff(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok || !ac.HasSociety() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	staff, err := h.service.ListStaff(c.Request.Context(), ac.PacsID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch staff"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

type changeRoleReq struct {
	Role string `json:"role" binding:"required"`
}

// ChangeRole updates one staff member's role on the resolved society
// PUT /admin/:slug/staff/:id
func (h *Handler) ChangeRole(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok || !ac.HasSociety() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}

	var req changeRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.service.ChangeRole(c.Request.Context(), uint(id), req.Role, ac.UserID, ip); err != nil {
		switch {
		case errors.Is(err, ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change role"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// Revoke removes one staff member's assignment
// DELETE /admin/:slug/staff/:id
func (h *Handler) Revoke(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok || !ac.HasSociety() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.service.Revoke(c.Request.Context(), uint(id), ac.UserID, ip); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke assignment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assignment revoked"})
}
