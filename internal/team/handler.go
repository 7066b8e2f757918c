package team

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/pacs-portal-backend/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func access(c *gin.Context) (middleware.AccessContext, bool) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok || !ac.HasSociety() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return middleware.AccessContext{}, false
	}
	return ac, true
}

// POST /admin/:slug/team
func (h *Handler) Create(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	var req MemberInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	m, err := h.service.Create(c.Request.Context(), ac.PacsID, ac.PacsSlug, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create team member"})
		return
	}
	c.JSON(http.StatusCreated, m)
}

// GET /admin/:slug/team
func (h *Handler) List(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	members, err := h.service.List(c.Request.Context(), ac.PacsID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch team"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": members})
}

// PUT /admin/:slug/team/:id
func (h *Handler) Update(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req MemberInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	m, err := h.service.Update(c.Request.Context(), ac.PacsID, ac.PacsSlug, uint(id), req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "team member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update team member"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// DELETE /admin/:slug/team/:id
func (h *Handler) Delete(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), ac.PacsID, ac.PacsSlug, uint(id), ac.UserID, middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "team member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete team member"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Team member deleted"})
}
