package society

import (
	"errors"
	"net/http"

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

// GetProfile returns the society row for the resolved tenant
// GET /admin/:slug
func (h *Handler) GetProfile(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok || !ac.HasSociety() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	pacs, err := h.service.GetByID(c.Request.Context(), ac.PacsID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "society not found"})
		return
	}

	c.JSON(http.StatusOK, pacs)
}

type UpdateProfileRequest struct {
	Name            *string  `json:"name,omitempty"`
	District        *string  `json:"district,omitempty"`
	State           *string  `json:"state,omitempty"`
	Address         *string  `json:"address,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	Email           *string  `json:"email,omitempty"`
	History         *string  `json:"history,omitempty"`
	ServicesSummary *string  `json:"services_summary,omitempty"`
	ImpactSummary   *string  `json:"impact_summary,omitempty"`
	EstablishedYear *int     `json:"established_year,omitempty"`
	MemberCount     *int     `json:"member_count,omitempty"`
	CoverImageURL   *string  `json:"cover_image_url,omitempty"`
	HeaderImageURL  *string  `json:"header_image_url,omitempty"`
	LogoURL         *string  `json:"logo_url,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	MapEmbedURL     *string  `json:"map_embed_url,omitempty"`
}

// UpdateProfile updates the society row for the resolved tenant
// PUT /admin/:slug
func (h *Handler) UpdateProfile(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok || !ac.HasSociety() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	pacs, err := h.service.Update(c.Request.Context(), ac.PacsID, UpdateInput(req), ac.UserID, ip)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "society not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update society"})
		return
	}

	c.JSON(http.StatusOK, pacs)
}

type SetTemplateRequest struct {
	TemplateType int `json:"template_type" binding:"required"`
}

// SetTemplate stores the public page design choice
// PUT /admin/:slug/template
func (h *Handler) SetTemplate(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok || !ac.HasSociety() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	var req SetTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.service.SetTemplate(c.Request.Context(), ac.PacsID, req.TemplateType, ac.UserID, ip); err != nil {
		if errors.Is(err, ErrInvalidTemplate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set template"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template updated", "template_type": req.TemplateType})
}
