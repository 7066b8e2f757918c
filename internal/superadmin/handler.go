package superadmin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharath018/pacs-portal-backend/internal/assignment"
	"github.com/sharath018/pacs-portal-backend/internal/society"
	"github.com/sharath018/pacs-portal-backend/middleware"
)

type Handler struct {
	service       Service
	societySvc    society.Service
	assignmentSvc assignment.Service
}

func NewHandler(service Service, societySvc society.Service, assignmentSvc assignment.Service) *Handler {
	return &Handler{
		service:       service,
		societySvc:    societySvc,
		assignmentSvc: assignmentSvc,
	}
}

func actor(c *gin.Context) (uint, string, bool) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return 0, "", false
	}
	return ac.UserID, middleware.GetIPFromContext(c), true
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// ======================
// 🔹 Societies
// ======================

type createSocietyReq struct {
	Slug            string `json:"slug" binding:"required"`
	Name            string `json:"name" binding:"required"`
	District        string `json:"district"`
	State           string `json:"state"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	History         string `json:"history"`
	ServicesSummary string `json:"services_summary"`
	ImpactSummary   string `json:"impact_summary"`
	EstablishedYear *int   `json:"established_year"`
	MemberCount     *int   `json:"member_count"`
	TemplateType    int    `json:"template_type"`
}

// POST /superadmin/societies
func (h *Handler) CreateSociety(c *gin.Context) {
	actorID, ip, ok := actor(c)
	if !ok {
		return
	}

	var req createSocietyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	pacs, err := h.societySvc.Create(c.Request.Context(), society.CreateInput{
		Slug:            req.Slug,
		Name:            req.Name,
		District:        req.District,
		State:           req.State,
		Address:         req.Address,
		Phone:           req.Phone,
		Email:           req.Email,
		History:         req.History,
		ServicesSummary: req.ServicesSummary,
		ImpactSummary:   req.ImpactSummary,
		EstablishedYear: req.EstablishedYear,
		MemberCount:     req.MemberCount,
		TemplateType:    req.TemplateType,
	}, actorID, ip)
	if err != nil {
		switch {
		case errors.Is(err, society.ErrInvalidSlug),
			errors.Is(err, society.ErrReservedSlug):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, society.ErrSlugTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create society"})
		}
		return
	}

	c.JSON(http.StatusCreated, pacs)
}

// GET /superadmin/societies
func (h *Handler) ListSocieties(c *gin.Context) {
	societies, err := h.societySvc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch societies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"societies": societies})
}

// GET /superadmin/societies/:id
func (h *Handler) GetSociety(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	pacs, err := h.societySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "society not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch society"})
		return
	}
	c.JSON(http.StatusOK, pacs)
}

// DELETE /superadmin/societies/:id
// Removes the society and all of its content in one transaction.
func (h *Handler) DeleteSociety(c *gin.Context) {
	actorID, ip, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.societySvc.Delete(c.Request.Context(), id, actorID, ip); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "society not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete society"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Society and all its content deleted"})
}

// ======================
// 🔹 Users
// ======================

// GET /superadmin/users?search=&role=&is_active=&page=&limit=
func (h *Handler) ListUsers(c *gin.Context) {
	filter := UserFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

// GET /superadmin/users/:id
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, u)
}

type setActiveReq struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// PUT /superadmin/users/:id/status
func (h *Handler) SetUserStatus(c *gin.Context) {
	actorID, ip, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req setActiveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if err := h.service.SetUserActive(c.Request.Context(), id, *req.IsActive, actorID, ip); err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, ErrCannotTouchSelf):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User status updated"})
}

// POST /superadmin/users/:id/reset-password
func (h *Handler) ResetUserPassword(c *gin.Context) {
	actorID, ip, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.service.ResetUserPassword(c.Request.Context(), id, actorID, ip); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset to the default value"})
}

// POST /superadmin/users/bulk-reset-passwords
func (h *Handler) BulkResetPasswords(c *gin.Context) {
	actorID, ip, ok := actor(c)
	if !ok {
		return
	}

	count, err := h.service.BulkResetPasswords(c.Request.Context(), actorID, ip)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset passwords"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Passwords reset for all non-superadmin users",
		"affected_users": count,
	})
}

// ======================
// 🔹 Assignments
// ======================

type assignReq struct {
	UserID uint   `json:"user_id" binding:"required"`
	PacsID uint   `json:"pacs_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// POST /superadmin/assignments
func (h *Handler) CreateAssignment(c *gin.Context) {
	actorID, ip, ok := actor(c)
	if !ok {
		return
	}

	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	a, err := h.assignmentSvc.Assign(c.Request.Context(), req.UserID, req.PacsID, req.Role, actorID, ip)
	if err != nil {
		switch {
		case errors.Is(err, assignment.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, assignment.ErrAlreadyAssigned):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create assignment"})
		}
		return
	}
	c.JSON(http.StatusCreated, a)
}

// DELETE /superadmin/assignments/:id
func (h *Handler) DeleteAssignment(c *gin.Context) {
	actorID, ip, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.assignmentSvc.Revoke(c.Request.Context(), id, actorID, ip); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke assignment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment revoked"})
}

// ======================
// 🔹 Platform stats
// ======================

// GET /superadmin/stats
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
