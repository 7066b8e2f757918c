package scheme

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

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func writeSchemeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "scheme not found"})
	case errors.Is(err, ErrStepNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "application step not found"})
	case errors.Is(err, ErrStepSetStale):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}

// ======================
// 🔹 Loan schemes
// ======================

// POST /admin/:slug/loan-schemes
func (h *Handler) CreateLoan(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}

	var req LoanSchemeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	ls, err := h.service.CreateLoan(c.Request.Context(), ac.PacsID, ac.PacsSlug, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeSchemeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, ls)
}

// GET /admin/:slug/loan-schemes
func (h *Handler) ListLoans(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}

	schemes, err := h.service.ListLoans(c.Request.Context(), ac.PacsID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch loan schemes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"schemes": schemes})
}

// GET /admin/:slug/loan-schemes/:id
func (h *Handler) GetLoan(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ls, err := h.service.GetLoan(c.Request.Context(), ac.PacsID, id)
	if err != nil {
		writeSchemeErr(c, err)
		return
	}

	// Echo multi-value fields back in the newline form the edit screens use
	c.JSON(http.StatusOK, gin.H{
		"scheme":           ls,
		"eligibility_text": JSONToLines(ls.Eligibility),
		"benefits_text":    JSONToLines(ls.Benefits),
		"documents_text":   JSONToLines(ls.Documents),
	})
}

// PUT /admin/:slug/loan-schemes/:id
func (h *Handler) UpdateLoan(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req LoanSchemeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	ls, err := h.service.UpdateLoan(c.Request.Context(), ac.PacsID, ac.PacsSlug, id, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeSchemeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ls)
}

// DELETE /admin/:slug/loan-schemes/:id
func (h *Handler) DeleteLoan(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteLoan(c.Request.Context(), ac.PacsID, ac.PacsSlug, id, ac.UserID, middleware.GetIPFromContext(c)); err != nil {
		writeSchemeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Loan scheme deleted"})
}

// ======================
// 🔹 Deposit schemes
// ======================

// POST /admin/:slug/deposit-schemes
func (h *Handler) CreateDeposit(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}

	var req DepositSchemeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	ds, err := h.service.CreateDeposit(c.Request.Context(), ac.PacsID, ac.PacsSlug, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeSchemeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, ds)
}

// GET /admin/:slug/deposit-schemes
func (h *Handler) ListDeposits(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}

	schemes, err := h.service.ListDeposits(c.Request.Context(), ac.PacsID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch deposit schemes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"schemes": schemes})
}

// GET /admin/:slug/deposit-schemes/:id
func (h *Handler) GetDeposit(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ds, err := h.service.GetDeposit(c.Request.Context(), ac.PacsID, id)
	if err != nil {
		writeSchemeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"scheme":        ds,
		"benefits_text": JSONToLines(ds.Benefits),
	})
}

// PUT /admin/:slug/deposit-schemes/:id
func (h *Handler) UpdateDeposit(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req DepositSchemeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	ds, err := h.service.UpdateDeposit(c.Request.Context(), ac.PacsID, ac.PacsSlug, id, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeSchemeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ds)
}

// DELETE /admin/:slug/deposit-schemes/:id
func (h *Handler) DeleteDeposit(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteDeposit(c.Request.Context(), ac.PacsID, ac.PacsSlug, id, ac.UserID, middleware.GetIPFromContext(c)); err != nil {
		writeSchemeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deposit scheme deleted"})
}

// ======================
// 🔹 Application steps
// ======================

// GET /admin/:slug/loan-schemes/:id/steps
func (h *Handler) ListSteps(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	schemeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	steps, err := h.service.ListSteps(c.Request.Context(), ac.PacsID, schemeID)
	if err != nil {
		writeSchemeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"steps": steps})
}

// POST /admin/:slug/loan-schemes/:id/steps
func (h *Handler) AddStep(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	schemeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req StepInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	st, err := h.service.AddStep(c.Request.Context(), ac.PacsID, ac.PacsSlug, schemeID, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeSchemeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// PUT /admin/:slug/loan-schemes/:id/steps/:stepId
func (h *Handler) UpdateStep(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	schemeID, ok := pathID(c, "id")
	if !ok {
		return
	}
	stepID, ok := pathID(c, "stepId")
	if !ok {
		return
	}

	var req StepInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	st, err := h.service.UpdateStep(c.Request.Context(), ac.PacsID, ac.PacsSlug, schemeID, stepID, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeSchemeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// DELETE /admin/:slug/loan-schemes/:id/steps/:stepId
func (h *Handler) DeleteStep(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	schemeID, ok := pathID(c, "id")
	if !ok {
		return
	}
	stepID, ok := pathID(c, "stepId")
	if !ok {
		return
	}

	if err := h.service.DeleteStep(c.Request.Context(), ac.PacsID, ac.PacsSlug, schemeID, stepID, ac.UserID, middleware.GetIPFromContext(c)); err != nil {
		writeSchemeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Step deleted"})
}

type reorderReq struct {
	StepIDs []uint `json:"step_ids" binding:"required"`
}

// PUT /admin/:slug/loan-schemes/:id/steps/reorder
func (h *Handler) ReorderSteps(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	schemeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	steps, err := h.service.ReorderSteps(c.Request.Context(), ac.PacsID, ac.PacsSlug, schemeID, req.StepIDs, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeSchemeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"steps": steps})
}
