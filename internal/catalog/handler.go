package catalog

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

func itemID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func writeCatalogErr(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
}

// ======================
// 🔹 Services
// ======================

// POST /admin/:slug/services
func (h *Handler) CreateService(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	var req ServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	v, err := h.service.CreateService(c.Request.Context(), ac.PacsID, ac.PacsSlug, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeCatalogErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// GET /admin/:slug/services
func (h *Handler) ListServices(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	items, err := h.service.ListServices(c.Request.Context(), ac.PacsID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch services"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": items})
}

// PUT /admin/:slug/services/:id
func (h *Handler) UpdateService(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}
	var req ServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	v, err := h.service.UpdateService(c.Request.Context(), ac.PacsID, ac.PacsSlug, id, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeCatalogErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DELETE /admin/:slug/services/:id
func (h *Handler) DeleteService(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteService(c.Request.Context(), ac.PacsID, ac.PacsSlug, id, ac.UserID, middleware.GetIPFromContext(c)); err != nil {
		writeCatalogErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

// ======================
// 🔹 Machinery
// ======================

// POST /admin/:slug/machinery
func (h *Handler) CreateMachinery(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	var req MachineryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	v, err := h.service.CreateMachinery(c.Request.Context(), ac.PacsID, ac.PacsSlug, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeCatalogErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// GET /admin/:slug/machinery
func (h *Handler) ListMachinery(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	items, err := h.service.ListMachinery(c.Request.Context(), ac.PacsID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch machinery"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"machinery": items})
}

// PUT /admin/:slug/machinery/:id
func (h *Handler) UpdateMachinery(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}
	var req MachineryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	v, err := h.service.UpdateMachinery(c.Request.Context(), ac.PacsID, ac.PacsSlug, id, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeCatalogErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DELETE /admin/:slug/machinery/:id
func (h *Handler) DeleteMachinery(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteMachinery(c.Request.Context(), ac.PacsID, ac.PacsSlug, id, ac.UserID, middleware.GetIPFromContext(c)); err != nil {
		writeCatalogErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Machinery deleted"})
}

// ======================
// 🔹 Fertilizers
// ======================

// POST /admin/:slug/fertilizers
func (h *Handler) CreateFertilizer(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	var req FertilizerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	v, err := h.service.CreateFertilizer(c.Request.Context(), ac.PacsID, ac.PacsSlug, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeCatalogErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// GET /admin/:slug/fertilizers
func (h *Handler) ListFertilizers(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	items, err := h.service.ListFertilizers(c.Request.Context(), ac.PacsID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch fertilizers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fertilizers": items})
}

// PUT /admin/:slug/fertilizers/:id
func (h *Handler) UpdateFertilizer(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}
	var req FertilizerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	v, err := h.service.UpdateFertilizer(c.Request.Context(), ac.PacsID, ac.PacsSlug, id, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeCatalogErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DELETE /admin/:slug/fertilizers/:id
func (h *Handler) DeleteFertilizer(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteFertilizer(c.Request.Context(), ac.PacsID, ac.PacsSlug, id, ac.UserID, middleware.GetIPFromContext(c)); err != nil {
		writeCatalogErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fertilizer deleted"})
}

// ======================
// 🔹 Procurement
// ======================

// POST /admin/:slug/procurements
func (h *Handler) CreateProcurement(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	var req ProcurementInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	v, err := h.service.CreateProcurement(c.Request.Context(), ac.PacsID, ac.PacsSlug, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeCatalogErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// GET /admin/:slug/procurements
func (h *Handler) ListProcurements(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	items, err := h.service.ListProcurements(c.Request.Context(), ac.PacsID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch procurements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"procurements": items})
}

// PUT /admin/:slug/procurements/:id
func (h *Handler) UpdateProcurement(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}
	var req ProcurementInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	v, err := h.service.UpdateProcurement(c.Request.Context(), ac.PacsID, ac.PacsSlug, id, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeCatalogErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DELETE /admin/:slug/procurements/:id
func (h *Handler) DeleteProcurement(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteProcurement(c.Request.Context(), ac.PacsID, ac.PacsSlug, id, ac.UserID, middleware.GetIPFromContext(c)); err != nil {
		writeCatalogErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Procurement deleted"})
}

// ======================
// 🔹 PDS shops
// ======================

// POST /admin/:slug/pds-shops
func (h *Handler) CreatePDSShop(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	var req PDSShopInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	v, err := h.service.CreatePDSShop(c.Request.Context(), ac.PacsID, ac.PacsSlug, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeCatalogErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// GET /admin/:slug/pds-shops
func (h *Handler) ListPDSShops(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	items, err := h.service.ListPDSShops(c.Request.Context(), ac.PacsID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch PDS shops"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pds_shops": items})
}

// PUT /admin/:slug/pds-shops/:id
func (h *Handler) UpdatePDSShop(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}
	var req PDSShopInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	v, err := h.service.UpdatePDSShop(c.Request.Context(), ac.PacsID, ac.PacsSlug, id, req, ac.UserID, middleware.GetIPFromContext(c))
	if err != nil {
		writeCatalogErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// DELETE /admin/:slug/pds-shops/:id
func (h *Handler) DeletePDSShop(c *gin.Context) {
	ac, ok := access(c)
	if !ok {
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}
	if err := h.service.DeletePDSShop(c.Request.Context(), ac.PacsID, ac.PacsSlug, id, ac.UserID, middleware.GetIPFromContext(c)); err != nil {
		writeCatalogErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "PDS shop deleted"})
}
