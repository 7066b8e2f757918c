package reports

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/pacs-portal-backend/middleware"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func sendTable(c *gin.Context, t *Table, baseName string) {
	stamp := time.Now().Format("20060102")

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		data, err := t.CSV()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+baseName+"_"+stamp+".csv")
		c.Data(http.StatusOK, "text/csv", data)
	case "xlsx":
		data, err := t.XLSX()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+baseName+"_"+stamp+".xlsx")
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	case "pdf":
		data, err := t.PDF()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+baseName+"_"+stamp+".pdf")
		c.Data(http.StatusOK, "application/pdf", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv, xlsx or pdf"})
	}
}

// DirectoryReport exports the platform-wide society report
// GET /superadmin/reports/societies?format=csv|xlsx|pdf
func (h *Handler) DirectoryReport(c *gin.Context) {
	rows, err := h.repo.DirectoryRows(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch report data"})
		return
	}
	sendTable(c, DirectoryTable(rows), "pacs_directory")
}

// SchemeReport exports the resolved society's scheme report
// GET /admin/:slug/reports/schemes?format=csv|xlsx|pdf
func (h *Handler) SchemeReport(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok || !ac.HasSociety() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	rows, err := h.repo.SchemeRows(c.Request.Context(), ac.PacsID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch report data"})
		return
	}
	sendTable(c, SchemeTable(ac.PacsSlug, rows), ac.PacsSlug+"_schemes")
}
