package publicsite

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/pacs-portal-backend/internal/scheme"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListRow is one entry of the generic listing template
type ListRow struct {
	Title    string
	Subtitle string
	Meta     string
	Link     string
}

func previewParam(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("preview"))
	if err != nil {
		return 0
	}
	return n
}

func pathUint(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func rupees(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("₹%.2f", *v)
}

// ======================
// 🔹 HTML pages
// ======================

// GET /
func (h *Handler) DirectoryPage(c *gin.Context) {
	entries, err := h.service.Directory(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}
	c.HTML(http.StatusOK, "directory.html", gin.H{
		"Societies": entries,
	})
}

// GET /:slug
func (h *Handler) SocietyPage(c *gin.Context) {
	page, err := h.service.BuildPage(c.Request.Context(), c.Param("slug"), previewParam(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.String(http.StatusNotFound, "Society not found")
			return
		}
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}
	c.HTML(http.StatusOK, "society.html", page)
}

// GET /:slug/loans
func (h *Handler) SocietyLoansPage(c *gin.Context) {
	pacs, schemes, err := h.service.LoanSchemes(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.String(http.StatusNotFound, "Society not found")
			return
		}
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	rows := make([]ListRow, 0, len(schemes))
	for _, ls := range schemes {
		rows = append(rows, ListRow{
			Title:    ls.Name,
			Subtitle: ls.Description,
			Meta:     fmt.Sprintf("%.2f%% interest", ls.InterestRate),
			Link:     "/" + pacs.Slug + "/loans/" + strconv.FormatUint(uint64(ls.ID), 10),
		})
	}
	c.HTML(http.StatusOK, "listing.html", gin.H{
		"Heading":  "Loan Schemes",
		"PacsName": pacs.Name,
		"PacsSlug": pacs.Slug,
		"Rows":     rows,
	})
}

// GET /:slug/loans/:id
func (h *Handler) LoanDetailPage(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		c.String(http.StatusNotFound, "Scheme not found")
		return
	}
	pacs, ls, steps, err := h.service.LoanSchemeDetail(c.Request.Context(), c.Param("slug"), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.String(http.StatusNotFound, "Scheme not found")
			return
		}
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}
	c.HTML(http.StatusOK, "loan_detail.html", gin.H{
		"PacsName":    pacs.Name,
		"PacsSlug":    pacs.Slug,
		"Scheme":      ls,
		"Steps":       steps,
		"Eligibility": scheme.SplitLines(scheme.JSONToLines(ls.Eligibility)),
		"Benefits":    scheme.SplitLines(scheme.JSONToLines(ls.Benefits)),
		"Documents":   scheme.SplitLines(scheme.JSONToLines(ls.Documents)),
	})
}

// GET /:slug/deposits
func (h *Handler) SocietyDepositsPage(c *gin.Context) {
	pacs, schemes, err := h.service.DepositSchemes(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.String(http.StatusNotFound, "Society not found")
			return
		}
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	rows := make([]ListRow, 0, len(schemes))
	for _, ds := range schemes {
		rows = append(rows, ListRow{
			Title:    ds.Name,
			Subtitle: ds.Description,
			Meta:     fmt.Sprintf("%.2f%% interest", ds.InterestRate),
		})
	}
	c.HTML(http.StatusOK, "listing.html", gin.H{
		"Heading":  "Deposit Schemes",
		"PacsName": pacs.Name,
		"PacsSlug": pacs.Slug,
		"Rows":     rows,
	})
}

// GET /:slug/pds-shops
func (h *Handler) SocietyPDSShopsPage(c *gin.Context) {
	pacs, shops, err := h.service.PDSShops(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.String(http.StatusNotFound, "Society not found")
			return
		}
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	rows := make([]ListRow, 0, len(shops))
	for _, shop := range shops {
		meta := shop.Timings
		if shop.ContactPhone != "" {
			if meta != "" {
				meta += " · "
			}
			meta += shop.ContactPhone
		}
		rows = append(rows, ListRow{
			Title:    shop.Name,
			Subtitle: shop.Address,
			Meta:     meta,
		})
	}
	c.HTML(http.StatusOK, "listing.html", gin.H{
		"Heading":  "PDS Shops",
		"PacsName": pacs.Name,
		"PacsSlug": pacs.Slug,
		"Rows":     rows,
	})
}

// GET /:slug/service/:id
func (h *Handler) ServiceDetailPage(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		c.String(http.StatusNotFound, "Service not found")
		return
	}
	pacs, item, err := h.service.ServiceDetail(c.Request.Context(), c.Param("slug"), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.String(http.StatusNotFound, "Service not found")
			return
		}
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}
	c.HTML(http.StatusOK, "service_detail.html", gin.H{
		"PacsName": pacs.Name,
		"PacsSlug": pacs.Slug,
		"Service":  item,
	})
}

// GET /loans
func (h *Handler) AllLoansPage(c *gin.Context) {
	listings, err := h.service.AllLoans(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	rows := make([]ListRow, 0, len(listings))
	for _, l := range listings {
		meta := fmt.Sprintf("%.2f%% interest", l.InterestRate)
		if amt := rupees(l.MaxAmount); amt != "" {
			meta += " · up to " + amt
		}
		rows = append(rows, ListRow{
			Title:    l.Name,
			Subtitle: l.PacsName,
			Meta:     meta,
			Link:     "/" + l.PacsSlug + "/loans/" + strconv.FormatUint(uint64(l.ID), 10),
		})
	}
	c.HTML(http.StatusOK, "listing.html", gin.H{
		"Heading": "Loan Schemes Across Societies",
		"Rows":    rows,
	})
}

// ======================
// 🔹 Public JSON API
// ======================

// GET /api/v1/public/societies
func (h *Handler) DirectoryJSON(c *gin.Context) {
	entries, err := h.service.Directory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch societies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"societies": entries})
}

// GET /api/v1/public/societies/:slug
func (h *Handler) PageJSON(c *gin.Context) {
	page, err := h.service.BuildPage(c.Request.Context(), c.Param("slug"), previewParam(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "society not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build page"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/v1/public/societies/:slug/loans
func (h *Handler) LoansJSON(c *gin.Context) {
	_, schemes, err := h.service.LoanSchemes(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "society not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch loan schemes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"schemes": schemes})
}

// GET /api/v1/public/societies/:slug/deposits
func (h *Handler) DepositsJSON(c *gin.Context) {
	_, schemes, err := h.service.DepositSchemes(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "society not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch deposit schemes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"schemes": schemes})
}

// GET /api/v1/public/societies/:slug/pds-shops
func (h *Handler) PDSShopsJSON(c *gin.Context) {
	_, shops, err := h.service.PDSShops(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "society not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch PDS shops"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pds_shops": shops})
}

// GET /api/v1/public/loans
func (h *Handler) AllLoansJSON(c *gin.Context) {
	listings, err := h.service.AllLoans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch loan listings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": listings})
}
