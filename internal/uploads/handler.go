package uploads

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sharath018/pacs-portal-backend/config"
	"github.com/sharath018/pacs-portal-backend/middleware"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".pdf":  true,
}

const maxUploadSize = 10 << 20 // 10 MB

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Upload stores a file under the society's upload directory with a
// generated name and returns the public URL
// POST /admin/:slug/uploads
func (h *Handler) Upload(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok || !ac.HasSociety() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field missing"})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds 10MB limit"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		return
	}

	dir := filepath.Join(config.UploadPath, fmt.Sprintf("%d", ac.PacsID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not prepare upload directory"})
		return
	}

	name := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":      fmt.Sprintf("/uploads/%d/%s", ac.PacsID, name),
		"filename": name,
	})
}
