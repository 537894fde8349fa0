package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aaron-Tawil/smart-shelf-labels/internal/domain"
	"github.com/Aaron-Tawil/smart-shelf-labels/internal/usecase"
)

// SignService runs the sign-generation pipeline over raw workbook bytes.
type SignService interface {
	Generate(ctx context.Context, xlsxData []byte) (*usecase.Output, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	signs SignService
}

// NewHandler creates a new HTTP handler
func NewHandler(signs SignService) *Handler {
	return &Handler{signs: signs}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "smart-shelf-labels",
		"version": "1.0.0",
	})
}

// GenerateSigns accepts an uploaded price workbook and returns the rendered
// sign sheet as a PDF attachment.
func (h *Handler) GenerateSigns(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "missing 'file' field in multipart form",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to read uploaded file",
		})
		return
	}

	out, err := h.signs.Generate(c.Request.Context(), data)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "sign generation failed",
		})
		return
	}

	if out == nil {
		c.String(http.StatusOK, "No new products to print.")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="signs.pdf"`)
	c.Data(http.StatusOK, "application/pdf", out.CleanedPDF)
}
