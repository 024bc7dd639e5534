package uploadmodule

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mantonx/cinevault/internal/api"
	"github.com/mantonx/cinevault/internal/middleware"
	"github.com/mantonx/cinevault/internal/types"
)

// multipartOverhead is the slack allowed on top of the file size limit for
// multipart framing.
const multipartOverhead = 1 << 20

// Handler serves POST /files/upload
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// UploadFile handles POST /files/upload with multipart field "file"
func (h *Handler) UploadFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.service.maxSize+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.RespondWithError(c, types.NewValidationError("invalid upload", "file is too large"))
			return
		}
		api.RespondWithError(c, types.NewValidationError("invalid upload", "file is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		api.RespondWithError(c, types.NewInternalError("failed to open upload", err))
		return
	}
	defer file.Close()

	result, err := h.service.Upload(c.Request.Context(), middleware.Actor(c), header.Filename, requestBaseURL(c), file)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// requestBaseURL rebuilds the scheme and host the client reached us on,
// honouring the usual reverse proxy headers.
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := strings.ToLower(c.GetHeader("X-Forwarded-Proto")); proto == "http" || proto == "https" {
		scheme = proto
	}

	host := c.Request.Host
	if fwd := c.GetHeader("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return scheme + "://" + host
}
