package commentmodule

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mantonx/cinevault/internal/api"
	"github.com/mantonx/cinevault/internal/middleware"
)

// Handler serves comment endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListComments handles GET /films/:id/comments
func (h *Handler) ListComments(c *gin.Context) {
	filmID, err := api.Param(c, "id")
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	comments, err := h.service.ListByFilm(c.Request.Context(), filmID)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment handles POST /films/:id/comments
func (h *Handler) CreateComment(c *gin.Context) {
	filmID, err := api.Param(c, "id")
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	var req CommentRequest
	if err := api.BindJSON(c, &req); err != nil {
		api.RespondWithError(c, err)
		return
	}

	comment, err := h.service.Create(c.Request.Context(), middleware.Actor(c), filmID, req)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment handles DELETE /comments/:id
func (h *Handler) DeleteComment(c *gin.Context) {
	id, err := api.Param(c, "id")
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
