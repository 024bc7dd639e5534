package reviewmodule

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mantonx/cinevault/internal/api"
	"github.com/mantonx/cinevault/internal/middleware"
)

// Handler serves review endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListReviews handles GET /films/:id/reviews
func (h *Handler) ListReviews(c *gin.Context) {
	filmID, err := api.Param(c, "id")
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	reviews, err := h.service.ListByFilm(c.Request.Context(), filmID)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// UpsertReview handles POST /films/:id/reviews
func (h *Handler) UpsertReview(c *gin.Context) {
	filmID, err := api.Param(c, "id")
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	var req ReviewRequest
	if err := api.BindJSON(c, &req); err != nil {
		api.RespondWithError(c, err)
		return
	}

	review, err := h.service.Upsert(c.Request.Context(), middleware.Actor(c), filmID, req)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// DeleteReview handles DELETE /reviews/:id
func (h *Handler) DeleteReview(c *gin.Context) {
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
