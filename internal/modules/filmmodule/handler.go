package filmmodule

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mantonx/cinevault/internal/api"
	"github.com/mantonx/cinevault/internal/middleware"
)

// Handler serves the /films endpoints
type Handler struct {
	service *Service
}

// NewHandler creates a new film handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListFilms handles GET /films
func (h *Handler) ListFilms(c *gin.Context) {
	films, err := h.service.List(c.Request.Context())
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

// GetFilm handles GET /films/:id
func (h *Handler) GetFilm(c *gin.Context) {
	id, err := api.Param(c, "id")
	if err != nil {
		api.RespondWithError(c, err)
		return
	}

	film, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, film)
}

// CreateFilm handles POST /films
func (h *Handler) CreateFilm(c *gin.Context) {
	var req CreateFilmRequest
	if err := api.BindJSON(c, &req); err != nil {
		api.RespondWithError(c, err)
		return
	}

	film, err := h.service.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, film)
}

// UpdateFilm handles PATCH /films/:id
func (h *Handler) UpdateFilm(c *gin.Context) {
	id, err := api.Param(c, "id")
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	var req UpdateFilmRequest
	if err := api.BindJSON(c, &req); err != nil {
		api.RespondWithError(c, err)
		return
	}

	film, err := h.service.Update(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, film)
}

// DeleteFilm handles DELETE /films/:id
func (h *Handler) DeleteFilm(c *gin.Context) {
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

// SyncGenres handles PUT /films/:id/genres
func (h *Handler) SyncGenres(c *gin.Context) {
	id, err := api.Param(c, "id")
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	var req SyncGenresRequest
	if err := api.BindJSON(c, &req); err != nil {
		api.RespondWithError(c, err)
		return
	}

	result, err := h.service.SyncGenres(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SyncCredits handles PUT /films/:id/credits
func (h *Handler) SyncCredits(c *gin.Context) {
	id, err := api.Param(c, "id")
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	var req SyncCreditsRequest
	if err := api.BindJSON(c, &req); err != nil {
		api.RespondWithError(c, err)
		return
	}

	result, err := h.service.SyncCredits(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
