package genremodule

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mantonx/cinevault/internal/api"
	"github.com/mantonx/cinevault/internal/middleware"
)

// Handler serves the /genres endpoints
type Handler struct {
	service *Service
}

// NewHandler creates a new genre handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListGenres(c *gin.Context) {
	genres, err := h.service.List(c.Request.Context())
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, genres)
}

func (h *Handler) GetGenre(c *gin.Context) {
	id, err := api.Param(c, "id")
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	genre, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, genre)
}

// GetGenreFilms handles GET /genres/:id/films
func (h *Handler) GetGenreFilms(c *gin.Context) {
	id, err := api.Param(c, "id")
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	films, err := h.service.Films(c.Request.Context(), id)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

func (h *Handler) CreateGenre(c *gin.Context) {
	var req GenreRequest
	if err := api.BindJSON(c, &req); err != nil {
		api.RespondWithError(c, err)
		return
	}
	genre, err := h.service.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, genre)
}

func (h *Handler) UpdateGenre(c *gin.Context) {
	id, err := api.Param(c, "id")
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	var req GenreRequest
	if err := api.BindJSON(c, &req); err != nil {
		api.RespondWithError(c, err)
		return
	}
	genre, err := h.service.Update(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, genre)
}

func (h *Handler) DeleteGenre(c *gin.Context) {
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
