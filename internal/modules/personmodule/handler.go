package personmodule

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mantonx/cinevault/internal/api"
	"github.com/mantonx/cinevault/internal/database"
	"github.com/mantonx/cinevault/internal/middleware"
)

// Handler serves the /people endpoints
type Handler struct {
	service *Service
}

// NewHandler creates a new person handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// listByRole returns a handler listing people with the given primary role
func (h *Handler) listByRole(role database.PersonRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		people, err := h.service.List(c.Request.Context(), role)
		if err != nil {
			api.RespondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, people)
	}
}

func (h *Handler) GetPerson(c *gin.Context) {
	id, err := api.Param(c, "id")
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	person, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

// GetPersonFilms handles GET /people/:id/films
func (h *Handler) GetPersonFilms(c *gin.Context) {
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

func (h *Handler) CreatePerson(c *gin.Context) {
	var req CreatePersonRequest
	if err := api.BindJSON(c, &req); err != nil {
		api.RespondWithError(c, err)
		return
	}
	person, err := h.service.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, person)
}

func (h *Handler) UpdatePerson(c *gin.Context) {
	id, err := api.Param(c, "id")
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	var req UpdatePersonRequest
	if err := api.BindJSON(c, &req); err != nil {
		api.RespondWithError(c, err)
		return
	}
	person, err := h.service.Update(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		api.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

func (h *Handler) DeletePerson(c *gin.Context) {
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
