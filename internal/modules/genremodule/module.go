// Package genremodule manages film genres.
package genremodule

import (
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/middleware"
	"github.com/mantonx/cinevault/internal/policy"
)

const (
	ModuleID   = "catalog.genres"
	ModuleName = "Genres"
)

type Module struct {
	service *Service
	handler *Handler
}

func NewModule(db *gorm.DB, logger hclog.Logger) *Module {
	service := NewService(NewRepository(db), logger.Named("genres"))
	return &Module{service: service, handler: NewHandler(service)}
}

func (m *Module) ID() string   { return ModuleID }
func (m *Module) Name() string { return ModuleName }

func (m *Module) Service() *Service { return m.service }

// RegisterRoutes mounts /genres
func (m *Module) RegisterRoutes(router gin.IRouter) {
	genres := router.Group("/genres")
	{
		genres.GET("", m.handler.ListGenres)
		genres.GET("/:id", m.handler.GetGenre)
		genres.GET("/:id/films", m.handler.GetGenreFilms)

		admin := genres.Group("", middleware.RequireAuth())
		admin.POST("", middleware.Authorize(policy.ActionCreate, policy.KindGenre), m.handler.CreateGenre)
		admin.PATCH("/:id", middleware.Authorize(policy.ActionUpdate, policy.KindGenre), m.handler.UpdateGenre)
		admin.DELETE("/:id", middleware.Authorize(policy.ActionDelete, policy.KindGenre), m.handler.DeleteGenre)
	}
}
