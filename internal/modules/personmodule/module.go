// Package personmodule manages actors and directors.
package personmodule

import (
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/database"
	"github.com/mantonx/cinevault/internal/middleware"
	"github.com/mantonx/cinevault/internal/policy"
)

const (
	ModuleID   = "catalog.people"
	ModuleName = "People"
)

type Module struct {
	service *Service
	handler *Handler
}

func NewModule(db *gorm.DB, logger hclog.Logger) *Module {
	service := NewService(NewRepository(db), logger.Named("people"))
	return &Module{service: service, handler: NewHandler(service)}
}

func (m *Module) ID() string   { return ModuleID }
func (m *Module) Name() string { return ModuleName }

func (m *Module) Service() *Service { return m.service }

// RegisterRoutes mounts /people
func (m *Module) RegisterRoutes(router gin.IRouter) {
	people := router.Group("/people")
	{
		people.GET("", m.handler.listByRole(""))
		people.GET("/actors", m.handler.listByRole(database.PersonRoleActor))
		people.GET("/directors", m.handler.listByRole(database.PersonRoleDirector))
		people.GET("/:id", m.handler.GetPerson)
		people.GET("/:id/films", m.handler.GetPersonFilms)

		admin := people.Group("", middleware.RequireAuth())
		admin.POST("", middleware.Authorize(policy.ActionCreate, policy.KindPerson), m.handler.CreatePerson)
		admin.PATCH("/:id", middleware.Authorize(policy.ActionUpdate, policy.KindPerson), m.handler.UpdatePerson)
		admin.DELETE("/:id", middleware.Authorize(policy.ActionDelete, policy.KindPerson), m.handler.DeletePerson)
	}
}
