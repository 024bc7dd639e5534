// Package reviewmodule stores curator reviews, one per film and author.
package reviewmodule

import (
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/middleware"
	"github.com/mantonx/cinevault/internal/policy"
)

const (
	ModuleID   = "catalog.reviews"
	ModuleName = "Reviews"
)

type Module struct {
	service *Service
	handler *Handler
}

func NewModule(db *gorm.DB, logger hclog.Logger) *Module {
	service := NewService(NewRepository(db), logger.Named("reviews"))
	return &Module{service: service, handler: NewHandler(service)}
}

func (m *Module) ID() string   { return ModuleID }
func (m *Module) Name() string { return ModuleName }

func (m *Module) Service() *Service { return m.service }

// RegisterRoutes mounts the review routes. Film-scoped paths share the
// :id wildcard with the film routes.
func (m *Module) RegisterRoutes(router gin.IRouter) {
	router.GET("/films/:id/reviews", m.handler.ListReviews)
	router.POST("/films/:id/reviews", middleware.RequireAuth(), middleware.Authorize(policy.ActionUpsert, policy.KindReview), m.handler.UpsertReview)
	router.DELETE("/reviews/:id", middleware.RequireAuth(), middleware.Authorize(policy.ActionDelete, policy.KindReview), m.handler.DeleteReview)
}
