// Package commentmodule stores audience comments and streams them live.
package commentmodule

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/events"
	"github.com/mantonx/cinevault/internal/middleware"
)

const (
	ModuleID   = "catalog.comments"
	ModuleName = "Comments"
)

type Module struct {
	service *Service
	handler *Handler
	hub     *events.Hub
	feed    *events.FeedHandler
}

// NewModule creates the comment module with its own live feed hub.
// corsOrigin restricts which browser origins may open the feed.
func NewModule(db *gorm.DB, corsOrigin string, logger hclog.Logger) *Module {
	logger = logger.Named("comments")
	hub := events.NewHub(events.DefaultBufferSize, logger.Named("hub"))
	service := NewService(NewRepository(db), hub, logger)
	return &Module{
		service: service,
		handler: NewHandler(service),
		hub:     hub,
		feed:    events.NewFeedHandler(hub, corsOrigin, logger.Named("feed")),
	}
}

func (m *Module) ID() string   { return ModuleID }
func (m *Module) Name() string { return ModuleName }

func (m *Module) Service() *Service { return m.service }

// Hub exposes the live feed hub
func (m *Module) Hub() *events.Hub { return m.hub }

// RegisterRoutes mounts the comment routes and the live feed
func (m *Module) RegisterRoutes(router gin.IRouter) {
	router.GET("/films/:id/comments", m.handler.ListComments)
	router.GET("/films/:id/comments/live", m.feed.ServeFilm)
	router.POST("/films/:id/comments", middleware.RequireAuth(), m.handler.CreateComment)
	router.DELETE("/comments/:id", middleware.RequireAuth(), m.handler.DeleteComment)
}

// Shutdown closes every live feed subscription
func (m *Module) Shutdown(ctx context.Context) error {
	m.hub.Close()
	return nil
}
