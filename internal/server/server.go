// Package server assembles the HTTP router from the catalog modules.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/api"
	"github.com/mantonx/cinevault/internal/config"
	"github.com/mantonx/cinevault/internal/middleware"
	"github.com/mantonx/cinevault/internal/modules/authmodule"
	"github.com/mantonx/cinevault/internal/modules/commentmodule"
	"github.com/mantonx/cinevault/internal/modules/filmmodule"
	"github.com/mantonx/cinevault/internal/modules/genremodule"
	"github.com/mantonx/cinevault/internal/modules/modulemanager"
	"github.com/mantonx/cinevault/internal/modules/personmodule"
	"github.com/mantonx/cinevault/internal/modules/reviewmodule"
	"github.com/mantonx/cinevault/internal/modules/uploadmodule"
)

// Server owns the router and the modules mounted on it
type Server struct {
	router  *gin.Engine
	manager *modulemanager.Manager
	logger  hclog.Logger
}

// New builds every module and mounts its routes. db must already be migrated.
func New(cfg *config.Config, db *gorm.DB, logger hclog.Logger) (*Server, error) {
	auth := authmodule.NewModule(db, cfg.Security, logger)

	uploads, err := uploadmodule.NewModule(cfg.Uploads, cfg.Server.PublicBaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize uploads: %w", err)
	}

	manager, err := modulemanager.NewManager(logger.Named("modules"),
		auth,
		filmmodule.NewModule(db, logger),
		genremodule.NewModule(db, logger),
		personmodule.NewModule(db, logger),
		reviewmodule.NewModule(db, logger),
		commentmodule.NewModule(db, cfg.Server.CORSOrigin, logger),
		uploads,
	)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		api.ErrorMiddleware(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.Server.CORSOrigin),
		middleware.Authenticate(auth.Service()),
	)

	health := newHealthHandler(db, uploads.Dir(), logger.Named("health"))
	r.GET("/health", health.Check)
	r.GET("/health/system", health.System)

	manager.RegisterRoutes(r)
	r.NoRoute(api.NotFoundHandler)

	for _, m := range manager.Modules() {
		logger.Debug("module mounted", "id", m.ID(), "name", m.Name())
	}

	return &Server{router: r, manager: manager, logger: logger}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Shutdown releases module resources such as open live feeds
func (s *Server) Shutdown(ctx context.Context) error {
	return s.manager.Shutdown(ctx)
}
