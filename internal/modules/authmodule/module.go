// Package authmodule handles registration, login and bearer token
// verification.
package authmodule

import (
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/config"
	"github.com/mantonx/cinevault/internal/middleware"
)

const (
	ModuleID   = "catalog.auth"
	ModuleName = "Authentication"
)

// Module wires the auth service into the router
type Module struct {
	service *Service
	handler *Handler
}

// NewModule builds the module from the security settings
func NewModule(db *gorm.DB, cfg config.SecurityConfig, logger hclog.Logger) *Module {
	service := NewService(
		NewRepository(db),
		NewTokenManager(cfg.JWTSecret, cfg.JWTExpiration),
		cfg.BcryptCost,
		logger.Named("auth"),
	)
	return &Module{service: service, handler: NewHandler(service)}
}

func (m *Module) ID() string   { return ModuleID }
func (m *Module) Name() string { return ModuleName }

// Service exposes the token verifier for the authentication middleware
func (m *Module) Service() *Service { return m.service }

// RegisterRoutes mounts /auth
func (m *Module) RegisterRoutes(router gin.IRouter) {
	group := router.Group("/auth")
	{
		group.POST("/register", m.handler.Register)
		group.POST("/login", m.handler.Login)
		group.GET("/me", middleware.RequireAuth(), m.handler.Me)
	}
}
