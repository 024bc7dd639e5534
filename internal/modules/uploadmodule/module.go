// Package uploadmodule accepts poster images and stores them as WebP.
package uploadmodule

import (
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/cinevault/internal/config"
	"github.com/mantonx/cinevault/internal/middleware"
	"github.com/mantonx/cinevault/internal/policy"
)

const (
	ModuleID   = "catalog.uploads"
	ModuleName = "Uploads"
)

type Module struct {
	dir     string
	service *Service
	handler *Handler
}

// NewModule creates the upload module, creating the upload directory
func NewModule(cfg config.UploadConfig, publicBaseURL string, logger hclog.Logger) (*Module, error) {
	store, err := NewDiskStore(cfg.Dir)
	if err != nil {
		return nil, err
	}
	service := NewService(
		NewImageProcessor(cfg.MaxWidth, cfg.WebPQuality),
		store,
		cfg.MaxFileSize,
		publicBaseURL,
		logger.Named("uploads"),
	)
	return &Module{dir: cfg.Dir, service: service, handler: NewHandler(service)}, nil
}

func (m *Module) ID() string   { return ModuleID }
func (m *Module) Name() string { return ModuleName }

// Dir is the directory served under PublicPrefix
func (m *Module) Dir() string { return m.dir }

// RegisterRoutes mounts the upload endpoint and serves stored files
func (m *Module) RegisterRoutes(router gin.IRouter) {
	router.Static(PublicPrefix, m.dir)
	router.POST("/files/upload",
		middleware.RequireAuth(),
		middleware.Authorize(policy.ActionUpload, policy.KindFile),
		m.handler.UploadFile,
	)
}
