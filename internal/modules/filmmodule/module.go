// Package filmmodule serves the film catalog and keeps each film's genre and
// credit links in sync.
package filmmodule

import (
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"
)

const (
	ModuleID   = "catalog.films"
	ModuleName = "Films"
)

// Module wires the film service into the router
type Module struct {
	service *Service
	handler *Handler
}

// NewModule creates the film module
func NewModule(db *gorm.DB, logger hclog.Logger) *Module {
	service := NewService(NewRepository(db), logger.Named("films"))
	return &Module{service: service, handler: NewHandler(service)}
}

func (m *Module) ID() string   { return ModuleID }
func (m *Module) Name() string { return ModuleName }

// Service exposes the film service to other modules
func (m *Module) Service() *Service { return m.service }
