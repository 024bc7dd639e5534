// Package modulemanager holds the feature modules that make up the server and
// drives their route registration and shutdown in a fixed order.
package modulemanager

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

// Module defines the interface that all modules must implement
type Module interface {
	ID() string   // Unique identifier for the module
	Name() string // Display name for the module
	RegisterRoutes(router gin.IRouter)
}

// Shutdowner is an optional interface for modules holding resources
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// Manager owns an ordered set of modules
type Manager struct {
	modules []Module
	logger  hclog.Logger
}

// NewManager validates the module set. Modules keep the order given.
func NewManager(logger hclog.Logger, modules ...Module) (*Manager, error) {
	seen := make(map[string]bool, len(modules))
	for _, m := range modules {
		if seen[m.ID()] {
			return nil, fmt.Errorf("duplicate module id: %s", m.ID())
		}
		seen[m.ID()] = true
	}
	return &Manager{modules: modules, logger: logger}, nil
}

// Modules returns the managed modules in registration order
func (m *Manager) Modules() []Module {
	return append([]Module(nil), m.modules...)
}

// RegisterRoutes lets every module mount its routes
func (m *Manager) RegisterRoutes(router gin.IRouter) {
	for _, mod := range m.modules {
		mod.RegisterRoutes(router)
		m.logger.Debug("module routes registered", "module", mod.ID())
	}
}

// Shutdown stops modules in reverse order and joins their errors
func (m *Manager) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(m.modules) - 1; i >= 0; i-- {
		s, ok := m.modules[i].(Shutdowner)
		if !ok {
			continue
		}
		if err := s.Shutdown(ctx); err != nil {
			m.logger.Error("module shutdown failed", "module", m.modules[i].ID(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", m.modules[i].ID(), err))
		}
	}
	return errors.Join(errs...)
}
