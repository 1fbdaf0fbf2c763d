package handlers

import (
	"github.com/convertly/convertly/config"
	"github.com/convertly/convertly/internal/dispatch"
	"github.com/convertly/convertly/internal/registry"
	"github.com/convertly/convertly/pkg/logger"
	"github.com/convertly/convertly/pkg/storage"
)

// Handlers bundles every HTTP handler with its dependencies.
type Handlers struct {
	registry *registry.Registry
	router   *dispatch.Router
	store    *storage.Layout
	cfg      *config.Config
	logger   logger.Logger
}

func NewHandlers(
	reg *registry.Registry,
	router *dispatch.Router,
	store *storage.Layout,
	cfg *config.Config,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		registry: reg,
		router:   router,
		store:    store,
		cfg:      cfg,
		logger:   log,
	}
}
