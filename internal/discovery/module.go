// Package discovery wires the candidate feed module.
package discovery

import (
	"agencyhunter_backend/internal/discovery/feed"
	"agencyhunter_backend/internal/discovery/handler"
	apphttp "agencyhunter_backend/internal/http"
	"agencyhunter_backend/platform/config"
	"agencyhunter_backend/platform/logger"
)

// Module is the discovery bounded context module implementing http.Module.
type Module struct {
	service *feed.Service
	handler *handler.Handler
}

// NewModule wires the provider client and the candidate feed service.
func NewModule(cfg config.DiscoveryConfig, saved feed.SavedIndex, log *logger.Logger) *Module {
	svc := feed.NewService(feed.NewClient(cfg), saved, log)
	return &Module{
		service: svc,
		handler: handler.New(svc),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "discovery"
}

// RegisterRoutes mounts discovery routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	discoveryGroup := ctx.V1.Group("/discovery")
	m.handler.RegisterRoutes(discoveryGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
