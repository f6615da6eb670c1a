// Package leads provides the lead store bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"context"

	"agencyhunter_backend/internal/events"
	apphttp "agencyhunter_backend/internal/http"
	"agencyhunter_backend/internal/leads/domain"
	"agencyhunter_backend/internal/leads/handler"
	"agencyhunter_backend/internal/leads/snapshot"
	"agencyhunter_backend/internal/leads/store"
	"agencyhunter_backend/platform/config"
	"agencyhunter_backend/platform/logger"
	"agencyhunter_backend/platform/validator"
)

// ModuleConfig combines the config interfaces the leads module needs.
type ModuleConfig interface {
	config.DedupConfig
	config.PhoneConfig
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	service *store.Service
	handler *handler.Handler
}

// NewModule creates and initializes the leads module with all its dependencies.
// The snapshot store is constructed by the composition root so the module
// stays agnostic of the configured backend.
func NewModule(ctx context.Context, snap snapshot.Store, bus events.Bus, val *validator.Validator, cfg ModuleConfig, log *logger.Logger) (*Module, error) {
	resolver := domain.NewResolver(cfg.GetDedupNormalize())

	svc, err := store.New(ctx, snap, resolver, bus, log, cfg.GetPhoneDefaultRegion())
	if err != nil {
		return nil, err
	}

	return &Module{
		service: svc,
		handler: handler.New(svc, val),
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead store service for external use.
func (m *Module) Service() *store.Service {
	return m.service
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	leadsGroup := ctx.V1.Group("/leads")
	m.handler.RegisterRoutes(leadsGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
