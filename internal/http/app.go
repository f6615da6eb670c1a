// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"agencyhunter_backend/platform/config"
	"agencyhunter_backend/platform/logger"
)

// DurabilityReporter exposes the lead store's durability state for the
// health endpoint.
type DurabilityReporter interface {
	// Dirty reports whether the latest snapshot flush failed.
	Dirty() bool
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the HTTP server configuration.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Durability reports snapshot flush health (may be nil).
	Durability DurabilityReporter
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
