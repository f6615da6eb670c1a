// Package pipeline wires the board engine: it picks the mover implementation
// from configuration and registers the board routes.
package pipeline

import (
	"context"
	"time"

	"agencyhunter_backend/internal/events"
	apphttp "agencyhunter_backend/internal/http"
	"agencyhunter_backend/internal/leads/store"
	"agencyhunter_backend/internal/pipeline/engine"
	"agencyhunter_backend/internal/pipeline/handler"
	"agencyhunter_backend/internal/pipeline/remote"
	"agencyhunter_backend/platform/config"
	"agencyhunter_backend/platform/logger"
	"agencyhunter_backend/platform/validator"
)

// ModuleConfig combines the config interfaces the pipeline module needs.
type ModuleConfig interface {
	config.PipelineConfig
}

// Module is the pipeline bounded context module implementing http.Module.
type Module struct {
	mover   engine.Mover
	synced  *engine.SyncedMover
	handler *handler.Handler
	log     *logger.Logger

	stopReconcile chan struct{}
	reconcileDone chan struct{}
}

// NewModule wires the board engine. With PIPELINE_BACKEND=local moves go
// straight through the lead store; with remote, moves are optimistic against
// an in-memory board primed from the sync service. A failed initial prime is
// tolerated: the board starts empty and the interval reconcile fills it once
// the service is reachable.
func NewModule(ctx context.Context, svc *store.Service, bus events.Bus, val *validator.Validator, cfg ModuleConfig, log *logger.Logger) (*Module, error) {
	m := &Module{log: log}

	switch cfg.GetPipelineBackend() {
	case config.PipelineBackendRemote:
		client := remote.NewClient(cfg.GetPipelineSyncBaseURL(), cfg.GetPipelineSyncTimeout())
		synced := engine.NewSyncedMover(client, bus, log)
		if err := synced.Load(ctx); err != nil {
			log.UpstreamError("pipeline-sync", err)
		}
		m.mover = synced
		m.synced = synced
		m.startReconcileLoop(cfg.GetPipelineReconcileInterval())
	default:
		m.mover = engine.NewLocalMover(svc)
	}

	m.handler = handler.New(m.mover, val)
	return m, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "pipeline"
}

// RegisterRoutes mounts pipeline routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	pipelineGroup := ctx.V1.Group("/pipeline")
	m.handler.RegisterRoutes(pipelineGroup)
}

// Stop drains in-flight confirmations and stops the reconcile loop.
func (m *Module) Stop() {
	if m.synced == nil {
		return
	}
	if m.stopReconcile != nil {
		close(m.stopReconcile)
		<-m.reconcileDone
	}
	m.synced.Flush()
}

func (m *Module) startReconcileLoop(interval time.Duration) {
	if interval <= 0 {
		return
	}

	m.stopReconcile = make(chan struct{})
	m.reconcileDone = make(chan struct{})

	go func() {
		defer close(m.reconcileDone)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.synced.Reconcile(context.Background(), "interval")
			case <-m.stopReconcile:
				return
			}
		}
	}()
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
