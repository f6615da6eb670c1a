// Package engine implements the board engine: moving saved leads between
// stages, either directly against the lead store or optimistically against a
// remote sync service with reconcile-on-failure.
package engine

import (
	"context"
	"sync"

	"agencyhunter_backend/internal/events"
	leaddomain "agencyhunter_backend/internal/leads/domain"
	"agencyhunter_backend/internal/leads/store"
	"agencyhunter_backend/internal/pipeline/domain"
	"agencyhunter_backend/platform/apperr"
	"agencyhunter_backend/platform/logger"
)

// Mover moves leads between board stages. Move returns the lead as the caller
// should render it immediately; whether the change is already durable depends
// on the implementation.
type Mover interface {
	List(ctx context.Context) ([]leaddomain.SavedLead, error)
	Move(ctx context.Context, id string, stage domain.Stage) (leaddomain.SavedLead, error)
}

// LocalMover moves leads synchronously through the lead store. This is the
// path used when the board is backed by the store itself: the move is durable
// by the time Move returns.
type LocalMover struct {
	svc *store.Service
}

func NewLocalMover(svc *store.Service) *LocalMover {
	return &LocalMover{svc: svc}
}

func (m *LocalMover) List(_ context.Context) ([]leaddomain.SavedLead, error) {
	return m.svc.List(), nil
}

func (m *LocalMover) Move(ctx context.Context, id string, stage domain.Stage) (leaddomain.SavedLead, error) {
	return m.svc.UpdateStatus(ctx, id, stage)
}

// SyncAPI is the remote board contract. Implemented by remote.Client.
type SyncAPI interface {
	ListBoard(ctx context.Context) ([]leaddomain.SavedLead, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// SyncedMover keeps an in-memory view of the board and applies moves to it
// optimistically. Each move is confirmed with the sync service in the
// background; a failed confirmation triggers a full refetch of the
// authoritative list, which replaces the local view wholesale and so rolls
// the optimistic change back.
//
// Two moves racing with one reconcile can briefly show the first move as
// undone until its own confirmation lands. The refetch model accepts this:
// the remote list is always the source of truth.
type SyncedMover struct {
	mu    sync.Mutex
	board []leaddomain.SavedLead

	api SyncAPI
	bus events.Bus
	log *logger.Logger

	confirmations sync.WaitGroup
}

func NewSyncedMover(api SyncAPI, bus events.Bus, log *logger.Logger) *SyncedMover {
	return &SyncedMover{api: api, bus: bus, log: log}
}

// Load primes the board from the sync service. Called once at startup.
func (m *SyncedMover) Load(ctx context.Context) error {
	fresh, err := m.api.ListBoard(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.board = fresh
	m.mu.Unlock()
	return nil
}

func (m *SyncedMover) List(_ context.Context) ([]leaddomain.SavedLead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]leaddomain.SavedLead, len(m.board))
	copy(out, m.board)
	return out, nil
}

// Move applies the stage change to the local view and returns immediately.
// Confirmation with the sync service happens in the background; if it fails
// the board is reconciled from the remote list.
func (m *SyncedMover) Move(ctx context.Context, id string, stage domain.Stage) (leaddomain.SavedLead, error) {
	if !domain.IsKnown(stage) {
		return leaddomain.SavedLead{}, apperr.Validation("unknown pipeline status")
	}

	m.mu.Lock()
	idx := -1
	for i := range m.board {
		if m.board[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return leaddomain.SavedLead{}, apperr.NotFound("lead not found")
	}

	m.board[idx].PipelineStatus = stage
	moved := m.board[idx]
	m.mu.Unlock()

	m.confirmations.Add(1)
	go m.confirm(context.WithoutCancel(ctx), id, stage)

	return moved, nil
}

func (m *SyncedMover) confirm(ctx context.Context, id string, stage domain.Stage) {
	defer m.confirmations.Done()

	if err := m.api.UpdateStatus(ctx, id, string(stage)); err != nil {
		m.log.UpstreamError("pipeline-sync", err)
		m.Reconcile(ctx, "confirmation_failed")
	}
}

// Reconcile replaces the local board with the authoritative remote list.
// If the refetch itself fails the current view is kept; the next interval
// or failed confirmation retries.
func (m *SyncedMover) Reconcile(ctx context.Context, reason string) {
	fresh, err := m.api.ListBoard(ctx)
	if err != nil {
		m.log.UpstreamError("pipeline-sync", err)
		return
	}

	m.mu.Lock()
	m.board = fresh
	m.mu.Unlock()

	if m.bus != nil {
		m.bus.Publish(ctx, events.BoardReconciled{
			BaseEvent: events.NewBaseEvent(),
			Leads:     len(fresh),
			Reason:    reason,
		})
	}
}

// Flush blocks until all in-flight confirmations have finished. Used during
// shutdown so no confirmation is lost.
func (m *SyncedMover) Flush() {
	m.confirmations.Wait()
}
