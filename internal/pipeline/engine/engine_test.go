package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	leaddomain "agencyhunter_backend/internal/leads/domain"
	"agencyhunter_backend/internal/pipeline/domain"
	"agencyhunter_backend/platform/apperr"
	"agencyhunter_backend/platform/logger"
)

// fakeSyncAPI scripts the sync service. Confirmations can be held open so a
// test can observe the board between the optimistic apply and the outcome.
type fakeSyncAPI struct {
	mu sync.Mutex

	board       []leaddomain.SavedLead
	confirmErr  error
	listErr     error
	listCalls   int
	updateCalls int

	release chan struct{}
	done    chan struct{}
}

func (f *fakeSyncAPI) ListBoard(_ context.Context) ([]leaddomain.SavedLead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]leaddomain.SavedLead, len(f.board))
	copy(out, f.board)
	return out, nil
}

func (f *fakeSyncAPI) UpdateStatus(_ context.Context, _, _ string) error {
	if f.release != nil {
		<-f.release
	}

	f.mu.Lock()
	f.updateCalls++
	err := f.confirmErr
	f.mu.Unlock()

	if f.done != nil {
		defer close(f.done)
	}
	return err
}

func boardFixture() []leaddomain.SavedLead {
	return []leaddomain.SavedLead{
		{
			Lead:           leaddomain.Lead{ID: "101", DisplayName: "Acme Plumbing"},
			PipelineStatus: domain.StageNew,
		},
		{
			Lead:           leaddomain.Lead{ID: "102", DisplayName: "Beta Roofing"},
			PipelineStatus: domain.StageContacted,
		},
	}
}

func newSyncedMover(t *testing.T, api *fakeSyncAPI) *SyncedMover {
	t.Helper()

	mover := NewSyncedMover(api, nil, logger.New("test"))
	if err := mover.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return mover
}

func TestSyncedMoverMoveIsVisibleBeforeConfirmation(t *testing.T) {
	api := &fakeSyncAPI{
		board:   boardFixture(),
		release: make(chan struct{}),
		done:    make(chan struct{}),
	}
	mover := newSyncedMover(t, api)

	moved, err := mover.Move(context.Background(), "101", domain.StageMeeting)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if moved.PipelineStatus != domain.StageMeeting {
		t.Fatalf("returned stage = %q, want %q", moved.PipelineStatus, domain.StageMeeting)
	}

	// The confirmation is still blocked, yet the board already shows the move.
	board, err := mover.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := stageOf(t, board, "101"); got != domain.StageMeeting {
		t.Fatalf("board stage before confirmation = %q, want %q", got, domain.StageMeeting)
	}

	close(api.release)
	<-api.done
	mover.Flush()

	if got := stageOf(t, mustList(t, mover), "101"); got != domain.StageMeeting {
		t.Fatalf("board stage after confirmation = %q, want %q", got, domain.StageMeeting)
	}
	api.mu.Lock()
	defer api.mu.Unlock()
	if api.listCalls != 1 {
		t.Fatalf("listCalls = %d, want 1 (no reconcile on success)", api.listCalls)
	}
}

func TestSyncedMoverFailedConfirmationRollsBack(t *testing.T) {
	api := &fakeSyncAPI{
		board:      boardFixture(),
		confirmErr: errors.New("upstream down"),
	}
	mover := newSyncedMover(t, api)

	if _, err := mover.Move(context.Background(), "101", domain.StageWon); err != nil {
		t.Fatalf("Move: %v", err)
	}
	mover.Flush()

	// Reconcile refetched the untouched remote list, undoing the move.
	if got := stageOf(t, mustList(t, mover), "101"); got != domain.StageNew {
		t.Fatalf("board stage after rollback = %q, want %q", got, domain.StageNew)
	}
	api.mu.Lock()
	defer api.mu.Unlock()
	if api.listCalls != 2 {
		t.Fatalf("listCalls = %d, want 2 (prime + reconcile)", api.listCalls)
	}
}

func TestSyncedMoverReconcileFetchFailureKeepsLocalView(t *testing.T) {
	api := &fakeSyncAPI{board: boardFixture()}
	mover := newSyncedMover(t, api)

	if _, err := mover.Move(context.Background(), "102", domain.StageLost); err != nil {
		t.Fatalf("Move: %v", err)
	}
	mover.Flush()

	api.mu.Lock()
	api.listErr = errors.New("upstream down")
	api.mu.Unlock()

	mover.Reconcile(context.Background(), "interval")

	if got := stageOf(t, mustList(t, mover), "102"); got != domain.StageLost {
		t.Fatalf("board stage after failed refetch = %q, want %q", got, domain.StageLost)
	}
}

func TestSyncedMoverMoveUnknownLead(t *testing.T) {
	api := &fakeSyncAPI{board: boardFixture()}
	mover := newSyncedMover(t, api)

	_, err := mover.Move(context.Background(), "999", domain.StageWon)
	if !apperr.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
	api.mu.Lock()
	defer api.mu.Unlock()
	if api.updateCalls != 0 {
		t.Fatalf("updateCalls = %d, want 0", api.updateCalls)
	}
}

func TestSyncedMoverMoveUnknownStage(t *testing.T) {
	api := &fakeSyncAPI{board: boardFixture()}
	mover := newSyncedMover(t, api)

	_, err := mover.Move(context.Background(), "101", domain.Stage("archived"))
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	if got := stageOf(t, mustList(t, mover), "101"); got != domain.StageNew {
		t.Fatalf("board stage = %q, want unchanged %q", got, domain.StageNew)
	}
}

func TestSyncedMoverFlushDrainsConfirmations(t *testing.T) {
	api := &fakeSyncAPI{
		board:   boardFixture(),
		release: make(chan struct{}),
	}
	mover := newSyncedMover(t, api)

	if _, err := mover.Move(context.Background(), "101", domain.StageContacted); err != nil {
		t.Fatalf("Move: %v", err)
	}

	flushed := make(chan struct{})
	go func() {
		mover.Flush()
		close(flushed)
	}()

	select {
	case <-flushed:
		t.Fatal("Flush returned while a confirmation was still in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(api.release)

	select {
	case <-flushed:
	case <-time.After(time.Second):
		t.Fatal("Flush did not return after confirmations finished")
	}
}

func stageOf(t *testing.T, board []leaddomain.SavedLead, id string) domain.Stage {
	t.Helper()
	for _, entry := range board {
		if entry.ID == id {
			return entry.PipelineStatus
		}
	}
	t.Fatalf("lead %s not on board", id)
	return ""
}

func mustList(t *testing.T, mover Mover) []leaddomain.SavedLead {
	t.Helper()
	board, err := mover.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	return board
}
