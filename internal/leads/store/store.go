// Package store provides the lead store service: the authoritative,
// durably persisted collection of saved leads. All reads and writes of the
// collection go through the Service; no other component touches the
// snapshot namespace.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"agencyhunter_backend/internal/events"
	"agencyhunter_backend/internal/leads/domain"
	"agencyhunter_backend/internal/leads/snapshot"
	pipelinedomain "agencyhunter_backend/internal/pipeline/domain"
	"agencyhunter_backend/platform/apperr"
	"agencyhunter_backend/platform/logger"
	"agencyhunter_backend/platform/phone"

	"github.com/google/uuid"
)

const (
	msgLeadNotFound = "lead not found"
	msgAlreadySaved = "already saved"
)

// Service owns the saved-lead collection. Mutations are serialized by a
// mutex, mirroring the single-threaded mutation model of the dashboard; the
// full collection is flushed to the snapshot store after every mutation.
type Service struct {
	mu    sync.Mutex
	leads []domain.SavedLead // most-recently-saved first

	store    snapshot.Store
	resolver *domain.Resolver
	bus      events.Bus
	log      *logger.Logger
	region   string

	dirty bool

	now   func() time.Time
	newID func() string
}

// New creates the lead store and primes it from the snapshot slot. A missing
// or corrupt slot degrades to an empty collection; it is never fatal.
func New(ctx context.Context, store snapshot.Store, resolver *domain.Resolver, bus events.Bus, log *logger.Logger, phoneRegion string) (*Service, error) {
	s := &Service{
		store:    store,
		resolver: resolver,
		bus:      bus,
		log:      log,
		region:   phoneRegion,
		now:      time.Now,
		newID:    uuid.NewString,
	}

	loaded, err := store.Load(ctx)
	switch {
	case errors.Is(err, snapshot.ErrCorrupt):
		log.SnapshotError("load", "leads", err)
		log.Warn("snapshot unreadable, starting with empty collection")
	case err != nil:
		log.SnapshotError("load", "leads", err)
		log.Warn("snapshot unavailable, starting with empty collection")
	default:
		s.leads = loaded
	}

	return s, nil
}

// List returns all saved leads, most-recently-saved first. It never fails;
// a fresh store yields an empty slice.
func (s *Service) List() []domain.SavedLead {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.SavedLead, len(s.leads))
	copy(out, s.leads)
	return out
}

// Get returns a single saved lead by id.
func (s *Service) Get(id string) (domain.SavedLead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.SavedLead{}, apperr.NotFound(msgLeadNotFound)
	}
	return s.leads[idx], nil
}

// Create promotes a discovery candidate into the store. A candidate whose
// display name matches a saved lead is rejected with a conflict error and
// leaves the store untouched; callers present it as "already saved".
func (s *Service) Create(ctx context.Context, candidate domain.Lead) (domain.SavedLead, error) {
	if candidate.DisplayName == "" {
		return domain.SavedLead{}, apperr.Validation("display name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasDisplayName(candidate.DisplayName) {
		s.publish(ctx, events.LeadDuplicateRejected{
			BaseEvent:   events.NewBaseEvent(),
			DisplayName: candidate.DisplayName,
		})
		return domain.SavedLead{}, apperr.Conflict(msgAlreadySaved)
	}

	if candidate.ID == "" {
		candidate.ID = s.newID()
	}

	saved := domain.SavedLead{
		Lead:           candidate,
		PipelineStatus: pipelinedomain.InitialStage,
		Notes:          "",
		SavedAt:        s.now().UTC(),
	}

	s.leads = append([]domain.SavedLead{saved}, s.leads...)
	s.flush(ctx)

	s.publish(ctx, events.LeadSaved{
		BaseEvent:       events.NewBaseEvent(),
		LeadID:          saved.ID,
		DisplayName:     saved.DisplayName,
		DiscoveryMethod: saved.DiscoveryMethod,
	})

	return saved, nil
}

// CreateManual saves a user-entered lead. Manual entries carry no discovery
// id, so one is assigned locally; they are still subject to the display-name
// uniqueness rule. The phone number is formatted to E.164 when parseable.
func (s *Service) CreateManual(ctx context.Context, entry domain.Lead) (domain.SavedLead, error) {
	entry.ID = ""
	entry.PhoneNumber = phone.NormalizeE164(entry.PhoneNumber, s.region)
	if entry.DiscoveryMethod == "" {
		entry.DiscoveryMethod = domain.DiscoveryMethodManual
	}
	if entry.OpportunityStatus == "" {
		// Manual additions usually mean the business had no site to find.
		entry.OpportunityStatus = domain.OpportunityNoWebsite
	}
	if entry.WebsiteURL == "" {
		entry.WebsiteURL = domain.WebsiteNone
	}

	return s.Create(ctx, entry)
}

// UpdateStatus moves a saved lead to a new pipeline stage, preserving every
// other field. This is the synchronous path used by the CRM list view; the
// store's own persistence is the source of truth and no remote round-trip
// is made.
func (s *Service) UpdateStatus(ctx context.Context, id string, stage pipelinedomain.Stage) (domain.SavedLead, error) {
	if !pipelinedomain.IsKnown(stage) {
		return domain.SavedLead{}, apperr.Validation("unknown pipeline status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.SavedLead{}, apperr.NotFound(msgLeadNotFound)
	}

	old := s.leads[idx].PipelineStatus
	s.leads[idx].PipelineStatus = stage
	s.flush(ctx)

	s.publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
		OldStatus: string(old),
		NewStatus: string(stage),
	})

	return s.leads[idx], nil
}

// UpdateNotes replaces the free-text notes of a saved lead.
func (s *Service) UpdateNotes(ctx context.Context, id, notes string) (domain.SavedLead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.SavedLead{}, apperr.NotFound(msgLeadNotFound)
	}

	s.leads[idx].Notes = notes
	s.flush(ctx)

	return s.leads[idx], nil
}

// RequestDelete verifies the lead exists and returns it so the caller can
// render a confirmation prompt. It mutates nothing; the actual removal only
// happens in Delete, after the boundary reports the user's approval.
func (s *Service) RequestDelete(id string) (domain.SavedLead, error) {
	return s.Get(id)
}

// Delete removes a saved lead. Callers must only invoke it once the
// confirmation boundary has approved; a declined confirmation simply means
// this method is never called.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return apperr.NotFound(msgLeadNotFound)
	}

	removed := s.leads[idx]
	s.leads = append(s.leads[:idx], s.leads[idx+1:]...)
	s.flush(ctx)

	s.publish(ctx, events.LeadDeleted{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      removed.ID,
		DisplayName: removed.DisplayName,
	})

	return nil
}

// SavedKeys returns the identity keys of all saved leads. Discovery uses it
// to flag candidates that are already in the store, with the same comparison
// the store itself applies.
func (s *Service) SavedKeys() map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make(map[string]struct{}, len(s.leads))
	for _, l := range s.leads {
		keys[s.resolver.Key(l.DisplayName)] = struct{}{}
	}
	return keys
}

// Resolver exposes the identity resolver so collaborators compare names the
// same way the store does.
func (s *Service) Resolver() *domain.Resolver {
	return s.resolver
}

// Dirty reports whether the latest snapshot flush failed. While true, the
// in-memory state is authoritative for the session but the durability
// guarantee is lost until a later flush succeeds.
func (s *Service) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// hasDisplayName must be called with the mutex held.
func (s *Service) hasDisplayName(name string) bool {
	for _, l := range s.leads {
		if s.resolver.Matches(l.DisplayName, name) {
			return true
		}
	}
	return false
}

// indexOf must be called with the mutex held.
func (s *Service) indexOf(id string) int {
	for i, l := range s.leads {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// flush rewrites the whole collection to the snapshot slot. A failed flush
// never fails the mutation: the in-memory state stays authoritative, the
// failure is logged and counted, and the dirty flag stays latched until a
// flush succeeds. Must be called with the mutex held.
func (s *Service) flush(ctx context.Context) {
	if err := s.store.Save(ctx, s.leads); err != nil {
		s.dirty = true
		snapshotFlushFailures.Inc()
		s.log.SnapshotError("save", "leads", err)
		return
	}
	s.dirty = false
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus != nil {
		s.bus.Publish(ctx, event)
	}
}
