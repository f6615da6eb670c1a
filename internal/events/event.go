// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"agencyhunter_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadSaved is published when a lead is promoted into the store, either from
// a discovery candidate or from manual entry.
type LeadSaved struct {
	BaseEvent
	LeadID          string `json:"leadId"`
	DisplayName     string `json:"displayName"`
	DiscoveryMethod string `json:"discoveryMethod"`
}

func (e LeadSaved) EventName() string { return "leads.saved" }

// LeadDuplicateRejected is published when a promotion is rejected because an
// entry with the same display name already exists.
type LeadDuplicateRejected struct {
	BaseEvent
	DisplayName string `json:"displayName"`
}

func (e LeadDuplicateRejected) EventName() string { return "leads.duplicate.rejected" }

// LeadStatusChanged is published when a saved lead moves to a new pipeline
// stage through the store (the synchronous, local path).
type LeadStatusChanged struct {
	BaseEvent
	LeadID    string `json:"leadId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status.changed" }

// LeadDeleted is published after a confirmed deletion removes a lead.
type LeadDeleted struct {
	BaseEvent
	LeadID      string `json:"leadId"`
	DisplayName string `json:"displayName"`
}

func (e LeadDeleted) EventName() string { return "leads.deleted" }

// =============================================================================
// Pipeline Domain Events
// =============================================================================

// BoardReconciled is published when the pipeline board replaces its local
// view with the authoritative remote list.
type BoardReconciled struct {
	BaseEvent
	Leads  int    `json:"leads"`
	Reason string `json:"reason"` // "confirmation_failed" or "interval"
}

func (e BoardReconciled) EventName() string { return "pipeline.board.reconciled" }
