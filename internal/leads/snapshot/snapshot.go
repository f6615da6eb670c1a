// Package snapshot persists the saved-lead collection as a single versioned
// document in a named namespace slot. Every mutation of the store rewrites
// the whole document; process start reads it back once. The slot is owned
// exclusively by the lead store.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"agencyhunter_backend/internal/leads/domain"
)

// Version is the current snapshot document format version. Documents with a
// different version are refused by Decode so a format change can never be
// silently misread.
const Version = 1

// ErrCorrupt is wrapped by Decode when the slot holds an unreadable or
// unknown-version document. Callers degrade to an empty collection.
var ErrCorrupt = fmt.Errorf("corrupt snapshot document")

type envelope struct {
	Version int                `json:"version"`
	Leads   []domain.SavedLead `json:"leads"`
}

// Store is a durable namespace slot holding the serialized lead collection.
type Store interface {
	// Load reads the slot. A missing slot yields (nil, nil); a corrupt slot
	// yields an error wrapping ErrCorrupt.
	Load(ctx context.Context) ([]domain.SavedLead, error)
	// Save overwrites the slot with the full collection.
	Save(ctx context.Context, leads []domain.SavedLead) error
}

// Encode serializes the collection into the versioned document format.
func Encode(leads []domain.SavedLead) ([]byte, error) {
	if leads == nil {
		leads = []domain.SavedLead{}
	}
	return json.Marshal(envelope{Version: Version, Leads: leads})
}

// Decode deserializes a document produced by Encode, preserving order.
func Decode(data []byte) ([]domain.SavedLead, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if env.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, env.Version)
	}
	return env.Leads, nil
}
