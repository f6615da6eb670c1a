// Package domain provides core business rules for the pipeline bounded context.
package domain

import "strings"

// Stage is a sales-funnel stage of a saved lead. The canonical vocabulary is
// the lowercase board set; the capitalized CRM list vocabulary is translated
// at the boundary by ParseStage and never stored.
type Stage string

const (
	StageNew         Stage = "new"
	StageContacted   Stage = "contacted"
	StageMeeting     Stage = "meeting"
	StageNegotiation Stage = "negotiation"
	StageWon         Stage = "won"
	StageLost        Stage = "lost"
)

// InitialStage is assigned to every newly saved lead.
const InitialStage = StageNew

var knownStages = map[Stage]struct{}{
	StageNew:         {},
	StageContacted:   {},
	StageMeeting:     {},
	StageNegotiation: {},
	StageWon:         {},
	StageLost:        {},
}

// legacyStages maps the capitalized CRM list vocabulary onto the canonical
// set. "Deal" is the legacy name for a won lead; the legacy vocabulary has
// no negotiation stage.
var legacyStages = map[string]Stage{
	"New":       StageNew,
	"Contacted": StageContacted,
	"Meeting":   StageMeeting,
	"Deal":      StageWon,
	"Lost":      StageLost,
}

// IsKnown reports whether s is a defined pipeline stage.
func IsKnown(s Stage) bool {
	_, ok := knownStages[s]
	return ok
}

// Stages returns the canonical stage set in funnel order.
func Stages() []Stage {
	return []Stage{StageNew, StageContacted, StageMeeting, StageNegotiation, StageWon, StageLost}
}

// ParseStage translates an external stage string into the canonical
// vocabulary. It accepts both the lowercase board names and the capitalized
// legacy CRM names. The second return value is false for undefined stages.
func ParseStage(raw string) (Stage, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	if stage, ok := legacyStages[trimmed]; ok {
		return stage, true
	}

	stage := Stage(strings.ToLower(trimmed))
	if IsKnown(stage) {
		return stage, true
	}
	return "", false
}

// CanTransition reports whether a lead may move between two stages. The
// funnel is a free graph over the defined stages: backward moves and re-entry
// from won/lost are all allowed, only undefined stages are rejected.
func CanTransition(from, to Stage) bool {
	return IsKnown(from) && IsKnown(to)
}
