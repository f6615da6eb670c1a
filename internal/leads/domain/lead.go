// Package domain provides core business rules for the leads bounded context.
package domain

import (
	"strings"
	"time"
	"unicode"

	pipelinedomain "agencyhunter_backend/internal/pipeline/domain"
)

// OpportunityStatus classifies a business's web presence. It is assigned by
// the discovery adapter (or defaulted for manual entries) and immutable for
// the lifetime of the lead.
type OpportunityStatus string

const (
	OpportunityNoWebsite      OpportunityStatus = "no_website"
	OpportunityBrokenWebsite  OpportunityStatus = "broken_website"
	OpportunityNotMobile      OpportunityStatus = "not_mobile_friendly"
	OpportunityMobileFriendly OpportunityStatus = "mobile_friendly"
	OpportunitySocialOnly     OpportunityStatus = "social_only"
)

// WebsiteNone marks a business confirmed to have no website. It is distinct
// from the empty string, which means the field has not been loaded.
const WebsiteNone = "none"

// DiscoveryMethodManual is the provenance tag for user-entered leads.
const DiscoveryMethodManual = "manual entry"

var knownOpportunityStatuses = map[OpportunityStatus]struct{}{
	OpportunityNoWebsite:      {},
	OpportunityBrokenWebsite:  {},
	OpportunityNotMobile:      {},
	OpportunityMobileFriendly: {},
	OpportunitySocialOnly:     {},
}

// IsKnownOpportunityStatus reports whether s is a defined classification.
func IsKnownOpportunityStatus(s OpportunityStatus) bool {
	_, ok := knownOpportunityStatuses[s]
	return ok
}

// ParseOpportunityStatus translates a provider classification string into the
// canonical enumeration. Provider feeds use spaced uppercase names, sometimes
// with trailing decorations; both are tolerated.
func ParseOpportunityStatus(raw string) (OpportunityStatus, bool) {
	// Strip any non-letter decoration around the name, such as the colored
	// dot emoji some feeds prepend or append.
	cleaned := strings.TrimFunc(strings.ToLower(raw), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	cleaned = strings.ReplaceAll(cleaned, " ", "_")
	cleaned = strings.ReplaceAll(cleaned, "-", "_")

	status := OpportunityStatus(cleaned)
	if IsKnownOpportunityStatus(status) {
		return status, true
	}
	return "", false
}

// Lead is a prospective business, discovered or entered by the user.
type Lead struct {
	// ID is the provider's numeric id rendered as a decimal string, or a
	// locally assigned UUID for manual entries. The two forms are
	// structurally disjoint, so local ids can never collide with provider ids.
	ID                string            `json:"id"`
	DisplayName       string            `json:"displayName"`
	Address           string            `json:"address"`
	PhoneNumber       string            `json:"phoneNumber,omitempty"`
	WebsiteURL        string            `json:"websiteUrl,omitempty"`
	OpportunityStatus OpportunityStatus `json:"opportunityStatus"`
	DiscoveryMethod   string            `json:"discoveryMethod,omitempty"`
}

// SavedLead is a Lead promoted into the user's persistent pipeline.
type SavedLead struct {
	Lead
	PipelineStatus pipelinedomain.Stage `json:"pipelineStatus"`
	Notes          string               `json:"notes"`
	SavedAt        time.Time            `json:"savedAt"`
}
