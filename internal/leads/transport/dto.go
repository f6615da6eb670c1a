// Package transport defines the request and response shapes of the leads API.
package transport

import (
	"time"

	"agencyhunter_backend/internal/leads/domain"
)

// PromoteLeadRequest promotes a discovery candidate into the store.
type PromoteLeadRequest struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName" validate:"required"`
	Address           string `json:"address"`
	PhoneNumber       string `json:"phoneNumber"`
	WebsiteURL        string `json:"websiteUrl"`
	OpportunityStatus string `json:"opportunityStatus" validate:"required"`
	DiscoveryMethod   string `json:"discoveryMethod"`
}

// ManualLeadRequest creates a lead from user-entered data.
type ManualLeadRequest struct {
	DisplayName       string `json:"displayName" validate:"required"`
	Address           string `json:"address"`
	PhoneNumber       string `json:"phoneNumber"`
	WebsiteURL        string `json:"websiteUrl"`
	OpportunityStatus string `json:"opportunityStatus"`
}

// UpdateStatusRequest moves a lead to a new pipeline stage.
// Status accepts both the board vocabulary and the legacy CRM names.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateNotesRequest replaces the notes of a lead. Notes have no length limit.
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// LeadResponse is the API shape of a saved lead.
type LeadResponse struct {
	ID                string    `json:"id"`
	DisplayName       string    `json:"displayName"`
	Address           string    `json:"address"`
	PhoneNumber       string    `json:"phoneNumber,omitempty"`
	WebsiteURL        string    `json:"websiteUrl,omitempty"`
	OpportunityStatus string    `json:"opportunityStatus"`
	DiscoveryMethod   string    `json:"discoveryMethod,omitempty"`
	PipelineStatus    string    `json:"pipelineStatus"`
	Notes             string    `json:"notes"`
	SavedAt           time.Time `json:"savedAt"`
}

// DeleteRequestResponse reports what a deletion would remove, so the UI can
// render its confirmation prompt before calling the delete endpoint.
type DeleteRequestResponse struct {
	Lead                 LeadResponse `json:"lead"`
	ConfirmationRequired bool         `json:"confirmationRequired"`
}

// ToLeadResponse maps a domain saved lead onto the API shape.
func ToLeadResponse(l domain.SavedLead) LeadResponse {
	return LeadResponse{
		ID:                l.ID,
		DisplayName:       l.DisplayName,
		Address:           l.Address,
		PhoneNumber:       l.PhoneNumber,
		WebsiteURL:        l.WebsiteURL,
		OpportunityStatus: string(l.OpportunityStatus),
		DiscoveryMethod:   l.DiscoveryMethod,
		PipelineStatus:    string(l.PipelineStatus),
		Notes:             l.Notes,
		SavedAt:           l.SavedAt,
	}
}

// ToLeadResponses maps a collection, preserving order.
func ToLeadResponses(leads []domain.SavedLead) []LeadResponse {
	out := make([]LeadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, ToLeadResponse(l))
	}
	return out
}
