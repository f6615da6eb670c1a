// Package transport defines response DTOs for the discovery API.
package transport

import (
	"agencyhunter_backend/internal/discovery/feed"
)

// CandidateResponse is one search hit as the dashboard renders it.
type CandidateResponse struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Address           string `json:"address"`
	PhoneNumber       string `json:"phoneNumber,omitempty"`
	WebsiteURL        string `json:"websiteUrl"`
	OpportunityStatus string `json:"opportunityStatus"`
	AlreadySaved      bool   `json:"alreadySaved"`
}

func ToCandidateResponses(candidates []feed.Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, CandidateResponse{
			ID:                c.Lead.ID,
			DisplayName:       c.Lead.DisplayName,
			Address:           c.Lead.Address,
			PhoneNumber:       c.Lead.PhoneNumber,
			WebsiteURL:        c.Lead.WebsiteURL,
			OpportunityStatus: string(c.Lead.OpportunityStatus),
			AlreadySaved:      c.AlreadySaved,
		})
	}
	return out
}
