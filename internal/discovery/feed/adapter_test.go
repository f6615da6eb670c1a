package feed

import (
	"testing"

	"agencyhunter_backend/internal/leads/domain"
)

func TestMapCandidates(t *testing.T) {
	leads := mapCandidates([]providerResult{
		{
			ID:          4402,
			Name:        "Acme Plumbing",
			Address:     "12 Main St",
			Phone:       "040 1234567",
			Website:     "https://acme.example",
			Opportunity: "\U0001F7E1 Not Mobile-Friendly",
		},
		{
			ID:          4403,
			Name:        "Beta Roofing",
			Opportunity: "\U0001F534 No Website",
		},
	})

	if len(leads) != 2 {
		t.Fatalf("len(leads) = %d, want 2", len(leads))
	}

	first := leads[0]
	if first.ID != "4402" {
		t.Errorf("ID = %q, want provider id as decimal string", first.ID)
	}
	if first.OpportunityStatus != domain.OpportunityNotMobile {
		t.Errorf("OpportunityStatus = %q, want %q", first.OpportunityStatus, domain.OpportunityNotMobile)
	}
	if first.WebsiteURL != "https://acme.example" {
		t.Errorf("WebsiteURL = %q", first.WebsiteURL)
	}
	if first.DiscoveryMethod != "search" {
		t.Errorf("DiscoveryMethod = %q, want search", first.DiscoveryMethod)
	}

	second := leads[1]
	if second.WebsiteURL != domain.WebsiteNone {
		t.Errorf("missing website mapped to %q, want %q", second.WebsiteURL, domain.WebsiteNone)
	}
	if second.OpportunityStatus != domain.OpportunityNoWebsite {
		t.Errorf("OpportunityStatus = %q, want %q", second.OpportunityStatus, domain.OpportunityNoWebsite)
	}
}

func TestMapCandidatesUnknownOpportunityFallsBackToWebsite(t *testing.T) {
	leads := mapCandidates([]providerResult{
		{ID: 1, Name: "No Site Oy", Opportunity: "brand new label"},
		{ID: 2, Name: "Has Site Oy", Website: "https://hassite.example", Opportunity: "brand new label"},
	})

	if leads[0].OpportunityStatus != domain.OpportunityNoWebsite {
		t.Errorf("no-website fallback = %q, want %q", leads[0].OpportunityStatus, domain.OpportunityNoWebsite)
	}
	if leads[1].OpportunityStatus != domain.OpportunityMobileFriendly {
		t.Errorf("with-website fallback = %q, want %q", leads[1].OpportunityStatus, domain.OpportunityMobileFriendly)
	}
}

func TestMapCandidatesSkipsNamelessHits(t *testing.T) {
	leads := mapCandidates([]providerResult{
		{ID: 1, Name: "  "},
		{ID: 2, Name: "Kept Oy"},
	})

	if len(leads) != 1 || leads[0].DisplayName != "Kept Oy" {
		t.Fatalf("leads = %+v, want only Kept Oy", leads)
	}
}
