package feed

import (
	"strconv"
	"strings"

	"agencyhunter_backend/internal/leads/domain"
)

// mapCandidates converts raw provider hits into leads. Provider ids are
// decimal numbers; they are carried as strings so locally created leads and
// provider leads share one id space. A missing website maps to the sentinel
// rather than an empty string, matching how saved leads record it.
func mapCandidates(results []providerResult) []domain.Lead {
	leads := make([]domain.Lead, 0, len(results))
	for _, r := range results {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}

		website := strings.TrimSpace(r.Website)
		if website == "" {
			website = domain.WebsiteNone
		}

		opportunity, ok := domain.ParseOpportunityStatus(r.Opportunity)
		if !ok {
			opportunity = classifyByWebsite(website)
		}

		leads = append(leads, domain.Lead{
			ID:                strconv.FormatInt(r.ID, 10),
			DisplayName:       name,
			Address:           strings.TrimSpace(r.Address),
			PhoneNumber:       strings.TrimSpace(r.Phone),
			WebsiteURL:        website,
			OpportunityStatus: opportunity,
			DiscoveryMethod:   "search",
		})
	}
	return leads
}

// classifyByWebsite is the fallback when the provider sends an opportunity
// label we do not recognize.
func classifyByWebsite(website string) domain.OpportunityStatus {
	if website == domain.WebsiteNone {
		return domain.OpportunityNoWebsite
	}
	return domain.OpportunityMobileFriendly
}
