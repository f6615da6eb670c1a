package feed

import (
	"context"
	"strings"

	"agencyhunter_backend/internal/leads/domain"
	"agencyhunter_backend/platform/apperr"
	"agencyhunter_backend/platform/logger"
)

// Searcher is the provider contract, implemented by Client.
type Searcher interface {
	Search(ctx context.Context, keyword, city string) ([]providerResult, error)
}

// SavedIndex exposes the part of the lead store the feed needs to flag
// already-saved candidates.
type SavedIndex interface {
	SavedKeys() map[string]struct{}
	Resolver() *domain.Resolver
}

// Candidate is a search hit annotated with its saved state.
type Candidate struct {
	Lead         domain.Lead
	AlreadySaved bool
}

// Service produces the candidate feed.
type Service struct {
	client Searcher
	saved  SavedIndex
	log    *logger.Logger
}

func NewService(client Searcher, saved SavedIndex, log *logger.Logger) *Service {
	return &Service{client: client, saved: saved, log: log}
}

// Search queries the provider and flags candidates that match a saved lead.
// A provider failure yields no candidates and the error; the feed is never
// partially populated.
func (s *Service) Search(ctx context.Context, keyword, city string) ([]Candidate, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, apperr.Validation("keyword is required")
	}

	results, err := s.client.Search(ctx, keyword, strings.TrimSpace(city))
	if err != nil {
		s.log.UpstreamError("discovery-provider", err)
		return nil, err
	}

	keys := s.saved.SavedKeys()
	resolver := s.saved.Resolver()

	candidates := make([]Candidate, 0, len(results))
	for _, lead := range mapCandidates(results) {
		_, saved := keys[resolver.Key(lead.DisplayName)]
		candidates = append(candidates, Candidate{Lead: lead, AlreadySaved: saved})
	}
	return candidates, nil
}
