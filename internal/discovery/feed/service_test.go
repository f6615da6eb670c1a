package feed

import (
	"context"
	"errors"
	"testing"

	"agencyhunter_backend/internal/leads/domain"
	"agencyhunter_backend/platform/apperr"
	"agencyhunter_backend/platform/logger"
)

type fakeSearcher struct {
	results []providerResult
	err     error
}

func (f *fakeSearcher) Search(context.Context, string, string) ([]providerResult, error) {
	return f.results, f.err
}

type fakeSavedIndex struct {
	resolver *domain.Resolver
	keys     map[string]struct{}
}

func (f *fakeSavedIndex) SavedKeys() map[string]struct{} { return f.keys }
func (f *fakeSavedIndex) Resolver() *domain.Resolver     { return f.resolver }

func newSavedIndex(names ...string) *fakeSavedIndex {
	resolver := domain.NewResolver(false)
	keys := make(map[string]struct{}, len(names))
	for _, name := range names {
		keys[resolver.Key(name)] = struct{}{}
	}
	return &fakeSavedIndex{resolver: resolver, keys: keys}
}

func TestSearchFlagsSavedCandidates(t *testing.T) {
	searcher := &fakeSearcher{results: []providerResult{
		{ID: 1, Name: "Acme Plumbing", Opportunity: "no website"},
		{ID: 2, Name: "Beta Roofing", Opportunity: "no website"},
	}}
	svc := NewService(searcher, newSavedIndex("Acme Plumbing"), logger.New("test"))

	candidates, err := svc.Search(context.Background(), "plumbing", "Helsinki")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2", len(candidates))
	}
	if !candidates[0].AlreadySaved {
		t.Error("Acme Plumbing should be flagged as saved")
	}
	if candidates[1].AlreadySaved {
		t.Error("Beta Roofing should not be flagged as saved")
	}
}

func TestSearchProviderFailureYieldsNoCandidates(t *testing.T) {
	searcher := &fakeSearcher{err: apperr.Unavailable("provider down", errors.New("dial tcp"))}
	svc := NewService(searcher, newSavedIndex(), logger.New("test"))

	candidates, err := svc.Search(context.Background(), "plumbing", "")
	if !apperr.IsUnavailable(err) {
		t.Fatalf("err = %v, want unavailable", err)
	}
	if candidates != nil {
		t.Fatalf("candidates = %+v, want none", candidates)
	}
}

func TestSearchRequiresKeyword(t *testing.T) {
	svc := NewService(&fakeSearcher{}, newSavedIndex(), logger.New("test"))

	if _, err := svc.Search(context.Background(), "   ", "Helsinki"); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}
