package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"agencyhunter_backend/internal/leads/domain"
	pipelinedomain "agencyhunter_backend/internal/pipeline/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, "agency_hunter:leads"), mr
}

func sampleLeads() []domain.SavedLead {
	savedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []domain.SavedLead{
		{
			Lead: domain.Lead{
				ID:                "2",
				DisplayName:       "Beta Bakery",
				Address:           "Mannerheimintie 2, Helsinki",
				PhoneNumber:       "+358401234567",
				WebsiteURL:        domain.WebsiteNone,
				OpportunityStatus: domain.OpportunityNoWebsite,
				DiscoveryMethod:   "provider",
			},
			PipelineStatus: pipelinedomain.StageContacted,
			Notes:          "asked for callback",
			SavedAt:        savedAt.Add(time.Hour),
		},
		{
			Lead: domain.Lead{
				ID:                "1",
				DisplayName:       "Acme Plumbing",
				Address:           "Aleksanterinkatu 1, Helsinki",
				WebsiteURL:        "https://acme.example",
				OpportunityStatus: domain.OpportunityNotMobile,
				DiscoveryMethod:   "provider",
			},
			PipelineStatus: pipelinedomain.StageNew,
			SavedAt:        savedAt,
		},
	}
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	want := sampleLeads()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("loaded %d leads, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("lead %d: id = %q, want %q (order must be preserved)", i, got[i].ID, want[i].ID)
		}
		if got[i] != want[i] {
			t.Errorf("lead %d: round-trip mismatch:\n got %+v\nwant %+v", i, got[i], want[i])
		}
	}
}

func TestRedisStore_MissingKeyIsEmpty(t *testing.T) {
	store, _ := newTestRedisStore(t)

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load on missing key: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %d leads", len(got))
	}
}

func TestRedisStore_CorruptPayload(t *testing.T) {
	store, mr := newTestRedisStore(t)

	mr.Set("agency_hunter:leads", "{broken")

	_, err := store.Load(context.Background())
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestDecode_RejectsUnknownVersion(t *testing.T) {
	_, err := Decode([]byte(`{"version": 99, "leads": []}`))
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt for unknown version, got %v", err)
	}
}

func TestEncode_EmptyCollection(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode(nil): %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %d leads", len(got))
	}
}
