package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agencyhunter_backend/platform/apperr"
)

type clientConfig struct {
	baseURL string
}

func (c clientConfig) GetDiscoveryBaseURL() string        { return c.baseURL }
func (c clientConfig) GetDiscoveryAPIKey() string         { return "test-key" }
func (c clientConfig) GetDiscoveryTimeout() time.Duration { return time.Second }
func (c clientConfig) GetDiscoveryRatePerSecond() float64 { return 100 }
func (c clientConfig) GetDiscoveryBurst() int             { return 10 }

func TestClientSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		if got := r.URL.Query().Get("keyword"); got != "plumbing" {
			t.Errorf("keyword = %q, want plumbing", got)
		}
		if got := r.URL.Query().Get("city"); got != "Helsinki" {
			t.Errorf("city = %q, want Helsinki", got)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("X-Api-Key = %q, want test-key", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":4402,"name":"Acme Plumbing","address":"12 Main St","website":"","opportunity":"no website"}]`))
	}))
	defer srv.Close()

	client := NewClient(clientConfig{baseURL: srv.URL})
	results, err := client.Search(context.Background(), "plumbing", "Helsinki")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != 4402 || results[0].Name != "Acme Plumbing" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestClientSearchOmitsEmptyCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, present := r.URL.Query()["city"]; present {
			t.Error("city parameter should be omitted when empty")
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(clientConfig{baseURL: srv.URL})
	if _, err := client.Search(context.Background(), "plumbing", ""); err != nil {
		t.Fatalf("Search: %v", err)
	}
}

func TestClientSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(clientConfig{baseURL: srv.URL})
	if _, err := client.Search(context.Background(), "plumbing", ""); !apperr.IsUnavailable(err) {
		t.Fatalf("err = %v, want unavailable", err)
	}
}

func TestClientSearchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewClient(clientConfig{baseURL: srv.URL})
	if _, err := client.Search(context.Background(), "plumbing", ""); !apperr.IsUnavailable(err) {
		t.Fatalf("err = %v, want unavailable", err)
	}
}
