package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agencyhunter_backend/internal/leads/domain"
	"agencyhunter_backend/internal/leads/snapshot"
	"agencyhunter_backend/internal/leads/store"
	"agencyhunter_backend/platform/logger"
	"agencyhunter_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := store.New(context.Background(), snapshot.NewMemoryStore(), domain.NewResolver(false), nil, logger.New("test"), "FI")
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}

	engine := gin.New()
	New(svc, validator.New()).RegisterRoutes(engine.Group("/leads"))
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestPromoteAndList(t *testing.T) {
	engine := newTestRouter(t)

	rec := doRequest(t, engine, http.MethodPost, "/leads",
		`{"id":"4402","displayName":"Acme Plumbing","opportunityStatus":"no website"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body)
	}

	rec = doRequest(t, engine, http.MethodGet, "/leads", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}

	var listed []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0]["displayName"] != "Acme Plumbing" {
		t.Fatalf("unexpected list: %s", rec.Body)
	}
	if listed[0]["pipelineStatus"] != "new" {
		t.Fatalf("pipelineStatus = %v, want new", listed[0]["pipelineStatus"])
	}
}

func TestPromoteDuplicateConflicts(t *testing.T) {
	engine := newTestRouter(t)

	body := `{"id":"4402","displayName":"Acme Plumbing","opportunityStatus":"no website"}`
	if rec := doRequest(t, engine, http.MethodPost, "/leads", body); rec.Code != http.StatusCreated {
		t.Fatalf("first promote status = %d, want 201", rec.Code)
	}

	rec := doRequest(t, engine, http.MethodPost, "/leads", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate promote status = %d, want 409; body: %s", rec.Code, rec.Body)
	}
}

func TestPromoteValidation(t *testing.T) {
	engine := newTestRouter(t)

	rec := doRequest(t, engine, http.MethodPost, "/leads", `{"opportunityStatus":"no website"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = doRequest(t, engine, http.MethodPost, "/leads",
		`{"displayName":"Acme Plumbing","opportunityStatus":"glorious"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown opportunity status = %d, want 400", rec.Code)
	}
}

func TestUpdateStatusEndpoint(t *testing.T) {
	engine := newTestRouter(t)

	doRequest(t, engine, http.MethodPost, "/leads",
		`{"id":"4402","displayName":"Acme Plumbing","opportunityStatus":"no website"}`)

	rec := doRequest(t, engine, http.MethodPatch, "/leads/4402/status", `{"status":"Deal"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}

	var updated map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Legacy vocabulary maps onto the board stage.
	if updated["pipelineStatus"] != "won" {
		t.Fatalf("pipelineStatus = %v, want won", updated["pipelineStatus"])
	}

	rec = doRequest(t, engine, http.MethodPatch, "/leads/missing/status", `{"status":"won"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing lead status = %d, want 404", rec.Code)
	}
}

func TestDeleteFlow(t *testing.T) {
	engine := newTestRouter(t)

	doRequest(t, engine, http.MethodPost, "/leads",
		`{"id":"4402","displayName":"Acme Plumbing","opportunityStatus":"no website"}`)

	rec := doRequest(t, engine, http.MethodGet, "/leads/4402/delete-request", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete-request status = %d, want 200", rec.Code)
	}
	var preview map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &preview); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if preview["confirmationRequired"] != true {
		t.Fatalf("confirmationRequired = %v, want true", preview["confirmationRequired"])
	}

	// The preview alone must not remove anything.
	if rec := doRequest(t, engine, http.MethodGet, "/leads", ""); !strings.Contains(rec.Body.String(), "Acme Plumbing") {
		t.Fatal("lead removed by delete-request")
	}

	if rec := doRequest(t, engine, http.MethodDelete, "/leads/4402", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	if rec := doRequest(t, engine, http.MethodGet, "/leads", ""); strings.Contains(rec.Body.String(), "Acme Plumbing") {
		t.Fatal("lead still present after confirmed delete")
	}
}
