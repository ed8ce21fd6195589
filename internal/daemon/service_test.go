package daemon

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/theirongolddev/staffplan/internal/document"
	"github.com/theirongolddev/staffplan/internal/model"
	"github.com/theirongolddev/staffplan/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestService(t *testing.T, cfg Config) (*Service, http.Handler) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "proposals.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	s := New(cfg, st)
	return s, s.Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body []byte, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{EventsBuffer: 2}, nil)

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestProposalLifecycle(t *testing.T) {
	s, h := newTestService(t, Config{})

	doc, err := document.Encode(model.DefaultProposal(time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	w := do(t, h, http.MethodPost, "/v1/proposals", doc, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d body=%s", w.Code, w.Body.String())
	}
	var res document.SaveResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal save: %v", err)
	}
	if res.ID == "" || res.Version != 1 {
		t.Fatalf("save result = %+v", res)
	}

	w = do(t, h, http.MethodGet, "/v1/proposals/"+res.ID, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d body=%s", w.Code, w.Body.String())
	}
	got, err := document.Decode(w.Body.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != res.ID || !got.Saved {
		t.Fatalf("loaded proposal id=%q saved=%v", got.ID, got.Saved)
	}

	w = do(t, h, http.MethodGet, "/v1/proposals", nil, nil)
	var entries []document.Entry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil || len(entries) != 1 {
		t.Fatalf("list = %s (%v)", w.Body.String(), err)
	}

	w = do(t, h, http.MethodGet, "/v1/proposals/"+res.ID+"/versions", nil, nil)
	var versions []document.Version
	if err := json.Unmarshal(w.Body.Bytes(), &versions); err != nil || len(versions) != 1 {
		t.Fatalf("versions = %s (%v)", w.Body.String(), err)
	}

	w = do(t, h, http.MethodDelete, "/v1/proposals/"+res.ID, nil, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = do(t, h, http.MethodGet, "/v1/proposals/"+res.ID, nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", w.Code)
	}

	events := s.recentEvents()
	if len(events) != 2 || events[0].Type != EventSaved || events[1].Type != EventDeleted {
		t.Fatalf("events = %+v, want saved then deleted", events)
	}
	if st := s.snapshotStatus(t.Context()); st.Saves != 1 || st.Proposals != 0 {
		t.Fatalf("status = %+v", st)
	}
}

func TestProjectionEndpoint(t *testing.T) {
	_, h := newTestService(t, Config{})

	p := model.Proposal{
		Settings:     model.GlobalSettings{LaborCostMultiplier: 1.25, OverheadPercentage: 15, WeeksInProposalPeriod: 40},
		Compensation: []model.CompensationEntry{{Role: "Tech", Kind: model.Hourly, Rate: 50}},
		Clients: []model.ClientScenario{
			{Client: "A", Roles: []model.RoleScenario{{Role: "Tech", BillingRate: 100, MinHours: 10, MaxHours: 20}}},
		},
	}
	doc, err := document.Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	w := do(t, h, http.MethodPost, "/v1/projections?view=A", doc, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var proj model.Projection
	if err := json.Unmarshal(w.Body.Bytes(), &proj); err != nil {
		t.Fatalf("unmarshal: %v body=%s", err, w.Body.String())
	}
	if proj.View != "A" {
		t.Fatalf("view = %q, want A", proj.View)
	}
	if math.Abs(proj.Summary.WorstCase.YearlyOperatingProfit-9000) > 1e-9 {
		t.Fatalf("worst profit = %v, want 9000", proj.Summary.WorstCase.YearlyOperatingProfit)
	}
	if proj.Breakdown.EstimatedOverhead != (model.Range{6000, 12000}) {
		t.Fatalf("overhead = %v, want [6000 12000]", proj.Breakdown.EstimatedOverhead)
	}

	w = do(t, h, http.MethodPost, "/v1/projections", []byte("{not json"), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad body status = %d, want 400", w.Code)
	}
}

func TestAuthorizeToken(t *testing.T) {
	_, h := newTestService(t, Config{Token: "secret"})

	if w := do(t, h, http.MethodGet, "/v1/proposals", nil, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token status = %d, want 401", w.Code)
	}
	if w := do(t, h, http.MethodGet, "/v1/proposals", nil, map[string]string{"Authorization": "Bearer secret"}); w.Code != http.StatusOK {
		t.Fatalf("with token status = %d, want 200", w.Code)
	}
	if w := do(t, h, http.MethodGet, "/healthz", nil, nil); w.Code != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200 without token", w.Code)
	}

	for _, header := range []string{"secret", "Bearer secre", "Bearer secrets", "bearer secret", "Basic secret"} {
		w := do(t, h, http.MethodGet, "/v1/proposals", nil, map[string]string{"Authorization": header})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("Authorization %q status = %d, want 401", header, w.Code)
		}
	}
}

func TestOversizedBodyRejected(t *testing.T) {
	_, h := newTestService(t, Config{})

	body := bytes.Repeat([]byte(" "), maxBodySize+1)
	w := do(t, h, http.MethodPost, "/v1/projections", body, nil)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", w.Code)
	}
	if !strings.Contains(w.Body.String(), "exceeds") {
		t.Fatalf("body = %s, want a size error", w.Body.String())
	}
}
