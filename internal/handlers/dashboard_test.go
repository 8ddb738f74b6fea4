package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"heater_dashboard/internal/models"
	"heater_dashboard/internal/service"
	"heater_dashboard/internal/ui"
)

func TestStatusHandler_NoStateAndState(t *testing.T) {
	dash := newMockDashboard(nil)
	dash.lastErr = errors.New("dial tcp: refused")
	r := newTestRouter(&service.Service{Dashboard: dash})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without state, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "dial tcp: refused") {
		t.Fatalf("expected last_error in body, got %s", w.Body.String())
	}

	dash.state = testState()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var st models.ClientState
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if st.ID != "esp-grey" || len(st.History) != 1 || st.History[0].Sequence != 3 {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestRefreshHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"in_flight", service.ErrSyncInFlight, http.StatusConflict},
		{"discarded", service.ErrStaleResult, http.StatusConflict},
		{"device_down", errors.New("timeout"), http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dash := newMockDashboard(nil)
			dash.refreshErr = tc.err
			if tc.err == nil {
				dash.refreshSt = testState()
			}
			r := newTestRouter(&service.Service{Dashboard: dash})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/status/refresh", nil))
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestViewHandler(t *testing.T) {
	dash := newMockDashboard(nil)
	r := newTestRouter(&service.Service{Dashboard: dash})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/view", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without state, got %d", w.Code)
	}

	dash.state = testState()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/view?dialog=settings", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var view ui.View
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if view.Name != ui.ViewSettings || len(view.Fields) == 0 {
		t.Fatalf("unexpected view: %+v", view)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/view?dialog=bogus", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown dialog, got %d", w.Code)
	}
}

func TestFocusHandler(t *testing.T) {
	dash := newMockDashboard(testState())
	r := newTestRouter(&service.Service{Dashboard: dash})

	for _, body := range []string{`{}`, `not json`} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/focus", strings.NewReader(body)))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", body, w.Code)
		}
	}

	for _, active := range []bool{false, true} {
		w := httptest.NewRecorder()
		body := strings.NewReader(fmt.Sprintf(`{"active":%t}`, active))
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/focus", body))
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		var out map[string]bool
		_ = json.Unmarshal(w.Body.Bytes(), &out)
		if out["active"] != active {
			t.Fatalf("expected active=%t, got %+v", active, out)
		}
	}
	if got := dash.focus(); len(got) != 2 || got[0] || !got[1] {
		t.Fatalf("unexpected focus calls: %v", got)
	}
}

func TestHealthHandler(t *testing.T) {
	dash := newMockDashboard(nil)
	r := newTestRouter(&service.Service{Dashboard: dash})

	read := func() map[string]interface{} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("health status=%d", w.Code)
		}
		out := map[string]interface{}{}
		_ = json.Unmarshal(w.Body.Bytes(), &out)
		return out
	}

	if out := read(); out["status"] != statusWaiting {
		t.Fatalf("expected waiting before first sync, got %+v", out)
	}
	dash.state = testState()
	if out := read(); out["status"] != statusOK || out["active"] != true || out["failures"] != 0.0 {
		t.Fatalf("expected ok and active, got %+v", out)
	}

	dash.failures = 4
	dash.lastErr = errors.New("timeout")
	if out := read(); out["failures"] != 4.0 || out["last_error"] != "timeout" {
		t.Fatalf("expected failure streak, got %+v", out)
	}
}

func TestStatusHandler_WaitingReportsFailures(t *testing.T) {
	dash := newMockDashboard(nil)
	dash.failures = 2
	dash.lastErr = errors.New("connection refused")
	r := newTestRouter(&service.Service{Dashboard: dash})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	out := map[string]interface{}{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out["error"] != errNoState || out["failures"] != 2.0 || out["last_error"] != "connection refused" {
		t.Fatalf("unexpected body %+v", out)
	}
}
