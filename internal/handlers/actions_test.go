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

func TestActionsHandler_List(t *testing.T) {
	r := newTestRouter(&service.Service{Commands: &mockCommands{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/actions", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var out struct {
		Actions []string `json:"actions"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if len(out.Actions) != 6 {
		t.Fatalf("unexpected actions: %v", out.Actions)
	}
}

func TestActionsHandler_Dispatch(t *testing.T) {
	cmds := &mockCommands{res: models.CommandResult{Success: true, Message: "ok"}}
	r := newTestRouter(&service.Service{Commands: cmds})

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"low":95,"high":105.5}`)
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/actions/setting-apply-temperature", body))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if cmds.lastID != "setting-apply-temperature" || cmds.lastP.Low == nil || *cmds.lastP.High != 105.5 {
		t.Fatalf("unexpected dispatch: id=%q params=%+v", cmds.lastID, cmds.lastP)
	}

	// Empty body is allowed for parameterless buttons.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/actions/setting-save", nil))
	if w.Code != http.StatusOK || cmds.lastID != "setting-save" {
		t.Fatalf("status=%d id=%q", w.Code, cmds.lastID)
	}

	// Rejections are results, not HTTP errors.
	cmds.res = models.CommandResult{Success: false, Message: "invalid token"}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/actions/setting-restart", nil))
	var res models.CommandResult
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if w.Code != http.StatusOK || res.Success || res.Message != "invalid token" {
		t.Fatalf("status=%d result=%+v", w.Code, res)
	}
}

func TestActionsHandler_DispatchErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"bad_json", `{"low":`, nil, http.StatusBadRequest},
		{"unknown", ``, fmt.Errorf("%w: nope", ui.ErrUnknownAction), http.StatusNotFound},
		{"missing_param", `{"low":1}`, fmt.Errorf("%w: high", ui.ErrMissingParam), http.StatusBadRequest},
		{"no_state", ``, ui.ErrNoState, http.StatusServiceUnavailable},
		{"transport", ``, fmt.Errorf("%w: %w", service.ErrCommandTransport, errors.New("refused")), http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmds := &mockCommands{err: tc.err}
			r := newTestRouter(&service.Service{Commands: cmds})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/actions/overview-toggleEnable", strings.NewReader(tc.body)))
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, w.Code, w.Body.String())
			}
			if tc.name == "bad_json" && cmds.calls != 0 {
				t.Fatalf("dispatch must not run on a malformed body")
			}
		})
	}
}
