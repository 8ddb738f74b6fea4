package ui

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"heater_dashboard/internal/models"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrMissingParam  = errors.New("missing action parameter")
)

// Params carries the dialog inputs an action may need.
type Params struct {
	Low  *float64 `json:"low,omitempty"`
	High *float64 `json:"high,omitempty"`
	Kp   *float64 `json:"kp,omitempty"`
	Ki   *float64 `json:"ki,omitempty"`
	Kd   *float64 `json:"kd,omitempty"`
}

// Action turns the current state and inputs into a device command line.
type Action func(state *models.ClientState, p Params) (string, error)

// Registry maps button ids to actions.
type Registry struct {
	actions map[string]Action
}

func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Action)}
}

// DefaultRegistry holds the overview and settings dialog buttons.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("overview-toggleEnable", toggleEnable)
	r.Register("setting-apply-temperature", applyTemperature)
	r.Register("setting-apply-pid", applyPID)
	r.Register("setting-toggle-countdown", toggleCountdown)
	r.Register("setting-save", constant("SAVE"))
	r.Register("setting-restart", constant("RESTART"))
	return r
}

func (r *Registry) Register(id string, a Action) { r.actions[id] = a }

// IDs lists registered button ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.actions))
	for id := range r.actions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resolve builds the command for button id. Every action needs a state
// because commands are signed with its token.
func (r *Registry) Resolve(id string, state *models.ClientState, p Params) (string, error) {
	a, ok := r.actions[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, id)
	}
	if state == nil {
		return "", ErrNoState
	}
	return a(state, p)
}

func toggleEnable(s *models.ClientState, _ Params) (string, error) {
	return "SET heater.enabled " + strconv.FormatBool(s.Heater.Mode == models.HeaterOff), nil
}

func applyTemperature(_ *models.ClientState, p Params) (string, error) {
	if p.Low == nil || p.High == nil {
		return "", fmt.Errorf("%w: low and high are required", ErrMissingParam)
	}
	return "SET heater " + number(*p.Low) + " " + number(*p.High), nil
}

func applyPID(_ *models.ClientState, p Params) (string, error) {
	if p.Kp == nil || p.Ki == nil || p.Kd == nil {
		return "", fmt.Errorf("%w: kp, ki and kd are required", ErrMissingParam)
	}
	return "SET pid " + number(*p.Kp) + " " + number(*p.Ki) + " " + number(*p.Kd), nil
}

func toggleCountdown(s *models.ClientState, _ Params) (string, error) {
	return "SET countdown_mode " + strconv.FormatBool(!s.IsCountdownMode), nil
}

func constant(cmd string) Action {
	return func(*models.ClientState, Params) (string, error) { return cmd, nil }
}
