package ui

import (
	"errors"
	"strconv"

	"heater_dashboard/internal/models"
)

var ErrNoState = errors.New("no device state yet")

// DisplaySink selects how a field's text reaches its control. The choice is
// made once per binding instead of inspecting the control on every update.
type DisplaySink string

const (
	// TextField controls display text content.
	TextField DisplaySink = "text"
	// ValueField controls are editable inputs holding a value.
	ValueField DisplaySink = "value"
)

// Field is one control update.
type Field struct {
	ID    string      `json:"id"`
	Sink  DisplaySink `json:"sink"`
	Text  string      `json:"text,omitempty"`
	Value string      `json:"value,omitempty"`
}

// Write stores text in the slot of f the sink targets.
func (s DisplaySink) Write(f *Field, text string) {
	f.Sink = s
	if s == ValueField {
		f.Value = text
		return
	}
	f.Text = text
}

// Binding ties a control id to a formatter of the current state.
type Binding struct {
	ID     string
	Sink   DisplaySink
	Format func(*models.ClientState) string
}

// View is a named set of control updates.
type View struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

const (
	ViewOverview = "overview"
	ViewSettings = "settings"
)

// Build formats every binding against state.
func Build(name string, bindings []Binding, state *models.ClientState) (View, error) {
	if state == nil {
		return View{}, ErrNoState
	}
	view := View{Name: name, Fields: make([]Field, 0, len(bindings))}
	for _, b := range bindings {
		f := Field{ID: b.ID}
		b.Sink.Write(&f, b.Format(state))
		view.Fields = append(view.Fields, f)
	}
	return view, nil
}

// BuildNamed builds the overview or settings view.
func BuildNamed(name string, state *models.ClientState) (View, error) {
	switch name {
	case ViewOverview, "":
		return Build(ViewOverview, OverviewBindings, state)
	case ViewSettings:
		return Build(ViewSettings, SettingsBindings, state)
	}
	return View{}, errors.New("unknown view " + strconv.Quote(name))
}

// OverviewBindings are the always visible status controls.
var OverviewBindings = []Binding{
	text("overview-temperature", func(s *models.ClientState) string { return fixed(s.Temperature.Current, 3) }),
	text("overview-mode", func(s *models.ClientState) string { return string(s.Heater.Mode) }),
	text("overview-toggleEnable", func(s *models.ClientState) string {
		if s.Heater.Mode == models.HeaterOff {
			return "Enable"
		}
		return "Disable"
	}),
	text("temperature-current", func(s *models.ClientState) string { return number(s.Temperature.Current) }),
	text("temperature-target", func(s *models.ClientState) string { return number(s.Temperature.Target) }),
	text("temperature-low", func(s *models.ClientState) string { return fixed(s.Temperature.Low, 1) }),
	text("temperature-high", func(s *models.ClientState) string { return fixed(s.Temperature.High, 1) }),
	text("pid-kp", func(s *models.ClientState) string { return fixed(s.PID.Kp, 3) }),
	text("pid-ki", func(s *models.ClientState) string { return fixed(s.PID.Ki, 3) }),
	text("pid-kd", func(s *models.ClientState) string { return fixed(s.PID.Kd, 3) }),
	text("pid-input", func(s *models.ClientState) string { return fixed(s.PID.Input, 3) }),
	text("pid-output", func(s *models.ClientState) string { return fixed(s.PID.Output, 3) }),
	text("pid-setpoint", func(s *models.ClientState) string { return fixed(s.PID.Setpoint, 3) }),
	text("heater-mode", func(s *models.ClientState) string { return string(s.Heater.Mode) }),
	text("heater-active", func(s *models.ClientState) string { return strconv.FormatBool(s.Heater.Active) }),
}

// SettingsBindings fill the settings dialog when it opens.
var SettingsBindings = []Binding{
	value("setting-temperature-low", func(s *models.ClientState) string { return number(s.Temperature.Low) }),
	value("setting-temperature-high", func(s *models.ClientState) string { return number(s.Temperature.High) }),
	value("setting-pid-kp", func(s *models.ClientState) string { return number(s.PID.Kp) }),
	value("setting-pid-ki", func(s *models.ClientState) string { return number(s.PID.Ki) }),
	value("setting-pid-kd", func(s *models.ClientState) string { return number(s.PID.Kd) }),
	text("setting-toggle-countdown", func(s *models.ClientState) string { return countdownLabel(s.IsCountdownMode) }),
}

func countdownLabel(enabled bool) string {
	if enabled {
		return "Disable Countdown"
	}
	return "Enable Countdown"
}

func text(id string, f func(*models.ClientState) string) Binding {
	return Binding{ID: id, Sink: TextField, Format: f}
}

func value(id string, f func(*models.ClientState) string) Binding {
	return Binding{ID: id, Sink: ValueField, Format: f}
}

func fixed(v float64, digits int) string { return strconv.FormatFloat(v, 'f', digits, 64) }

func number(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
