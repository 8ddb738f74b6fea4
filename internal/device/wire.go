package device

import "heater_dashboard/internal/models"

// RawStatus is the packed GET /status body. Metric arrays are flat
// (current, min, max, average) 4-tuples indexed by record position.
type RawStatus struct {
	ID              string             `json:"id"`
	Token           int64              `json:"token"`
	IsDebug         bool               `json:"isDebug"`
	IsCountdownMode bool               `json:"isCountdownMode"`
	Temperature     models.Temperature `json:"temperature"`
	PID             models.PID         `json:"pid"`
	Heater          models.Heater      `json:"heater"`
	Window          int64              `json:"window,omitempty"`
	History         RawHistory         `json:"history"`
}

type RawHistory struct {
	// firmware builds emit the window inside the history object
	Window      int64     `json:"window,omitempty"`
	Temperature []float64 `json:"temperature"`
	Output      []float64 `json:"output"`
	Heater      []float64 `json:"heater"`
	Health      []float64 `json:"health"`
	Samples     []int64   `json:"samples"`
	Sequence    []int64   `json:"sequence"`
}
