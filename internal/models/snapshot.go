package models

// HeaterMode is the heater relay mode reported by the device.
type HeaterMode string

const (
	HeaterOff  HeaterMode = "off"
	HeaterLow  HeaterMode = "low"
	HeaterHigh HeaterMode = "high"
)

// MetricStat is the current/min/max/average quadruple of one metric in one record.
type MetricStat struct {
	Current float64 `json:"current"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// HistoryRecord is one time-windowed aggregate keyed by its device-assigned sequence.
type HistoryRecord struct {
	Sequence    int64      `json:"sequence"`
	Samples     int64      `json:"samples"`
	Temperature MetricStat `json:"temperature"`
	Output      MetricStat `json:"output"`
	Heater      MetricStat `json:"heater"`
	Health      MetricStat `json:"health"`
}

type Temperature struct {
	Current float64 `json:"current"` // °C
	Target  float64 `json:"target"`  // °C
	Low     float64 `json:"low"`     // °C
	High    float64 `json:"high"`    // °C
}

type PID struct {
	Kp       float64 `json:"kp"`
	Ki       float64 `json:"ki"`
	Kd       float64 `json:"kd"`
	Input    float64 `json:"input"`
	Output   float64 `json:"output"`
	Setpoint float64 `json:"setpoint"`
}

type Heater struct {
	Mode   HeaterMode `json:"mode"`
	Active bool       `json:"active"`
}

// DeviceSnapshot holds the scalar fields of one fetched status payload.
type DeviceSnapshot struct {
	ID              string      `json:"id"`
	Token           int64       `json:"token"`
	IsDebug         bool        `json:"isDebug"`
	IsCountdownMode bool        `json:"isCountdownMode"`
	Temperature     Temperature `json:"temperature"`
	PID             PID         `json:"pid"`
	Heater          Heater      `json:"heater"`
	WindowMs        int64       `json:"window"` // duration of one history record
}
