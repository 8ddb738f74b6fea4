package models

import "time"

// ClientState is the merged view of the device: the latest snapshot plus a
// bounded, sequence-unique history ordered newest first.
type ClientState struct {
	DeviceSnapshot
	History   []HistoryRecord `json:"history"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Metric selects one of the four per-record statistics.
type Metric string

const (
	MetricTemperature Metric = "temperature"
	MetricOutput      Metric = "output"
	MetricHeater      Metric = "heater"
	MetricHealth      Metric = "health"
)

// Metrics lists every metric in display order.
var Metrics = []Metric{MetricTemperature, MetricOutput, MetricHeater, MetricHealth}

// Valid reports whether m names a known metric.
func (m Metric) Valid() bool {
	switch m {
	case MetricTemperature, MetricOutput, MetricHeater, MetricHealth:
		return true
	}
	return false
}

// Stat returns the statistic of metric m; unknown metrics yield a zero value.
func (r HistoryRecord) Stat(m Metric) MetricStat {
	switch m {
	case MetricTemperature:
		return r.Temperature
	case MetricOutput:
		return r.Output
	case MetricHeater:
		return r.Heater
	case MetricHealth:
		return r.Health
	}
	return MetricStat{}
}
