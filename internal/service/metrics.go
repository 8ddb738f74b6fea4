package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"heater_dashboard/internal/models"
)

const metricsNamespace = "heater_dashboard"

// Sync and command outcomes used as label values.
const (
	resultOK        = "ok"
	resultError     = "error"
	resultRejected  = "rejected"
	resultDiscarded = "discarded"
	resultCoalesced = "coalesced"
)

// Metrics holds the dashboard's Prometheus instruments. A nil *Metrics is a
// valid no-op.
type Metrics struct {
	Registry *prometheus.Registry

	syncs        *prometheus.CounterVec
	syncDuration prometheus.Histogram
	commands     *prometheus.CounterVec
	charts       *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		syncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "syncs_total",
			Help:      "Status synchronizations by result.",
		}, []string{"result"}),
		syncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "sync_duration_seconds",
			Help:      "Duration of device status fetch and merge.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "commands_total",
			Help:      "Device commands by result.",
		}, []string{"result"}),
		charts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "chart_renders_total",
			Help:      "Chart renders by metric.",
		}, []string{"metric"}),
	}
	m.Registry.MustRegister(m.syncs, m.syncDuration, m.commands, m.charts)
	return m
}

// RegisterDevice exposes the latest device readings from state.
func (m *Metrics) RegisterDevice(state func() *models.ClientState) {
	if m == nil || state == nil {
		return
	}
	m.Registry.MustRegister(newDeviceCollector(state))
}

func (m *Metrics) observeSync(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.syncs.WithLabelValues(result).Inc()
	if result == resultOK || result == resultError {
		m.syncDuration.Observe(elapsed.Seconds())
	}
}

func (m *Metrics) observeCommand(result string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(result).Inc()
}

func (m *Metrics) observeChart(metric models.Metric) {
	if m == nil {
		return
	}
	m.charts.WithLabelValues(string(metric)).Inc()
}

type deviceCollector struct {
	state   func() *models.ClientState
	metrics []deviceMetric
}

type deviceMetric struct {
	desc    *prometheus.Desc
	extract func(s *models.ClientState) float64
}

func newDeviceCollector(state func() *models.ClientState) prometheus.Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "device", name),
			help,
			[]string{"device_id"},
			nil,
		)
	}
	return &deviceCollector{
		state: state,
		metrics: []deviceMetric{
			{desc("temperature_celsius", "Current temperature reported by the device."), func(s *models.ClientState) float64 { return s.Temperature.Current }},
			{desc("target_celsius", "Target temperature of the controller."), func(s *models.ClientState) float64 { return s.Temperature.Target }},
			{desc("pid_output", "Current PID output."), func(s *models.ClientState) float64 { return s.PID.Output }},
			{desc("heater_active", "1 when the heater relay is energized."), func(s *models.ClientState) float64 { return boolGauge(s.Heater.Active) }},
			{desc("history_records", "Records held in the merged history."), func(s *models.ClientState) float64 { return float64(len(s.History)) }},
			{desc("last_sync_timestamp_seconds", "Unix time of the last successful sync."), func(s *models.ClientState) float64 { return float64(s.FetchedAt.Unix()) }},
		},
	}
}

func (c *deviceCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, metric := range c.metrics {
		ch <- metric.desc
	}
}

func (c *deviceCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.state()
	if s == nil {
		return
	}
	for _, metric := range c.metrics {
		ch <- prometheus.MustNewConstMetric(metric.desc, prometheus.GaugeValue, metric.extract(s), s.ID)
	}
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
