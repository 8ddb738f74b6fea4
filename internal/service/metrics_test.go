package service

import (
	"testing"
	"time"

	"heater_dashboard/internal/models"
)

// gathered returns the value of every series of the named family keyed by the
// value of its first label.
func gathered(t *testing.T, m *Metrics, name string) map[string]float64 {
	t.Helper()
	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	out := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			label := ""
			if len(metric.GetLabel()) > 0 {
				label = metric.GetLabel()[0].GetValue()
			}
			switch {
			case metric.GetCounter() != nil:
				out[label] = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				out[label] = metric.GetGauge().GetValue()
			}
		}
	}
	return out
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()
	m.observeSync(resultOK, 20*time.Millisecond)
	m.observeSync(resultError, time.Second)
	m.observeSync(resultCoalesced, 0)
	m.observeCommand(resultRejected)
	m.observeChart(models.MetricHeater)

	syncs := gathered(t, m, "heater_dashboard_syncs_total")
	if syncs[resultOK] != 1 || syncs[resultError] != 1 || syncs[resultCoalesced] != 1 {
		t.Fatalf("unexpected sync counters %v", syncs)
	}
	if got := gathered(t, m, "heater_dashboard_commands_total"); got[resultRejected] != 1 {
		t.Fatalf("unexpected command counters %v", got)
	}
	if got := gathered(t, m, "heater_dashboard_chart_renders_total"); got["heater"] != 1 {
		t.Fatalf("unexpected chart counters %v", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.observeSync(resultOK, time.Second)
	m.observeCommand(resultOK)
	m.observeChart(models.MetricHeater)
	m.RegisterDevice(func() *models.ClientState { return nil })
}

func TestDeviceCollector(t *testing.T) {
	var state *models.ClientState
	m := NewMetrics()
	m.RegisterDevice(func() *models.ClientState { return state })

	if got := gathered(t, m, "heater_dashboard_device_temperature_celsius"); len(got) != 0 {
		t.Fatalf("expected no device series before first sync, got %v", got)
	}

	state = &models.ClientState{
		DeviceSnapshot: models.DeviceSnapshot{
			ID:          "esp-grey",
			Temperature: models.Temperature{Current: 92.5},
			Heater:      models.Heater{Active: true},
		},
		History: make([]models.HistoryRecord, 3),
	}

	checks := map[string]float64{
		"heater_dashboard_device_temperature_celsius": 92.5,
		"heater_dashboard_device_heater_active":       1,
		"heater_dashboard_device_history_records":     3,
	}
	for name, want := range checks {
		got := gathered(t, m, name)
		if got["esp-grey"] != want {
			t.Fatalf("%s = %v, want %v", name, got, want)
		}
	}
}
