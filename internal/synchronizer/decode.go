package synchronizer

import (
	"fmt"

	"heater_dashboard/internal/device"
	"heater_dashboard/internal/models"
)

// DefaultWindowMs applies when the device omits the record window.
const DefaultWindowMs = 1000

// statWidth is the number of values per record in a packed metric array.
const statWidth = 4

// Decode expands the packed status into a snapshot and its records, in the
// order the device sent them (newest first).
func Decode(raw device.RawStatus) (models.DeviceSnapshot, []models.HistoryRecord, error) {
	snapshot := models.DeviceSnapshot{
		ID:              raw.ID,
		Token:           raw.Token,
		IsDebug:         raw.IsDebug,
		IsCountdownMode: raw.IsCountdownMode,
		Temperature:     raw.Temperature,
		PID:             raw.PID,
		Heater:          raw.Heater,
		WindowMs:        windowOf(raw),
	}

	h := raw.History
	count := len(h.Samples)
	if len(h.Sequence) != count {
		return models.DeviceSnapshot{}, nil, fmt.Errorf("%w: %d sequence entries for %d records",
			device.ErrMalformedResponse, len(h.Sequence), count)
	}
	for _, m := range []struct {
		name   string
		values []float64
	}{
		{"temperature", h.Temperature},
		{"output", h.Output},
		{"heater", h.Heater},
		{"health", h.Health},
	} {
		if len(m.values) != count*statWidth {
			return models.DeviceSnapshot{}, nil, fmt.Errorf("%w: %s has %d values, want %d",
				device.ErrMalformedResponse, m.name, len(m.values), count*statWidth)
		}
	}

	records := make([]models.HistoryRecord, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, models.HistoryRecord{
			Sequence:    h.Sequence[i],
			Samples:     h.Samples[i],
			Temperature: statAt(h.Temperature, i),
			Output:      statAt(h.Output, i),
			Heater:      statAt(h.Heater, i),
			Health:      statAt(h.Health, i),
		})
	}
	return snapshot, records, nil
}

func statAt(values []float64, index int) models.MetricStat {
	offset := index * statWidth
	return models.MetricStat{
		Current: values[offset],
		Min:     values[offset+1],
		Max:     values[offset+2],
		Average: values[offset+3],
	}
}

// windowOf prefers the top-level window, then the one nested in history.
func windowOf(raw device.RawStatus) int64 {
	switch {
	case raw.Window > 0:
		return raw.Window
	case raw.History.Window > 0:
		return raw.History.Window
	default:
		return DefaultWindowMs
	}
}
