package service

import "time"

// LogFilter supports notice filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "SYNC_ERROR", "SYNC_RESUMED", "COMMAND", "COMMAND_ERROR", "FOCUS"
}

// ChartOptions selects the size and window of a rendered chart. Zero fields
// take the configured defaults.
type ChartOptions struct {
	Width       int
	Height      int
	MaxItems    int
	LabelStride int
}
