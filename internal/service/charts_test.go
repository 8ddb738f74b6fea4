package service

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"heater_dashboard/internal/chart"
	"heater_dashboard/internal/models"
	"heater_dashboard/internal/ui"
)

func testAxes() map[models.Metric]chart.AxisConfig {
	c, _ := chart.ParseColor("ff0000")
	return map[models.Metric]chart.AxisConfig{
		models.MetricTemperature: {MinValue: 30, MaxValue: 150, GridStep: 10, Unit: "℃", Color: c},
		models.MetricOutput:      {MinValue: -5, MaxValue: 200, GridStep: 50, Color: c},
		models.MetricHeater:      {MinValue: 0, MaxValue: 1, GridStep: 0.25, Color: c},
		models.MetricHealth:      {MinValue: 0, MaxValue: 50, GridStep: 10, Unit: "ms", Color: c},
	}
}

func chartState() *models.ClientState {
	st := models.MetricStat{Current: 80, Min: 70, Max: 90, Average: 81}
	return &models.ClientState{
		DeviceSnapshot: models.DeviceSnapshot{WindowMs: 1000},
		History: []models.HistoryRecord{
			{Sequence: 2, Temperature: st, Output: st, Heater: st, Health: st},
			{Sequence: 1, Temperature: st, Output: st, Heater: st, Health: st},
		},
	}
}

func TestChartService_RenderPNG(t *testing.T) {
	svc, err := NewChartService(staticState{chartState()}, testAxes(), ChartDefaults{Width: 320, Height: 160}, NewMetrics())
	if err != nil {
		t.Fatalf("NewChartService: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.RenderPNG(models.MetricTemperature, ChartOptions{}, &buf); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 160 {
		t.Fatalf("unexpected size %v", b)
	}

	buf.Reset()
	if err := svc.RenderPNG(models.MetricHealth, ChartOptions{Width: 200, Height: 100, MaxItems: 5, LabelStride: 2}, &buf); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err = png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("unexpected size %v", b)
	}
}

func TestChartService_Errors(t *testing.T) {
	svc, err := NewChartService(staticState{nil}, testAxes(), ChartDefaults{Width: 320, Height: 160}, nil)
	if err != nil {
		t.Fatalf("NewChartService: %v", err)
	}
	var buf bytes.Buffer

	if err := svc.RenderPNG(models.MetricTemperature, ChartOptions{}, &buf); !errors.Is(err, ui.ErrNoState) {
		t.Fatalf("expected ErrNoState, got %v", err)
	}
	if err := svc.RenderPNG("voltage", ChartOptions{}, &buf); !errors.Is(err, ErrUnknownMetric) {
		t.Fatalf("expected ErrUnknownMetric, got %v", err)
	}
	if err := svc.RenderPNG(models.MetricTemperature, ChartOptions{Width: 10}, &buf); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
	if err := svc.RenderPNG(models.MetricTemperature, ChartOptions{MaxItems: -1}, &buf); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatal("nothing should be written on error")
	}
}

func TestNewChartService_RequiresEveryAxis(t *testing.T) {
	axes := testAxes()
	delete(axes, models.MetricHeater)
	if _, err := NewChartService(staticState{nil}, axes, ChartDefaults{Width: 320, Height: 160}, nil); !errors.Is(err, ErrUnknownMetric) {
		t.Fatalf("expected missing axis error, got %v", err)
	}
}

func TestChartService_ResolveDefaults(t *testing.T) {
	svc, err := NewChartService(staticState{nil}, testAxes(), ChartDefaults{Width: 320, Height: 160}, nil)
	if err != nil {
		t.Fatalf("NewChartService: %v", err)
	}
	got, err := svc.Resolve(ChartOptions{LabelStride: -3})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := ChartOptions{Width: 320, Height: 160, MaxItems: chart.DefaultMaxItems, LabelStride: chart.DefaultLabelStride}
	if got != want {
		t.Fatalf("Resolve = %+v, want %+v", got, want)
	}
}
