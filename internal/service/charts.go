package service

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"heater_dashboard/internal/chart"
	"heater_dashboard/internal/models"
	"heater_dashboard/internal/ui"
)

var (
	ErrUnknownMetric  = errors.New("unknown metric")
	ErrInvalidOptions = errors.New("invalid chart options")
)

// Chart size and window limits accepted from callers.
const (
	MinChartSize  = 64
	MaxChartSize  = 4096
	MaxChartItems = 1000
)

// ChartDefaults apply to zero ChartOptions fields.
type ChartDefaults struct {
	Width       int
	Height      int
	MaxItems    int
	LabelStride int
}

// chartSlot is one renderer with the surface it exclusively owns.
type chartSlot struct {
	mu       sync.Mutex
	host     *chart.FixedHost
	surface  *chart.RasterSurface
	renderer *chart.Renderer
}

type ChartService struct {
	state    StateSource
	defaults ChartDefaults
	metrics  *Metrics
	slots    map[models.Metric]*chartSlot
}

func NewChartService(state StateSource, axes map[models.Metric]chart.AxisConfig, defaults ChartDefaults, metrics *Metrics) (*ChartService, error) {
	if defaults.MaxItems <= 0 {
		defaults.MaxItems = chart.DefaultMaxItems
	}
	if defaults.LabelStride <= 0 {
		defaults.LabelStride = chart.DefaultLabelStride
	}
	s := &ChartService{
		state:    state,
		defaults: defaults,
		metrics:  metrics,
		slots:    make(map[models.Metric]*chartSlot, len(axes)),
	}
	for _, m := range models.Metrics {
		axis, ok := axes[m]
		if !ok {
			return nil, fmt.Errorf("%w: no axis for %s", ErrUnknownMetric, m)
		}
		host := &chart.FixedHost{Width: defaults.Width, Height: defaults.Height}
		surface, err := chart.NewRasterSurface(defaults.Width, defaults.Height)
		if err != nil {
			return nil, err
		}
		r, err := chart.NewRenderer(surface, host, m, axis)
		if err != nil {
			return nil, err
		}
		s.slots[m] = &chartSlot{host: host, surface: surface, renderer: r}
	}
	return s, nil
}

// Resolve applies defaults to opts and validates the result.
func (s *ChartService) Resolve(opts ChartOptions) (ChartOptions, error) {
	if opts.Width == 0 {
		opts.Width = s.defaults.Width
	}
	if opts.Height == 0 {
		opts.Height = s.defaults.Height
	}
	if opts.MaxItems == 0 {
		opts.MaxItems = s.defaults.MaxItems
	}
	if opts.LabelStride <= 0 {
		opts.LabelStride = s.defaults.LabelStride
	}
	switch {
	case opts.Width < MinChartSize || opts.Width > MaxChartSize,
		opts.Height < MinChartSize || opts.Height > MaxChartSize:
		return opts, fmt.Errorf("%w: size must be within %d..%d", ErrInvalidOptions, MinChartSize, MaxChartSize)
	case opts.MaxItems < 1 || opts.MaxItems > MaxChartItems:
		return opts, fmt.Errorf("%w: items must be within 1..%d", ErrInvalidOptions, MaxChartItems)
	}
	return opts, nil
}

// RenderPNG draws the latest state of metric and encodes it to w.
func (s *ChartService) RenderPNG(metric models.Metric, opts ChartOptions, w io.Writer) error {
	slot, ok := s.slots[metric]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	opts, err := s.Resolve(opts)
	if err != nil {
		return err
	}
	state := s.state.State()
	if state == nil {
		return ui.ErrNoState
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()

	slot.host.Width, slot.host.Height = opts.Width, opts.Height
	slot.renderer.Render(state, opts.MaxItems, opts.LabelStride)
	s.metrics.observeChart(slot.renderer.Metric())
	return slot.surface.EncodePNG(w)
}

// Axis returns the axis configured for metric.
func (s *ChartService) Axis(metric models.Metric) (chart.AxisConfig, bool) {
	slot, ok := s.slots[metric]
	if !ok {
		return chart.AxisConfig{}, false
	}
	return slot.renderer.Axis(), true
}
