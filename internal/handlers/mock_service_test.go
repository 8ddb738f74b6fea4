package handlers

import (
	"context"
	"io"
	"sync"
	"time"

	"heater_dashboard/internal/models"
	"heater_dashboard/internal/service"
	"heater_dashboard/internal/ui"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockDashboard struct {
	mu sync.Mutex

	state      *models.ClientState
	lastErr    error
	refreshSt  *models.ClientState
	refreshErr error
	active     bool
	failures   int
	focusCalls []bool

	states chan *models.ClientState
	syncs  chan service.SyncStatus
}

func newMockDashboard(st *models.ClientState) *mockDashboard {
	return &mockDashboard{
		state:  st,
		active: true,
		states: make(chan *models.ClientState, 4),
		syncs:  make(chan service.SyncStatus, 4),
	}
}

func (m *mockDashboard) State() *models.ClientState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *mockDashboard) Refresh(ctx context.Context) (*models.ClientState, error) {
	return m.refreshSt, m.refreshErr
}

func (m *mockDashboard) SetActive(ctx context.Context, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = active
	m.focusCalls = append(m.focusCalls, active)
}

func (m *mockDashboard) focus() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]bool(nil), m.focusCalls...)
}

func (m *mockDashboard) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *mockDashboard) LastError() error { return m.lastErr }

func (m *mockDashboard) Failures() int { return m.failures }

func (m *mockDashboard) Subscribe() (<-chan *models.ClientState, func()) {
	return m.states, func() {}
}

func (m *mockDashboard) SubscribeSync() (<-chan service.SyncStatus, func()) {
	return m.syncs, func() {}
}

type mockCommands struct {
	res    models.CommandResult
	err    error
	lastID string
	lastP  ui.Params
	calls  int
}

func (m *mockCommands) Dispatch(ctx context.Context, id string, p ui.Params) (models.CommandResult, error) {
	m.calls++
	m.lastID = id
	m.lastP = p
	return m.res, m.err
}

func (m *mockCommands) Actions() []string { return ui.DefaultRegistry().IDs() }

type mockCharts struct {
	png        []byte
	err        error
	lastMetric models.Metric
	lastOpts   service.ChartOptions
}

func (m *mockCharts) RenderPNG(metric models.Metric, opts service.ChartOptions, w io.Writer) error {
	m.lastMetric = metric
	m.lastOpts = opts
	if m.err != nil {
		return m.err
	}
	_, err := w.Write(m.png)
	return err
}

type mockEventLog struct {
	resp     []models.DashboardEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
	calls    int

	notices chan models.DashboardEvent
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.DashboardEvent, error) {
	m.calls++
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

func (m *mockEventLog) SubscribeNotices() (<-chan models.DashboardEvent, func()) {
	if m.notices == nil {
		m.notices = make(chan models.DashboardEvent, 4)
	}
	return m.notices, func() {}
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func testState() *models.ClientState {
	return &models.ClientState{
		DeviceSnapshot: models.DeviceSnapshot{
			ID:          "esp-grey",
			Token:       77,
			Temperature: models.Temperature{Current: 101.23456, Target: 100, Low: 95.5, High: 105},
			PID:         models.PID{Kp: 2.5, Ki: 0.1, Kd: 1.2, Output: 40},
			Heater:      models.Heater{Mode: models.HeaterLow, Active: true},
			WindowMs:    1500,
		},
		History: []models.HistoryRecord{
			{Sequence: 3, Samples: 15, Temperature: models.MetricStat{Current: 101, Min: 99, Max: 102, Average: 100.5}},
		},
		FetchedAt: time.Date(2025, 9, 10, 8, 0, 0, 0, time.UTC),
	}
}
