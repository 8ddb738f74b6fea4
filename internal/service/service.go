package service

import (
	"context"
	"io"

	"heater_dashboard/internal/models"
	"heater_dashboard/internal/ui"
)

// Dashboard exposes the synchronized device state and focus gating.
type Dashboard interface {
	State() *models.ClientState
	Refresh(ctx context.Context) (*models.ClientState, error)
	SetActive(ctx context.Context, active bool)
	Active() bool
	LastError() error
	Failures() int
	Subscribe() (<-chan *models.ClientState, func())
	SubscribeSync() (<-chan SyncStatus, func())
}

// Commands dispatches button actions to the device.
type Commands interface {
	Dispatch(ctx context.Context, id string, p ui.Params) (models.CommandResult, error)
	Actions() []string
}

// Charts renders trend charts of the latest state.
type Charts interface {
	RenderPNG(metric models.Metric, opts ChartOptions, w io.Writer) error
}

// EventLog exposes the notice log and its live stream.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.DashboardEvent, error)
	SubscribeNotices() (<-chan models.DashboardEvent, func())
}

// Service aggregates all sub-services used by the HTTP layer.
type Service struct {
	Dashboard
	Commands
	Charts
	EventLog
}

// Deps are the concrete services NewService wires together.
type Deps struct {
	Dashboard *DashboardService
	Commands  *CommandService
	Charts    *ChartService
	EventLog  *EventLogService
}

func NewService(d Deps) *Service {
	return &Service{
		Dashboard: d.Dashboard,
		Commands:  d.Commands,
		Charts:    d.Charts,
		EventLog:  d.EventLog,
	}
}
