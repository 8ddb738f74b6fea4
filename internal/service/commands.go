package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"heater_dashboard/internal/logger"
	"heater_dashboard/internal/models"
	"heater_dashboard/internal/ui"
)

// ErrCommandTransport wraps failures to reach the device with a command.
var ErrCommandTransport = errors.New("command transport failed")

// CommandExecutor sends one signed command line to the device.
type CommandExecutor interface {
	Execute(ctx context.Context, token int64, command string) (models.CommandResult, error)
}

// StateSource provides the ClientState commands are resolved against.
type StateSource interface {
	State() *models.ClientState
}

type CommandService struct {
	exec     CommandExecutor
	registry *ui.Registry
	state    StateSource
	notifier Notifier
	metrics  *Metrics
	log      *logger.Logger
	timeout  time.Duration
}

func NewCommandService(exec CommandExecutor, registry *ui.Registry, state StateSource, notifier Notifier, metrics *Metrics, log *logger.Logger, timeout time.Duration) *CommandService {
	if registry == nil {
		registry = ui.DefaultRegistry()
	}
	return &CommandService{
		exec:     exec,
		registry: registry,
		state:    state,
		notifier: notifier,
		metrics:  metrics,
		log:      log.Component("commands"),
		timeout:  timeout,
	}
}

// Actions lists the button ids Dispatch accepts.
func (s *CommandService) Actions() []string { return s.registry.IDs() }

// Dispatch resolves the action for button id and sends it. Every command that
// reaches the executor yields a notice. A device rejection is returned as a
// result with Success false; only transport failures return an error.
func (s *CommandService) Dispatch(ctx context.Context, id string, p ui.Params) (models.CommandResult, error) {
	state := s.state.State()
	command, err := s.registry.Resolve(id, state, p)
	if err != nil {
		return models.CommandResult{}, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.exec.Execute(ctx, state.Token, command)
	meta := map[string]any{"action": id, "command": command}
	if err != nil {
		s.metrics.observeCommand(resultError)
		if s.log != nil {
			s.log.Errorw("command_failed", "action", id, "command", command, "error", err)
		}
		s.notify(ctx, models.EventCommandError, ui.HeaderCommandFailed, err.Error(), meta)
		return models.CommandResult{}, fmt.Errorf("%w: %w", ErrCommandTransport, err)
	}

	if !result.Success {
		s.metrics.observeCommand(resultRejected)
		if s.log != nil {
			s.log.Warnw("command_rejected", "action", id, "command", command, "message", result.Message)
		}
		s.notify(ctx, models.EventCommandError, ui.HeaderCommandFailed, result.Message, meta)
		return result, nil
	}

	s.metrics.observeCommand(resultOK)
	if s.log != nil {
		s.log.Infow("command_executed", "action", id, "command", command)
	}
	s.notify(ctx, models.EventCommand, ui.HeaderCommandOK, result.Message, meta)
	return result, nil
}

func (s *CommandService) notify(ctx context.Context, typ, header, message string, meta any) {
	if s.notifier == nil {
		return
	}
	// The notice outlives the command deadline.
	s.notifier.Record(context.WithoutCancel(ctx), typ, header, message, meta)
}
