package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"heater_dashboard/internal/logger"
	"heater_dashboard/internal/models"
	"heater_dashboard/internal/ui"
)

var (
	// ErrSyncInFlight reports a refresh coalesced into a running sync.
	ErrSyncInFlight = errors.New("sync already in flight")
	// ErrStaleResult reports a sync discarded because focus was lost while it ran.
	ErrStaleResult = errors.New("sync result discarded after focus loss")
)

// Syncer produces the next ClientState from the previous one.
type Syncer interface {
	Sync(ctx context.Context, previous *models.ClientState) (*models.ClientState, error)
}

// Notifier records operator notices.
type Notifier interface {
	Record(ctx context.Context, typ, header, description string, meta any) models.DashboardEvent
}

// DashboardConfig tunes the tick driver.
type DashboardConfig struct {
	Interval       time.Duration
	RequestTimeout time.Duration
}

// SyncStatus is the outcome streak of periodic syncs.
type SyncStatus struct {
	Active    bool   `json:"active"`
	Failures  int    `json:"failures"`
	LastError string `json:"last_error,omitempty"`
}

// DashboardService owns the ClientState and drives periodic syncs. At most
// one sync runs at a time; ticks are paused while the dashboard is inactive.
type DashboardService struct {
	syncer   Syncer
	notifier Notifier
	metrics  *Metrics
	log      *logger.Logger
	cfg      DashboardConfig

	mu       sync.RWMutex
	state    *models.ClientState
	lastErr  error
	failures int

	inFlight atomic.Bool
	active   atomic.Bool
	// epoch advances on every focus loss.
	epoch atomic.Uint64
	wake  chan struct{}

	states    *fanout[*models.ClientState]
	syncs     *fanout[SyncStatus]
	closeOnce sync.Once
}

func NewDashboardService(syncer Syncer, notifier Notifier, metrics *Metrics, log *logger.Logger, cfg DashboardConfig) (*DashboardService, error) {
	if syncer == nil {
		return nil, errors.New("syncer is required")
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("interval must be > 0")
	}
	d := &DashboardService{
		syncer:   syncer,
		notifier: notifier,
		metrics:  metrics,
		log:      log.Component("dashboard"),
		cfg:      cfg,
		wake:     make(chan struct{}, 1),
		states:   newFanout[*models.ClientState](1),
		syncs:    newFanout[SyncStatus](1),
	}
	d.active.Store(true)
	return d, nil
}

// Run syncs immediately, then on every tick while active, until ctx is
// canceled. Slow fetches delay the next tick instead of overlapping it.
func (d *DashboardService) Run(ctx context.Context) error {
	if d.log != nil {
		d.log.Infow("dashboard_started", "interval", d.cfg.Interval.String())
	}
	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	d.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			if d.log != nil {
				d.log.Infow("dashboard_stopping", "reason", ctx.Err())
			}
			d.Close()
			return nil
		case <-ticker.C:
			d.tick(ctx)
		case <-d.wake:
			d.tick(ctx)
			ticker.Reset(d.cfg.Interval)
		}
	}
}

func (d *DashboardService) tick(ctx context.Context) {
	if !d.active.Load() {
		return
	}
	_, _ = d.sync(ctx)
}

// Refresh runs one sync now, regardless of focus.
func (d *DashboardService) Refresh(ctx context.Context) (*models.ClientState, error) {
	return d.sync(ctx)
}

func (d *DashboardService) sync(ctx context.Context) (*models.ClientState, error) {
	if !d.inFlight.CompareAndSwap(false, true) {
		d.metrics.observeSync(resultCoalesced, 0)
		return nil, ErrSyncInFlight
	}
	defer d.inFlight.Store(false)

	epoch := d.epoch.Load()
	previous := d.State()

	reqCtx, cancel := ctx, context.CancelFunc(func() {})
	if d.cfg.RequestTimeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, d.cfg.RequestTimeout)
	}
	started := time.Now()
	next, err := d.syncer.Sync(reqCtx, previous)
	cancel()
	elapsed := time.Since(started)

	if err != nil {
		d.metrics.observeSync(resultError, elapsed)
		d.recordFailure(ctx, err)
		return nil, err
	}
	if d.epoch.Load() != epoch && !d.active.Load() {
		d.metrics.observeSync(resultDiscarded, elapsed)
		if d.log != nil {
			d.log.Debugw("sync_discarded", "reason", "focus_lost")
		}
		return nil, ErrStaleResult
	}

	d.metrics.observeSync(resultOK, elapsed)
	d.publish(ctx, next)
	return next, nil
}

func (d *DashboardService) recordFailure(ctx context.Context, err error) {
	d.mu.Lock()
	d.lastErr = err
	d.failures++
	count := d.failures
	status := d.statusLocked()
	d.mu.Unlock()

	d.syncs.publish(status)

	if d.log != nil {
		d.log.Errorw("sync_failed", "error", err, "consecutive", count)
	}
	// One notice per outage; later failures only log.
	if count == 1 && d.notifier != nil {
		d.notifier.Record(ctx, models.EventSyncError, ui.HeaderSyncFailed, err.Error(), nil)
	}
}

func (d *DashboardService) publish(ctx context.Context, next *models.ClientState) {
	d.mu.Lock()
	d.state = next
	failures := d.failures
	d.failures = 0
	d.lastErr = nil
	status := d.statusLocked()
	d.mu.Unlock()

	if failures > 0 {
		d.syncs.publish(status)
		if d.log != nil {
			d.log.Infow("sync_resumed", "failures", failures)
		}
		if d.notifier != nil {
			d.notifier.Record(ctx, models.EventSyncResumed, ui.HeaderSyncResumed,
				fmt.Sprintf("recovered after %d failed attempts", failures),
				map[string]any{"failures": failures})
		}
	}
	d.states.publish(next)
}

// SetActive gates periodic syncs. Regaining focus triggers an immediate sync.
func (d *DashboardService) SetActive(ctx context.Context, active bool) {
	if d.active.Swap(active) == active {
		return
	}
	if active {
		select {
		case d.wake <- struct{}{}:
		default:
		}
	} else {
		d.epoch.Add(1)
	}

	state := "inactive"
	if active {
		state = "active"
	}
	if d.log != nil {
		d.log.Infow("focus_changed", "state", state)
	}
	if d.notifier != nil {
		d.notifier.Record(ctx, models.EventFocus, "Focus changed", state, map[string]any{"active": active})
	}
}

func (d *DashboardService) Active() bool { return d.active.Load() }

// State returns the latest ClientState, nil before the first successful sync.
// The value is shared and must not be modified.
func (d *DashboardService) State() *models.ClientState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// LastError returns the error of the last sync when it failed.
func (d *DashboardService) LastError() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastErr
}

// Failures is the number of consecutive failed syncs.
func (d *DashboardService) Failures() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.failures
}

// Status reports focus and the current failure streak.
func (d *DashboardService) Status() SyncStatus {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.statusLocked()
}

func (d *DashboardService) statusLocked() SyncStatus {
	st := SyncStatus{Active: d.active.Load(), Failures: d.failures}
	if d.lastErr != nil {
		st.LastError = d.lastErr.Error()
	}
	return st
}

// SubscribeSync streams the status after every failed sync and after the
// first success that ends a streak. Subscribers joining mid-outage are
// primed with the current streak.
func (d *DashboardService) SubscribeSync() (<-chan SyncStatus, func()) {
	current := d.Status()
	return d.syncs.subscribe(current, current.Failures > 0)
}

// Subscribe streams every new ClientState, starting with the current one.
func (d *DashboardService) Subscribe() (<-chan *models.ClientState, func()) {
	current := d.State()
	return d.states.subscribe(current, current != nil)
}

// Close ends all state streams. Safe for repeated use.
func (d *DashboardService) Close() {
	d.closeOnce.Do(func() {
		d.states.closeAll()
		d.syncs.closeAll()
	})
}
