package synchronizer

import (
	"context"
	"time"

	"heater_dashboard/internal/device"
	"heater_dashboard/internal/models"
)

// DefaultRetention is the number of records kept after each merge.
const DefaultRetention = 120

// StatusFetcher retrieves one packed status payload from the device.
type StatusFetcher interface {
	FetchStatus(ctx context.Context) (device.RawStatus, error)
}

// Synchronizer turns device fetches into successive ClientState values.
// Callers must not overlap Sync calls.
type Synchronizer struct {
	fetcher   StatusFetcher
	retention int
	now       func() time.Time
}

// New returns a Synchronizer keeping at most retention records.
func New(fetcher StatusFetcher, retention int) *Synchronizer {
	return &Synchronizer{
		fetcher:   fetcher,
		retention: retention,
		now:       time.Now,
	}
}

// Sync fetches the device status and merges it with previous. On any error
// the returned state is nil and previous is left untouched.
func (s *Synchronizer) Sync(ctx context.Context, previous *models.ClientState) (*models.ClientState, error) {
	raw, err := s.fetcher.FetchStatus(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, fresh, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	var old []models.HistoryRecord
	if previous != nil {
		old = previous.History
	}

	return &models.ClientState{
		DeviceSnapshot: snapshot,
		History:        Merge(fresh, old, s.retention),
		FetchedAt:      s.now().UTC(),
	}, nil
}
