package synchronizer

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"heater_dashboard/internal/device"
	"heater_dashboard/internal/models"

	"github.com/stretchr/testify/require"
)

type fetcherStub struct {
	raw   device.RawStatus
	err   error
	calls int
}

func (f *fetcherStub) FetchStatus(ctx context.Context) (device.RawStatus, error) {
	f.calls++
	return f.raw, f.err
}

// rawWith builds a consistent payload for the given sequences.
func rawWith(seqs ...int64) device.RawStatus {
	raw := device.RawStatus{ID: "dev", Token: 9}
	for i, seq := range seqs {
		v := float64(seq)
		raw.History.Sequence = append(raw.History.Sequence, seq)
		raw.History.Samples = append(raw.History.Samples, int64(i+1))
		raw.History.Temperature = append(raw.History.Temperature, v, v-1, v+1, v)
		raw.History.Output = append(raw.History.Output, 0, 0, 0, 0)
		raw.History.Heater = append(raw.History.Heater, 1, 0, 1, 0.5)
		raw.History.Health = append(raw.History.Health, 2, 1, 3, 2)
	}
	return raw
}

func sequences(recs []models.HistoryRecord) []int64 {
	out := make([]int64, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Sequence)
	}
	return out
}

func records(seqs ...int64) []models.HistoryRecord {
	out := make([]models.HistoryRecord, 0, len(seqs))
	for _, s := range seqs {
		out = append(out, models.HistoryRecord{Sequence: s, Samples: 1})
	}
	return out
}

func TestDecode_PackedArrays(t *testing.T) {
	raw := device.RawStatus{History: device.RawHistory{
		Sequence:    []int64{5, 4},
		Samples:     []int64{2, 2},
		Temperature: []float64{10, 9, 11, 10, 8, 7, 9, 8},
		Output:      make([]float64, 8),
		Heater:      make([]float64, 8),
		Health:      make([]float64, 8),
	}}

	_, recs, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, int64(5), recs[0].Sequence)
	require.Equal(t, int64(2), recs[0].Samples)
	require.Equal(t, models.MetricStat{Current: 10, Min: 9, Max: 11, Average: 10}, recs[0].Temperature)
	require.Equal(t, models.MetricStat{Current: 8, Min: 7, Max: 9, Average: 8}, recs[1].Temperature)
}

func TestDecode_Window(t *testing.T) {
	raw := rawWith(1)
	snap, _, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, int64(DefaultWindowMs), snap.WindowMs)

	raw.History.Window = 500
	snap, _, _ = Decode(raw)
	require.Equal(t, int64(500), snap.WindowMs)

	raw.Window = 250
	snap, _, _ = Decode(raw)
	require.Equal(t, int64(250), snap.WindowMs, "top-level window wins")
}

func TestDecode_LengthMismatch(t *testing.T) {
	cases := map[string]func(r *device.RawStatus){
		"sequence short": func(r *device.RawStatus) { r.History.Sequence = r.History.Sequence[:1] },
		"metric short":   func(r *device.RawStatus) { r.History.Health = r.History.Health[:7] },
		"metric long":    func(r *device.RawStatus) { r.History.Output = append(r.History.Output, 1) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			raw := rawWith(2, 1)
			mutate(&raw)
			_, _, err := Decode(raw)
			require.ErrorIs(t, err, device.ErrMalformedResponse)
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	_, recs, err := Decode(device.RawStatus{})
	require.NoError(t, err)
	require.Empty(t, recs)
}

func TestMerge_Dedup(t *testing.T) {
	got := Merge(records(6, 5), records(5, 4, 3), DefaultRetention)
	require.Equal(t, []int64{6, 5, 4, 3}, sequences(got))
}

func TestMerge_FreshWinsOnOverlap(t *testing.T) {
	fresh := []models.HistoryRecord{{Sequence: 5, Samples: 9}}
	got := Merge(fresh, records(5, 4), DefaultRetention)
	require.Equal(t, int64(9), got[0].Samples)
}

func TestMerge_Idempotent(t *testing.T) {
	previous := records(7, 6, 5, 4)
	got := Merge(records(7, 6), previous, DefaultRetention)
	require.Len(t, got, len(previous))
	require.Equal(t, sequences(previous), sequences(got))
}

func TestMerge_DuplicatesInsideFreshBatch(t *testing.T) {
	got := Merge(records(3, 3, 2), nil, 0)
	require.Equal(t, []int64{3, 2}, sequences(got))
}

func TestMerge_Cap(t *testing.T) {
	var previous []models.HistoryRecord
	var seq int64
	for round := 0; round < 50; round++ {
		fresh := records(seq+5, seq+4, seq+3, seq+2, seq+1)
		seq += 5
		previous = Merge(fresh, previous, DefaultRetention)
		require.LessOrEqual(t, len(previous), DefaultRetention)
	}
	require.Len(t, previous, DefaultRetention)
	require.Equal(t, seq, previous[0].Sequence)
}

func TestMerge_NoLimit(t *testing.T) {
	got := Merge(records(3, 2), records(1), 0)
	require.Len(t, got, 3)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	previous := records(5, 4, 3)
	before := append([]models.HistoryRecord(nil), previous...)
	_ = Merge(records(6, 5), previous, 2)
	require.Equal(t, before, previous)
}

func TestSynchronizer_Sync(t *testing.T) {
	fetcher := &fetcherStub{raw: rawWith(6, 5)}
	s := New(fetcher, DefaultRetention)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	previous := &models.ClientState{History: records(5, 4, 3)}
	next, err := s.Sync(context.Background(), previous)
	require.NoError(t, err)
	require.Equal(t, []int64{6, 5, 4, 3}, sequences(next.History))
	require.Equal(t, "dev", next.ID)
	require.Equal(t, fixed, next.FetchedAt)
	require.Equal(t, []int64{5, 4, 3}, sequences(previous.History))
}

func TestSynchronizer_FirstSync(t *testing.T) {
	next, err := New(&fetcherStub{raw: rawWith(2, 1)}, DefaultRetention).Sync(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, []int64{2, 1}, sequences(next.History))
}

func TestSynchronizer_FailureLeavesPreviousIntact(t *testing.T) {
	previous := &models.ClientState{
		DeviceSnapshot: models.DeviceSnapshot{ID: "dev", Token: 3, WindowMs: 1000},
		History:        records(5, 4, 3),
	}
	snapshot := *previous
	snapshot.History = append([]models.HistoryRecord(nil), previous.History...)

	transport := errors.New("connection reset")
	for _, fetcher := range []*fetcherStub{
		{err: transport},
		{raw: device.RawStatus{History: device.RawHistory{Samples: []int64{1}}}},
	} {
		next, err := New(fetcher, DefaultRetention).Sync(context.Background(), previous)
		require.Error(t, err)
		require.Nil(t, next)
		require.True(t, reflect.DeepEqual(snapshot, *previous), "previous state changed")
	}
}
