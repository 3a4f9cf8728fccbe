package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsJobOnInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	s := New()
	s.Register(Job{
		Name:     "tick",
		Interval: 10 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})
	s.Start(ctx)

	require.Eventually(t, func() bool { return runs.Load() >= 2 },
		2*time.Second, 5*time.Millisecond)
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var runs atomic.Int32
	s := New()
	s.Register(Job{
		Name:     "tick",
		Interval: 5 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})
	s.Start(ctx)

	require.Eventually(t, func() bool { return runs.Load() >= 1 },
		2*time.Second, time.Millisecond)
	cancel()

	time.Sleep(100 * time.Millisecond)
	after := runs.Load()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs after cancellation")
}

func TestTriggerRunsOffScheduleAndRecordsError(t *testing.T) {
	s := New()
	s.Register(Job{
		Name:        "flaky",
		Description: "always fails",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			return errors.New("boom")
		},
	})

	require.NoError(t, s.Trigger(context.Background(), "flaky"))
	require.Eventually(t, func() bool {
		snaps := s.Snapshots()
		return len(snaps) == 1 && snaps[0].LastRunAt != nil
	}, 2*time.Second, time.Millisecond)

	snap := s.Snapshots()[0]
	assert.Equal(t, "flaky", snap.Name)
	assert.Equal(t, "boom", snap.LastError)
	assert.False(t, snap.Running)

	assert.Error(t, s.Trigger(context.Background(), "missing"))
}

func TestSnapshotsSortedByName(t *testing.T) {
	s := New()
	noop := func(ctx context.Context) error { return nil }
	s.Register(Job{Name: "zeta", Interval: time.Hour, Fn: noop})
	s.Register(Job{Name: "alpha", Interval: time.Hour, Fn: noop})

	snaps := s.Snapshots()
	require.Len(t, snaps, 2)
	assert.Equal(t, "alpha", snaps[0].Name)
	assert.Equal(t, "zeta", snaps[1].Name)
}
