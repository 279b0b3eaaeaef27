package watcher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/catalog/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err   error
	calls atomic.Int32
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("probe without deadline")
	}
	return f.err
}

type fakeRefresher struct {
	calls atomic.Int32
	err   error
}

func (f *fakeRefresher) Refresh(context.Context) error {
	f.calls.Add(1)
	return f.err
}

func TestProbe_TransitionsCallOnChange(t *testing.T) {
	w := New(logging.Nop{}, time.Second)
	var changes []bool
	w.OnChange(func(online bool) { changes = append(changes, online) })
	p := &fakePinger{}
	ctx := context.Background()

	assert.True(t, w.Probe(ctx, p))
	assert.Empty(t, changes, "already online")

	p.err = errors.New("connection refused")
	assert.False(t, w.Probe(ctx, p))
	assert.False(t, w.Probe(ctx, p))
	assert.False(t, w.Online())

	p.err = nil
	assert.True(t, w.Probe(ctx, p))
	assert.Equal(t, []bool{false, true}, changes)
}

func TestRefreshBadge_SkippedOffline(t *testing.T) {
	w := New(logging.Nop{}, time.Second)
	r := &fakeRefresher{err: errors.New("superseded")}
	ctx := context.Background()

	w.RefreshBadge(ctx, r)
	assert.EqualValues(t, 1, r.calls.Load())

	w.Probe(ctx, &fakePinger{err: errors.New("down")})
	w.RefreshBadge(ctx, r)
	assert.EqualValues(t, 1, r.calls.Load())
}

func TestWatchJobs(t *testing.T) {
	w := New(logging.Nop{}, time.Second)

	require.Error(t, w.WatchConnectivity(&fakePinger{}, 10*time.Millisecond))
	require.NoError(t, w.WatchConnectivity(&fakePinger{}, 30*time.Second))
	assert.Equal(t, 1, w.Jobs())

	require.NoError(t, w.WatchBadge(&fakeRefresher{}, time.Minute))
	require.NoError(t, w.WatchBadge(&fakeRefresher{}, time.Minute))
	assert.Equal(t, 2, w.Jobs(), "second badge job replaces the first")

	w.StopBadge()
	assert.Equal(t, 1, w.Jobs())
	w.StopBadge()
}

func TestStartStop_RunsScheduledProbe(t *testing.T) {
	w := New(logging.Nop{}, time.Second)
	p := &fakePinger{}
	require.NoError(t, w.WatchConnectivity(p, time.Second))

	w.Start()
	require.Eventually(t, func() bool { return p.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	w.Stop()
}
