// Package watcher runs the client's background jobs on a cron scheduler:
// the connectivity probe that flips online/offline mode and the periodic
// refresh of the unread badge while someone is logged in.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/catalog/internal/logging"
	"github.com/robfig/cron/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Refresher interface {
	Refresh(ctx context.Context) error
}

type Watcher struct {
	cron    *cron.Cron
	log     logging.Logger
	timeout time.Duration
	online  atomic.Bool

	mu       sync.Mutex
	badge    cron.EntryID
	onChange func(online bool)
}

// New returns a stopped watcher that assumes the server is online until a
// probe says otherwise. timeout bounds each job run.
func New(log logging.Logger, timeout time.Duration) *Watcher {
	cl := cronLogger{log: log}
	w := &Watcher{
		log:     log,
		timeout: timeout,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
	w.online.Store(true)
	return w
}

// OnChange registers fn to be called on every online/offline transition.
func (w *Watcher) OnChange(fn func(online bool)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

func (w *Watcher) Online() bool {
	return w.online.Load()
}

func schedule(every time.Duration) (string, error) {
	if every < time.Second {
		return "", fmt.Errorf("interval %s is below one second", every)
	}
	return "@every " + every.String(), nil
}

// WatchConnectivity probes p every interval.
func (w *Watcher) WatchConnectivity(p Pinger, every time.Duration) error {
	spec, err := schedule(every)
	if err != nil {
		return err
	}
	_, err = w.cron.AddFunc(spec, func() { w.Probe(context.Background(), p) })
	return err
}

// Probe pings once and records the result. It returns the new online state.
func (w *Watcher) Probe(ctx context.Context, p Pinger) bool {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	err := p.Ping(ctx)
	online := err == nil
	if was := w.online.Swap(online); was != online {
		if online {
			w.log.Info(ctx, "server is reachable again, switching to online mode")
		} else {
			w.log.Warn(ctx, "server unreachable, switching to offline mode", "error", err)
		}

		w.mu.Lock()
		fn := w.onChange
		w.mu.Unlock()
		if fn != nil {
			fn(online)
		}
	}
	return online
}

// WatchBadge refreshes r every interval, replacing any previous badge job.
// Runs are skipped while offline.
func (w *Watcher) WatchBadge(r Refresher, every time.Duration) error {
	spec, err := schedule(every)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.badge != 0 {
		w.cron.Remove(w.badge)
	}
	w.badge, err = w.cron.AddFunc(spec, func() { w.RefreshBadge(context.Background(), r) })
	return err
}

// StopBadge drops the badge job, e.g. at logout.
func (w *Watcher) StopBadge() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.badge != 0 {
		w.cron.Remove(w.badge)
		w.badge = 0
	}
}

func (w *Watcher) RefreshBadge(ctx context.Context, r Refresher) {
	if !w.Online() {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := r.Refresh(ctx); err != nil {
		w.log.Debug(ctx, "badge refresh failed", "error", err)
	}
}

// Jobs is the number of scheduled jobs.
func (w *Watcher) Jobs() int {
	return len(w.cron.Entries())
}

func (w *Watcher) Start() {
	w.cron.Start()
}

// Stop stops scheduling and waits for running jobs.
func (w *Watcher) Stop() {
	<-w.cron.Stop().Done()
}

// cronLogger adapts logging.Logger to cron.Logger.
type cronLogger struct {
	log logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(context.Background(), "cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	if err == nil {
		err = errors.New("unknown")
	}
	l.log.Error(context.Background(), "cron: "+msg, append(keysAndValues, "error", err)...)
}
