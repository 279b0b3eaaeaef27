package screens

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProfile answers Get from a queue of replies; each reply may block on
// its own gate.
type fakeProfile struct {
	mu      sync.Mutex
	replies []profileReply
	calls   int
}

type profileReply struct {
	gate  chan struct{}
	image string
	err   error
}

func (f *fakeProfile) Get(ctx context.Context, userID int) (models.User, error) {
	f.mu.Lock()
	r := f.replies[f.calls]
	f.calls++
	f.mu.Unlock()

	if r.gate != nil {
		<-r.gate
	}
	if r.err != nil {
		return models.User{}, r.err
	}
	img := r.image
	return models.User{ID: userID, Image: &img}, nil
}

func (f *fakeProfile) SaveImage(context.Context, models.User, string) (string, error) {
	return "", errors.New("not used")
}

type fakeNotifs struct {
	count int
	err   error
}

func (f *fakeNotifs) Unread(context.Context, int) ([]models.Notification, error) { return nil, f.err }
func (f *fakeNotifs) UnreadCount(context.Context, int) (int, error)             { return f.count, f.err }
func (f *fakeNotifs) MarkAllRead(context.Context, int) (int, error)             { return 0, nil }
func (f *fakeNotifs) MarkRead(context.Context, int, int) error                  { return nil }
func (f *fakeNotifs) Delete(context.Context, int, int) error                    { return nil }

func TestHeader_RefreshLoadsBoth(t *testing.T) {
	p := &fakeProfile{replies: []profileReply{{image: "http://x/me.png"}}}
	h := NewHeaderScreen(p, &fakeNotifs{count: 3}, loggedIn(1), logging.Nop{})

	require.NoError(t, h.Refresh(context.Background()))
	assert.Equal(t, "http://x/me.png", h.Image())
	assert.Equal(t, 3, h.Unread())
}

func TestHeader_FailuresDegrade(t *testing.T) {
	p := &fakeProfile{replies: []profileReply{{err: errors.New("down")}}}
	h := NewHeaderScreen(p, &fakeNotifs{err: errors.New("down")}, loggedIn(1), logging.Nop{})

	require.NoError(t, h.Refresh(context.Background()))
	assert.Empty(t, h.Image())
	assert.Zero(t, h.Unread())
}

func TestHeader_StaleRefreshIsDiscarded(t *testing.T) {
	slow := make(chan struct{})
	p := &fakeProfile{replies: []profileReply{
		{gate: slow, image: "old.png"},
		{image: "new.png"},
	}}
	h := NewHeaderScreen(p, &fakeNotifs{count: 1}, loggedIn(1), logging.Nop{})

	firstDone := make(chan error, 1)
	go func() { firstDone <- h.Refresh(context.Background()) }()

	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.calls == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, h.Refresh(context.Background()))
	assert.Equal(t, "new.png", h.Image())

	close(slow)
	require.ErrorIs(t, <-firstDone, ErrSuperseded)
	assert.Equal(t, "new.png", h.Image(), "older response must not overwrite newer one")
}

func TestHeader_RequiresSession(t *testing.T) {
	h := NewHeaderScreen(&fakeProfile{}, &fakeNotifs{}, nil, logging.Nop{})
	require.ErrorIs(t, h.Refresh(context.Background()), ErrNoSession)
}
