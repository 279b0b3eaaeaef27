package screens

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/catalog/internal/client/services"
	"github.com/dmitrijs2005/catalog/internal/client/session"
	"github.com/dmitrijs2005/catalog/internal/logging"
	"golang.org/x/sync/errgroup"
)

// ErrSuperseded is returned by a header refresh whose result was dropped
// because a newer refresh started after it.
var ErrSuperseded = errors.New("refresh superseded")

// HeaderScreen is the top bar: profile image and unread badge. Both are
// fetched concurrently; a failed fetch shows no image or a zero badge.
type HeaderScreen struct {
	profile       services.ProfileService
	notifications services.NotificationService
	session       *session.Session
	log           logging.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	image  string
	unread int
}

func NewHeaderScreen(profile services.ProfileService, ns services.NotificationService, s *session.Session, log logging.Logger) *HeaderScreen {
	return &HeaderScreen{profile: profile, notifications: ns, session: s, log: log}
}

// Refresh cancels any refresh still in flight and starts a new one. Only the
// newest refresh may write the header.
func (h *HeaderScreen) Refresh(ctx context.Context) error {
	if err := session.Require(h.session); err != nil {
		return err
	}

	h.mu.Lock()
	if h.cancel != nil {
		h.cancel()
	}
	h.gen++
	gen := h.gen
	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	h.mu.Unlock()
	defer cancel()

	var (
		image  string
		unread int
	)
	userID := h.session.UserID

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := h.profile.Get(gctx, userID)
		if err != nil {
			h.log.Debug(gctx, "header image not loaded", "error", err)
			return nil
		}
		image = u.ImageURL()
		return nil
	})
	g.Go(func() error {
		n, err := h.notifications.UnreadCount(gctx, userID)
		if err != nil {
			h.log.Debug(gctx, "unread count not loaded", "error", err)
			return nil
		}
		unread = n
		return nil
	})
	_ = g.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.gen {
		return ErrSuperseded
	}
	h.image, h.unread = image, unread
	return nil
}

func (h *HeaderScreen) Image() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.image
}

func (h *HeaderScreen) Unread() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.unread
}
