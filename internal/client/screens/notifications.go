package screens

import (
	"context"

	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/client/services"
	"github.com/dmitrijs2005/catalog/internal/client/session"
)

// NotificationsScreen shows the unread notifications. Loading never marks
// anything read; MarkAllRead is a separate, explicit step.
type NotificationsScreen struct {
	fetch[[]models.Notification]
	notifications services.NotificationService
	session       *session.Session
}

func NewNotificationsScreen(ns services.NotificationService, s *session.Session) *NotificationsScreen {
	return &NotificationsScreen{notifications: ns, session: s}
}

func (n *NotificationsScreen) Load(ctx context.Context) error {
	if err := session.Require(n.session); err != nil {
		return err
	}
	n.begin()
	unread, err := n.notifications.Unread(ctx, n.session.UserID)
	return n.finish(unread, err)
}

func (n *NotificationsScreen) Items() []models.Notification {
	_, items, _ := n.get()
	return items
}

func (n *NotificationsScreen) Empty() bool {
	st, items, _ := n.get()
	return st == FetchReady && len(items) == 0
}

// MarkAllRead flips every unread notification on the server. The cards on
// screen stay until the next Load.
func (n *NotificationsScreen) MarkAllRead(ctx context.Context) (int, error) {
	if err := session.Require(n.session); err != nil {
		return 0, err
	}
	return n.notifications.MarkAllRead(ctx, n.session.UserID)
}

// Dismiss marks one notification read and drops its card.
func (n *NotificationsScreen) Dismiss(ctx context.Context, id int) error {
	if err := session.Require(n.session); err != nil {
		return err
	}
	if err := n.notifications.MarkRead(ctx, n.session.UserID, id); err != nil {
		return err
	}
	n.drop(id)
	return nil
}

func (n *NotificationsScreen) Delete(ctx context.Context, id int) error {
	if err := session.Require(n.session); err != nil {
		return err
	}
	if err := n.notifications.Delete(ctx, n.session.UserID, id); err != nil {
		return err
	}
	n.drop(id)
	return nil
}

func (n *NotificationsScreen) drop(id int) {
	n.update(func(items *[]models.Notification) {
		kept := (*items)[:0:0]
		for _, it := range *items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		*items = kept
	})
}
