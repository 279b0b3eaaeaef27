package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/catalog/internal/client/screens"
	"github.com/dmitrijs2005/catalog/internal/client/session"
)

// Notifications prints the unread notifications, then marks them all read
// on the server.
func (a *App) Notifications(ctx context.Context) error {
	scr := screens.NewNotificationsScreen(a.notificationService, a.currentSession())
	a.navigate(session.RouteNotifications)

	if err := scr.Load(ctx); err != nil {
		fmt.Fprintf(a.out, "! %s\n", scr.Message())
		return err
	}
	if scr.Empty() {
		fmt.Fprintln(a.out, "No new notifications")
	}
	for _, n := range scr.Items() {
		fmt.Fprintf(a.out, "[%d] %s\n    %s\n", n.ID, n.Name, n.Message)
	}

	// Every successful load is acknowledged, even an empty one.
	count, err := scr.MarkAllRead(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "! %s\n", screens.AlertText(err))
		return err
	}
	a.log.Debug(ctx, "notifications marked read", "count", count)
	a.refreshBadge(ctx)
	return nil
}

// ReadNotification marks one notification read.
func (a *App) ReadNotification(ctx context.Context, args []string) error {
	return a.notificationAction(ctx, args, "marked read", (*screens.NotificationsScreen).Dismiss)
}

// DeleteNotification removes one notification.
func (a *App) DeleteNotification(ctx context.Context, args []string) error {
	return a.notificationAction(ctx, args, "deleted", (*screens.NotificationsScreen).Delete)
}

func (a *App) notificationAction(ctx context.Context, args []string, done string,
	act func(*screens.NotificationsScreen, context.Context, int) error) error {
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	scr := screens.NewNotificationsScreen(a.notificationService, a.currentSession())
	if err := act(scr, ctx, id); err != nil {
		fmt.Fprintf(a.out, "! %s\n", screens.AlertText(err))
		return err
	}
	fmt.Fprintf(a.out, "Notification %d %s\n", id, done)
	a.refreshBadge(ctx)
	return nil
}

func (a *App) refreshBadge(ctx context.Context) {
	a.mu.RLock()
	header := a.header
	a.mu.RUnlock()
	if header != nil {
		a.watcher.RefreshBadge(ctx, header)
	}
}
