package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService(t *testing.T) {
	api, c := setupAPI(t)
	api.AddUser(models.User{ID: 1})
	api.AddNotification(models.Notification{ID: 1, UserID: 1, IsRead: false})
	api.AddNotification(models.Notification{ID: 2, UserID: 1, IsRead: true})
	api.AddNotification(models.Notification{ID: 3, UserID: 1, IsRead: false})
	svc := NewNotificationService(c)
	ctx := context.Background()

	unread, err := svc.Unread(ctx, 1)
	require.NoError(t, err)
	require.Len(t, unread, 2)

	require.NoError(t, svc.MarkRead(ctx, 1, 3))
	n, err := svc.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	changed, err := svc.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	require.NoError(t, svc.Delete(ctx, 1, 2))
	assert.Len(t, api.Notifications(), 2)

	_, err = svc.UnreadCount(ctx, 42)
	require.Error(t, err)
}
