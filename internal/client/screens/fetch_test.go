package screens

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/catalog/internal/client/client"
	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/client/services"
	"github.com/dmitrijs2005/catalog/internal/logging"
	"github.com/dmitrijs2005/catalog/internal/testutil/fakeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications_OneCardThenReadAll(t *testing.T) {
	e := newEnv(t)
	e.api.AddUser(models.User{ID: 1})
	e.api.AddNotification(models.Notification{ID: 1, UserID: 1, Name: "sale", IsRead: false})
	e.api.AddNotification(models.Notification{ID: 2, UserID: 1, Name: "old", IsRead: true})
	s := NewNotificationsScreen(services.NewNotificationService(e.client), loggedIn(1))
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))
	assert.Equal(t, FetchReady, s.State())
	require.Len(t, s.Items(), 1)
	assert.Equal(t, 1, s.Items()[0].ID)
	assert.Zero(t, e.api.Calls(fakeapi.RouteReadAll), "loading must not mutate")

	n, err := s.MarkAllRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, e.api.Calls(fakeapi.RouteReadAll))
	assert.Len(t, s.Items(), 1, "cards stay until the next load")

	require.NoError(t, s.Load(ctx))
	assert.True(t, s.Empty())
}

func TestNotifications_DismissAndDelete(t *testing.T) {
	e := newEnv(t)
	e.api.AddUser(models.User{ID: 1})
	e.api.AddNotification(models.Notification{ID: 1, UserID: 1})
	e.api.AddNotification(models.Notification{ID: 2, UserID: 1})
	s := NewNotificationsScreen(services.NewNotificationService(e.client), loggedIn(1))
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	require.NoError(t, s.Dismiss(ctx, 1))
	require.NoError(t, s.Delete(ctx, 2))
	assert.Empty(t, s.Items())
	assert.Len(t, e.api.Notifications(), 1)

	require.Error(t, s.Delete(ctx, 2))
}

func TestNotifications_FailedLoad(t *testing.T) {
	e := newEnv(t)
	s := NewNotificationsScreen(services.NewNotificationService(e.client), loggedIn(5))

	err := s.Load(context.Background())
	require.ErrorIs(t, err, client.ErrRequestFailed)
	assert.Equal(t, FetchFailed, s.State())
	assert.Equal(t, "User not found", s.Message())
	assert.False(t, s.Empty())
}

func TestFetchScreens_RequireSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.ErrorIs(t, NewCatalogScreen(services.NewCatalogService(e.client, e.db, logging.Nop{}), nil).Load(ctx), ErrNoSession)
	require.ErrorIs(t, NewProfileScreen(services.NewProfileService(e.client, nil), nil).Load(ctx), ErrNoSession)
	require.ErrorIs(t, NewNotificationsScreen(services.NewNotificationService(e.client), nil).Load(ctx), ErrNoSession)

	_, err := NewNotificationsScreen(services.NewNotificationService(e.client), nil).MarkAllRead(ctx)
	require.ErrorIs(t, err, ErrNoSession)
}

func TestCatalog_EmptyThenOfflineSnapshot(t *testing.T) {
	e := newEnv(t)
	s := NewCatalogScreen(services.NewCatalogService(e.client, e.db, logging.Nop{}), loggedIn(1))
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))
	assert.True(t, s.Empty())

	e.api.AddProduct(models.Product{ID: 1, UserID: 1, Name: "Lamp", Price: 10})
	require.NoError(t, s.Load(ctx))
	assert.False(t, s.Empty())
	assert.False(t, s.Stale())

	e.api.Close()
	require.NoError(t, s.Load(ctx))
	assert.True(t, s.Stale())
	require.Len(t, s.Items(), 1)

	p, stale, err := s.Select(ctx, 1)
	require.NoError(t, err)
	assert.True(t, stale)
	assert.Equal(t, "Lamp", p.Name)
}

func TestCatalog_FailedLoadDoesNotShowEmptyList(t *testing.T) {
	e := newEnv(t)
	e.api.Fail(fakeapi.RouteListProducts, http.StatusInternalServerError, `{"oops":true}`)
	s := NewCatalogScreen(services.NewCatalogService(e.client, e.db, logging.Nop{}), loggedIn(1))

	require.Error(t, s.Load(context.Background()))
	assert.Equal(t, FetchFailed, s.State())
	assert.False(t, s.Empty())
	assert.Equal(t, "failed to load products", s.Message())
}

type localImages struct{}

func (localImages) Open(_ context.Context, uri string) (io.ReadCloser, error) {
	return os.Open(uri)
}

func TestProfile_LoadAndSaveImage(t *testing.T) {
	e := newEnv(t)
	img := filepath.Join(t.TempDir(), "face.png")
	require.NoError(t, os.WriteFile(img, []byte("face"), 0o600))
	e.api.AddUser(models.User{ID: 3, Name: "Caio", Image: &img})

	s := NewProfileScreen(services.NewProfileService(e.client, localImages{}), loggedIn(3))
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))
	assert.Equal(t, "Caio", s.User().Name)

	path, err := s.SaveImage(ctx, t.TempDir())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "user-3-face.png"))
}
