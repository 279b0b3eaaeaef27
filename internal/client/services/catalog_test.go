package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/catalog/internal/client/client"
	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/logging"
	"github.com/dmitrijs2005/catalog/internal/testutil/fakeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_OnlineSavesSnapshot_OfflineServesIt(t *testing.T) {
	db := setupDB(t)
	api, c := setupAPI(t)
	api.AddProduct(models.Product{ID: 1, UserID: 1, Name: "Lamp", Price: 10})
	api.AddProduct(models.Product{ID: 2, UserID: 1, Name: "Chair", Price: 99.5})

	svc := NewCatalogService(c, db, logging.Nop{}).(*catalogService)
	fixed := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	online, err := svc.List(ctx)
	require.NoError(t, err)
	assert.False(t, online.Stale)
	assert.Len(t, online.Products, 2)

	api.Close()

	offline, err := svc.List(ctx)
	require.NoError(t, err)
	assert.True(t, offline.Stale)
	assert.Equal(t, fixed, offline.SyncedAt)
	assert.Equal(t, online.Products, offline.Products)

	p, stale, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.True(t, stale)
	assert.Equal(t, "Chair", p.Name)

	_, _, err = svc.Get(ctx, 9)
	require.ErrorIs(t, err, client.ErrUnavailable)
}

func TestCatalogService_OfflineWithoutSnapshotFails(t *testing.T) {
	api, c := setupAPI(t)
	api.Close()
	svc := NewCatalogService(c, setupDB(t), logging.Nop{})

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
}

func TestCatalogService_RequestFailureIsNotMaskedBySnapshot(t *testing.T) {
	db := setupDB(t)
	api, c := setupAPI(t)
	svc := NewCatalogService(c, db, logging.Nop{})
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)

	api.Fail(fakeapi.RouteListProducts, http.StatusInternalServerError, `{"detail":"db down"}`)
	_, err = svc.List(ctx)
	require.ErrorIs(t, err, client.ErrRequestFailed)
	assert.Equal(t, "db down", err.Error())
}

func TestCatalogService_GetOnline(t *testing.T) {
	api, c := setupAPI(t)
	api.AddProduct(models.Product{ID: 3, Name: "Desk", Price: 300})
	svc := NewCatalogService(c, setupDB(t), logging.Nop{})

	p, stale, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, stale)
	assert.Equal(t, "Desk", p.Name)

	_, _, err = svc.Get(context.Background(), 4)
	require.ErrorIs(t, err, client.ErrRequestFailed)
}
