package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/catalog/internal/client/client"
	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/catalog/internal/client/repositories/products"
	"github.com/dmitrijs2005/catalog/internal/dbx"
	"github.com/dmitrijs2005/catalog/internal/logging"
)

// Listing is one catalog fetch. Stale listings come from the local
// snapshot because the server was unreachable.
type Listing struct {
	Products []models.Product
	Stale    bool
	SyncedAt time.Time
}

type CatalogService interface {
	List(ctx context.Context) (Listing, error)
	Get(ctx context.Context, id int) (models.Product, bool, error)
}

type catalogService struct {
	client client.Client
	db     *sql.DB
	log    logging.Logger
	now    func() time.Time
}

func NewCatalogService(client client.Client, db *sql.DB, log logging.Logger) CatalogService {
	return &catalogService{client: client, db: db, log: log, now: time.Now}
}

// List fetches the catalog and refreshes the snapshot. When the server is
// unavailable it serves the snapshot instead, if one was ever saved.
func (s *catalogService) List(ctx context.Context) (Listing, error) {
	ps, err := s.client.ListProducts(ctx)
	if err == nil {
		syncedAt := s.now().UTC()
		if serr := s.saveSnapshot(ctx, ps, syncedAt); serr != nil {
			s.log.Warn(ctx, "catalog snapshot not saved", "error", serr)
		}
		return Listing{Products: ps, SyncedAt: syncedAt}, nil
	}

	if !errors.Is(err, client.ErrUnavailable) {
		return Listing{}, err
	}

	syncedAt, cached, serr := s.loadSnapshot(ctx)
	if serr != nil || syncedAt.IsZero() {
		if serr != nil {
			s.log.Warn(ctx, "catalog snapshot not readable", "error", serr)
		}
		return Listing{}, err
	}

	s.log.Info(ctx, "serving offline catalog", "synced_at", syncedAt, "items", len(cached))
	return Listing{Products: cached, Stale: true, SyncedAt: syncedAt}, nil
}

// Get returns the item and whether it came from the offline snapshot.
func (s *catalogService) Get(ctx context.Context, id int) (models.Product, bool, error) {
	p, err := s.client.GetProduct(ctx, id)
	if err == nil || !errors.Is(err, client.ErrUnavailable) {
		return p, false, err
	}

	cached, serr := products.NewSQLiteRepository(s.db).Get(ctx, id)
	if serr != nil || cached == nil {
		return models.Product{}, false, err
	}
	return *cached, true, nil
}

func (s *catalogService) saveSnapshot(ctx context.Context, ps []models.Product, at time.Time) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := products.NewSQLiteRepository(tx).ReplaceAll(ctx, ps); err != nil {
			return err
		}
		return metadata.NewSQLiteRepository(tx).SetTime(ctx, metadata.KeyCatalogSyncedAt, at)
	})
}

func (s *catalogService) loadSnapshot(ctx context.Context) (time.Time, []models.Product, error) {
	at, err := metadata.NewSQLiteRepository(s.db).GetTime(ctx, metadata.KeyCatalogSyncedAt)
	if err != nil || at.IsZero() {
		return time.Time{}, nil, err
	}

	ps, err := products.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return time.Time{}, nil, err
	}
	return at, ps, nil
}
