// Package products keeps the last catalog listing in the local database so
// the catalog can still be shown when the server is unreachable.
package products

import (
	"context"

	"github.com/dmitrijs2005/catalog/internal/client/models"
)

type Repository interface {
	// ReplaceAll swaps the stored snapshot for items. Run it inside a
	// transaction when the snapshot must not be observed half written.
	ReplaceAll(ctx context.Context, items []models.Product) error
	List(ctx context.Context) ([]models.Product, error)
	// Get returns (nil, nil) when id is not in the snapshot.
	Get(ctx context.Context, id int) (*models.Product, error)
}
