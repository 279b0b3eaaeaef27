package screens

import (
	"context"

	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/client/services"
	"github.com/dmitrijs2005/catalog/internal/client/session"
)

// CatalogScreen lists every item. When the server is down it shows the last
// saved listing and reports it as stale.
type CatalogScreen struct {
	fetch[services.Listing]
	catalog services.CatalogService
	session *session.Session
}

func NewCatalogScreen(catalog services.CatalogService, s *session.Session) *CatalogScreen {
	return &CatalogScreen{catalog: catalog, session: s}
}

func (c *CatalogScreen) Load(ctx context.Context) error {
	if err := session.Require(c.session); err != nil {
		return err
	}
	c.begin()
	listing, err := c.catalog.List(ctx)
	return c.finish(listing, err)
}

func (c *CatalogScreen) Items() []models.Product {
	_, l, _ := c.get()
	return l.Products
}

func (c *CatalogScreen) Stale() bool {
	_, l, _ := c.get()
	return l.Stale
}

func (c *CatalogScreen) Listing() services.Listing {
	_, l, _ := c.get()
	return l
}

// Empty reports a Ready screen with nothing to show.
func (c *CatalogScreen) Empty() bool {
	st, l, _ := c.get()
	return st == FetchReady && len(l.Products) == 0
}

// Select opens the detail of one item. The bool is true when it came from
// the offline snapshot.
func (c *CatalogScreen) Select(ctx context.Context, id int) (models.Product, bool, error) {
	if err := session.Require(c.session); err != nil {
		return models.Product{}, false, err
	}
	return c.catalog.Get(ctx, id)
}
