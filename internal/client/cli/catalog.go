package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/client/screens"
	"github.com/dmitrijs2005/catalog/internal/client/session"
)

// Catalog loads and prints every product. Offline, the last snapshot is
// shown with its age.
func (a *App) Catalog(ctx context.Context) error {
	scr := screens.NewCatalogScreen(a.catalogService, a.currentSession())
	a.navigate(session.RouteCatalog)

	if err := scr.Load(ctx); err != nil {
		fmt.Fprintf(a.out, "! %s\n", scr.Message())
		return err
	}

	if scr.Stale() {
		l := scr.Listing()
		fmt.Fprintf(a.out, "(offline, showing catalog saved %s)\n", l.SyncedAt.Local().Format(time.DateTime))
	}
	if scr.Empty() {
		fmt.Fprintln(a.out, "The catalog is empty")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE")
	for _, p := range scr.Items() {
		fmt.Fprintln(tw, p.String())
	}
	return tw.Flush()
}

// Show prints the detail of one product.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	scr := screens.NewCatalogScreen(a.catalogService, a.currentSession())
	p, stale, err := scr.Select(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "! %s\n", screens.AlertText(err))
		return err
	}

	a.printProduct(p)
	if stale {
		fmt.Fprintln(a.out, "(offline copy)")
	}
	return nil
}

func (a *App) printProduct(p models.Product) {
	fmt.Fprintf(a.out, "#%d %s\n", p.ID, p.Name)
	if d := p.DescriptionText(); d != "" {
		fmt.Fprintln(a.out, d)
	}
	fmt.Fprintf(a.out, "Price: %s\n", p.PriceLabel())
	if img := p.ImageURL(); img != "" {
		fmt.Fprintf(a.out, "Image: %s\n", img)
	}
	fmt.Fprintf(a.out, "Seller: user %d\n", p.UserID)
}

// AddItem prompts for a new product and posts it under the current user.
func (a *App) AddItem(ctx context.Context) error {
	scr := screens.NewAddItemScreen(a.api, a.currentSession(), a.log)
	a.navigate(session.RouteAddItem)

	var f screens.AddItemForm
	var err error

	if f.Name, err = getSimpleText(a.reader, "Item name", a.out); err != nil {
		return err
	}
	if f.Description, err = getMultiline(a.reader, "Description", a.out); err != nil {
		return err
	}
	if f.Price, err = getSimpleText(a.reader, "Price (e.g. 10,99)", a.out); err != nil {
		return err
	}
	image, err := getSimpleText(a.reader, "Image (path or URL)", a.out)
	if err != nil {
		return err
	}
	f.Image = optionalImage(image)

	res, err := scr.Submit(ctx, f)
	if err != nil {
		a.reportForm(scr)
		return err
	}

	fmt.Fprintln(a.out, "Item added!")
	a.navigate(res.Next)
	return a.Catalog(ctx)
}

func parseID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("an id is required")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}
