// Package report assembles the combined sales ranking view.
package report

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/shopgraph/internal/graph"
)

// DefaultLimit is the ranking depth of each section.
const DefaultLimit = 5

// SalesReport bundles the three top-N rankings into one result.
type SalesReport struct {
	TopProducts  []graph.ProductSales  `json:"topProducts"`
	TopCustomers []graph.CustomerSales `json:"topCustomers"`
	TopBrands    []graph.BrandSales    `json:"topBrands"`
}

// Build runs the three aggregation queries in parallel and collects their
// results. It uses errgroup.WithContext so that the first failure cancels the
// derived context and the remaining queries return early. All three queries
// are read-only, so running them concurrently never changes their answers.
func Build(ctx context.Context, store graph.Store) (*SalesReport, error) {
	var rep SalesReport
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := store.TopProducts(gctx, DefaultLimit)
		if err != nil {
			return err
		}
		rep.TopProducts = rows
		return nil
	})
	g.Go(func() error {
		rows, err := store.TopCustomers(gctx, DefaultLimit)
		if err != nil {
			return err
		}
		rep.TopCustomers = rows
		return nil
	})
	g.Go(func() error {
		rows, err := store.TopBrands(gctx, DefaultLimit)
		if err != nil {
			return err
		}
		rep.TopBrands = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &rep, nil
}
