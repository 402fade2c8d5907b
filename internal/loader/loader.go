// Package loader ingests the four commerce CSV streams and derives the
// relationship edges that join them.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/dusk-indust/shopgraph/internal/graph"
)

// ParseError reports a source record whose field could not be coerced to its
// expected type. It aborts the load; nodes created before it remain in the
// graph because the loader is not transactional.
type ParseError struct {
	Source string // logical source name: customers, products, brands, purchases
	Line   int    // 1-based line number, counting the header
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("loader: %s line %d: field %q: %v", e.Source, e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Loader streams the four record sources into the graph store.
type Loader struct {
	store  graph.Store
	client *http.Client
	log    *zap.Logger
}

// New creates a Loader. client and log may be nil, in which case the default
// HTTP client and a no-op logger are used.
func New(store graph.Store, client *http.Client, log *zap.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{store: store, client: client, log: log}
}

// Load ingests all four sources in a fixed order (customers, products,
// brands, purchase facts) and then derives the relationship edges in a final
// pass, once every node that an edge could join on exists.
//
// The load is not transactional: a failure part way through leaves a
// partially loaded graph behind, which is logged rather than hidden.
func (l *Loader) Load(ctx context.Context, src Sources) error {
	steps := []struct {
		name string
		run  func(context.Context, string) (int, error)
		loc  string
	}{
		{"customers", l.loadCustomers, src.Customers},
		{"products", l.loadProducts, src.Products},
		{"brands", l.loadBrands, src.Brands},
		{"purchases", l.loadPurchases, src.Purchases},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := step.run(ctx, step.loc)
		if err != nil {
			l.log.Error("bulk load aborted; graph may be partially loaded",
				zap.String("source", step.name), zap.Error(err))
			return err
		}
		l.log.Info("loaded source", zap.String("source", step.name), zap.Int("records", n))
	}
	if err := l.DeriveEdges(ctx); err != nil {
		l.log.Error("edge derivation failed; graph may be partially linked", zap.Error(err))
		return err
	}
	return nil
}

// DeriveEdges scans the node set and merges the three edge kinds by key
// equality. Merge semantics make it safe to re-run on an unchanged graph.
// Facts whose customer or product does not exist simply get no edge.
func (l *Loader) DeriveEdges(ctx context.Context) error {
	if err := l.store.LinkProductBrands(ctx); err != nil {
		return fmt.Errorf("loader: link product brands: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := l.store.LinkCustomerPurchases(ctx); err != nil {
		return fmt.Errorf("loader: link customer purchases: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := l.store.LinkProductPurchases(ctx); err != nil {
		return fmt.Errorf("loader: link product purchases: %w", err)
	}
	return nil
}

// ---------- Per-source ingestion ----------

func (l *Loader) loadCustomers(ctx context.Context, location string) (int, error) {
	return l.loadSource(ctx, "customers", location, func(rec record) error {
		id, err := rec.intField("id")
		if err != nil {
			return err
		}
		return l.store.AddCustomer(ctx, graph.Customer{
			ID:        id,
			FirstName: rec.field("first_name"),
			LastName:  rec.field("last_name"),
		})
	})
}

func (l *Loader) loadProducts(ctx context.Context, location string) (int, error) {
	return l.loadSource(ctx, "products", location, func(rec record) error {
		id, err := rec.intField("id")
		if err != nil {
			return err
		}
		price, err := rec.intField("price")
		if err != nil {
			return err
		}
		return l.store.AddProduct(ctx, graph.Product{
			ID:        id,
			Name:      rec.field("name"),
			BrandName: rec.field("brand_name"),
			Price:     price,
		})
	})
}

func (l *Loader) loadBrands(ctx context.Context, location string) (int, error) {
	return l.loadSource(ctx, "brands", location, func(rec record) error {
		id, err := rec.intField("id")
		if err != nil {
			return err
		}
		return l.store.AddBrand(ctx, graph.Brand{
			ID:      id,
			Name:    rec.field("name"),
			Country: rec.field("country"),
		})
	})
}

func (l *Loader) loadPurchases(ctx context.Context, location string) (int, error) {
	return l.loadSource(ctx, "purchases", location, func(rec record) error {
		customerID, err := rec.intField("customer_id")
		if err != nil {
			return err
		}
		productID, err := rec.intField("product_id")
		if err != nil {
			return err
		}
		quantity, err := rec.intField("quantity")
		if err != nil {
			return err
		}
		return l.store.AddPurchaseFact(ctx, graph.PurchaseFact{
			CustomerID: customerID,
			ProductID:  productID,
			Quantity:   quantity,
		})
	})
}

// loadSource streams one delimited source and applies handle to each record.
// The first failing record aborts the rest of the source.
func (l *Loader) loadSource(ctx context.Context, name, location string, handle func(record) error) (int, error) {
	rc, err := l.open(ctx, location)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	r := csv.NewReader(rc)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("loader: %s: read header: %w", name, err)
	}
	columns := make(map[string]int, len(header))
	for i, col := range header {
		columns[col] = i
	}

	count := 0
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("loader: %s line %d: %w", name, line, err)
		}
		rec := record{source: name, line: line, columns: columns, row: row}
		if err := handle(rec); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// record is one data row of a source, addressable by header column name.
type record struct {
	source  string
	line    int
	columns map[string]int
	row     []string
}

// field returns the raw value of a named column, or "" if the column is
// absent from the header.
func (r record) field(name string) string {
	idx, ok := r.columns[name]
	if !ok || idx >= len(r.row) {
		return ""
	}
	return r.row[idx]
}

// intField coerces a named column to an integer, failing the record with a
// ParseError when the column is missing or non-numeric.
func (r record) intField(name string) (int64, error) {
	idx, ok := r.columns[name]
	if !ok {
		return 0, &ParseError{Source: r.source, Line: r.line, Field: name,
			Err: fmt.Errorf("column not present in header")}
	}
	v, err := strconv.ParseInt(r.row[idx], 10, 64)
	if err != nil {
		return 0, &ParseError{Source: r.source, Line: r.line, Field: name, Err: err}
	}
	return v, nil
}
