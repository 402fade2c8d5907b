//go:build cgo

package graph

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements the Store interface using KuzuDB as the graph backend.
// It requires CGO because the go-kuzu driver wraps KuzuDB's C library.
//
// Every statement that carries caller-supplied values is prepared and executed
// with bound parameters; query text is never assembled from input strings.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(":memory:", cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w: %w", ErrStoreUnavailable, err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w: %w", ErrStoreUnavailable, err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path. KuzuDB creates the directory itself for new databases;
// for existing databases the directory must contain valid KuzuDB files.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	// Ensure parent directory exists (KuzuDB creates the leaf directory).
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(dbPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open file database: %w: %w", ErrStoreUnavailable, err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w: %w", ErrStoreUnavailable, err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema.
// Order matters: node tables must precede relationship tables.
//
// Purchase carries a synthetic "customerID:productID" primary key because the
// composite pair must be unique and KuzuDB keys are single-column.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Customer(
		id INT64,
		first_name STRING,
		last_name STRING,
		PRIMARY KEY(id)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS Product(
		id INT64,
		name STRING,
		brand_name STRING,
		price INT64,
		PRIMARY KEY(id)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS Brand(
		id INT64,
		name STRING,
		country STRING,
		PRIMARY KEY(id)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS Purchase(
		id STRING,
		customer_id INT64,
		product_id INT64,
		quantity INT64,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS BELONGS_TO_BRAND(FROM Product TO Brand)`,
	`CREATE REL TABLE IF NOT EXISTS MADE_PURCHASE(FROM Customer TO Purchase)`,
	`CREATE REL TABLE IF NOT EXISTS SOLD_AS(FROM Product TO Purchase)`,
}

// InitSchema creates all node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// factID produces the synthetic Purchase primary key for a
// (customer, product) pair.
func factID(customerID, productID int64) string {
	return fmt.Sprintf("%d:%d", customerID, productID)
}

// ---------- Node creates ----------

// AddCustomer inserts a Customer node.
func (s *KuzuStore) AddCustomer(_ context.Context, c Customer) error {
	return s.exec(
		"CREATE (c:Customer {id: $id, first_name: $fn, last_name: $ln})",
		map[string]any{"id": c.ID, "fn": c.FirstName, "ln": c.LastName},
	)
}

// AddProduct inserts a Product node.
func (s *KuzuStore) AddProduct(_ context.Context, p Product) error {
	return s.exec(
		"CREATE (p:Product {id: $id, name: $name, brand_name: $brand, price: $price})",
		map[string]any{"id": p.ID, "name": p.Name, "brand": p.BrandName, "price": p.Price},
	)
}

// AddBrand inserts a Brand node.
func (s *KuzuStore) AddBrand(_ context.Context, b Brand) error {
	return s.exec(
		"CREATE (b:Brand {id: $id, name: $name, country: $country})",
		map[string]any{"id": b.ID, "name": b.Name, "country": b.Country},
	)
}

// AddPurchaseFact inserts a Purchase node.
func (s *KuzuStore) AddPurchaseFact(_ context.Context, f PurchaseFact) error {
	return s.exec(
		"CREATE (x:Purchase {id: $id, customer_id: $cust, product_id: $prod, quantity: $qty})",
		map[string]any{
			"id":   factID(f.CustomerID, f.ProductID),
			"cust": f.CustomerID,
			"prod": f.ProductID,
			"qty":  f.Quantity,
		},
	)
}

// ---------- Node reads ----------

// GetCustomer retrieves a single Customer by id, or returns nil if not found.
func (s *KuzuStore) GetCustomer(_ context.Context, id int64) (*Customer, error) {
	rows, err := s.query(
		"MATCH (c:Customer {id: $id}) RETURN c.id, c.first_name, c.last_name",
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	r := rows[0]
	return &Customer{ID: toInt64(r[0]), FirstName: toString(r[1]), LastName: toString(r[2])}, nil
}

// GetProduct retrieves a single Product by id, or returns nil if not found.
func (s *KuzuStore) GetProduct(_ context.Context, id int64) (*Product, error) {
	rows, err := s.query(
		"MATCH (p:Product {id: $id}) RETURN p.id, p.name, p.brand_name, p.price",
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	r := rows[0]
	return &Product{
		ID:        toInt64(r[0]),
		Name:      toString(r[1]),
		BrandName: toString(r[2]),
		Price:     toInt64(r[3]),
	}, nil
}

// GetBrand retrieves a single Brand by id, or returns nil if not found.
func (s *KuzuStore) GetBrand(_ context.Context, id int64) (*Brand, error) {
	rows, err := s.query(
		"MATCH (b:Brand {id: $id}) RETURN b.id, b.name, b.country",
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	r := rows[0]
	return &Brand{ID: toInt64(r[0]), Name: toString(r[1]), Country: toString(r[2])}, nil
}

// GetPurchaseFact retrieves the fact for a (customer, product) pair, or nil
// if the pair has never been recorded.
func (s *KuzuStore) GetPurchaseFact(_ context.Context, customerID, productID int64) (*PurchaseFact, error) {
	rows, err := s.query(
		"MATCH (x:Purchase {id: $id}) RETURN x.customer_id, x.product_id, x.quantity",
		map[string]any{"id": factID(customerID, productID)},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	r := rows[0]
	return &PurchaseFact{
		CustomerID: toInt64(r[0]),
		ProductID:  toInt64(r[1]),
		Quantity:   toInt64(r[2]),
	}, nil
}

// ---------- Node updates ----------

// UpdateCustomer overwrites the properties of an existing Customer.
func (s *KuzuStore) UpdateCustomer(_ context.Context, c Customer) error {
	return s.exec(
		"MATCH (c:Customer {id: $id}) SET c.first_name = $fn, c.last_name = $ln",
		map[string]any{"id": c.ID, "fn": c.FirstName, "ln": c.LastName},
	)
}

// UpdateProduct overwrites the properties of an existing Product.
func (s *KuzuStore) UpdateProduct(_ context.Context, p Product) error {
	return s.exec(
		"MATCH (p:Product {id: $id}) SET p.name = $name, p.brand_name = $brand, p.price = $price",
		map[string]any{"id": p.ID, "name": p.Name, "brand": p.BrandName, "price": p.Price},
	)
}

// UpdateBrand overwrites the properties of an existing Brand.
func (s *KuzuStore) UpdateBrand(_ context.Context, b Brand) error {
	return s.exec(
		"MATCH (b:Brand {id: $id}) SET b.name = $name, b.country = $country",
		map[string]any{"id": b.ID, "name": b.Name, "country": b.Country},
	)
}

// ---------- Deletes ----------

// DeleteCustomer detach-deletes the customer node and every purchase fact it
// owns, so no orphaned facts remain.
func (s *KuzuStore) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.exec(
		"MATCH (c:Customer {id: $id}) DETACH DELETE c",
		map[string]any{"id": id},
	); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.exec(
		"MATCH (x:Purchase) WHERE x.customer_id = $id DETACH DELETE x",
		map[string]any{"id": id},
	)
}

// DeleteProduct detach-deletes the product node and every purchase fact that
// references it.
func (s *KuzuStore) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.exec(
		"MATCH (p:Product {id: $id}) DETACH DELETE p",
		map[string]any{"id": id},
	); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.exec(
		"MATCH (x:Purchase) WHERE x.product_id = $id DETACH DELETE x",
		map[string]any{"id": id},
	)
}

// DeleteBrand detach-deletes the brand node. Products keep their denormalized
// brand_name property.
func (s *KuzuStore) DeleteBrand(_ context.Context, id int64) error {
	return s.exec(
		"MATCH (b:Brand {id: $id}) DETACH DELETE b",
		map[string]any{"id": id},
	)
}

// ---------- Edge derivation ----------

// LinkProductBrands merges a BELONGS_TO_BRAND edge for every product whose
// brand_name matches a brand's name.
func (s *KuzuStore) LinkProductBrands(_ context.Context) error {
	return s.exec(
		`MATCH (p:Product), (b:Brand)
		 WHERE p.brand_name = b.name
		 MERGE (p)-[:BELONGS_TO_BRAND]->(b)`,
		nil,
	)
}

// LinkCustomerPurchases merges a MADE_PURCHASE edge for every fact whose
// customer_id matches a customer's id.
func (s *KuzuStore) LinkCustomerPurchases(_ context.Context) error {
	return s.exec(
		`MATCH (c:Customer), (x:Purchase)
		 WHERE c.id = x.customer_id
		 MERGE (c)-[:MADE_PURCHASE]->(x)`,
		nil,
	)
}

// LinkProductPurchases merges a SOLD_AS edge for every fact whose product_id
// matches a product's id.
func (s *KuzuStore) LinkProductPurchases(_ context.Context) error {
	return s.exec(
		`MATCH (p:Product), (x:Purchase)
		 WHERE p.id = x.product_id
		 MERGE (p)-[:SOLD_AS]->(x)`,
		nil,
	)
}

// ---------- Ledger upsert ----------

// MergePurchase accumulates quantity for one (customer, product) pair. The
// conditional merge is a single statement, so two concurrent registrations of
// the same pair cannot lose an increment. The incident edges are merged
// afterwards; a missing customer or product simply leaves that edge uncreated.
func (s *KuzuStore) MergePurchase(ctx context.Context, customerID, productID, quantity int64) error {
	params := map[string]any{
		"id":   factID(customerID, productID),
		"cust": customerID,
		"prod": productID,
		"qty":  quantity,
	}
	if err := s.exec(
		`MERGE (x:Purchase {id: $id})
		 ON CREATE SET x.customer_id = $cust, x.product_id = $prod, x.quantity = $qty
		 ON MATCH SET x.quantity = x.quantity + $qty`,
		params,
	); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.exec(
		`MATCH (c:Customer {id: $cust}), (x:Purchase {id: $id})
		 MERGE (c)-[:MADE_PURCHASE]->(x)`,
		params,
	); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.exec(
		`MATCH (p:Product {id: $prod}), (x:Purchase {id: $id})
		 MERGE (p)-[:SOLD_AS]->(x)`,
		params,
	)
}

// ---------- Aggregations ----------

// TopProducts returns the best-selling products by summed purchase quantity.
func (s *KuzuStore) TopProducts(_ context.Context, limit int) ([]ProductSales, error) {
	rows, err := s.query(
		`MATCH (p:Product)-[:SOLD_AS]->(x:Purchase)
		 RETURN p.id, p.name, SUM(x.quantity) AS total
		 ORDER BY total DESC
		 LIMIT $lim`,
		map[string]any{"lim": int64(limit)},
	)
	if err != nil {
		return nil, err
	}
	out := make([]ProductSales, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProductSales{
			ProductID:     toInt64(r[0]),
			ProductName:   toString(r[1]),
			TotalQuantity: toInt64(r[2]),
		})
	}
	return out, nil
}

// TopCustomers returns the customers with the highest summed purchase
// quantity. The display name is assembled here so a missing name component
// renders as an empty string.
func (s *KuzuStore) TopCustomers(_ context.Context, limit int) ([]CustomerSales, error) {
	rows, err := s.query(
		`MATCH (c:Customer)-[:MADE_PURCHASE]->(x:Purchase)
		 RETURN c.id, c.first_name, c.last_name, SUM(x.quantity) AS total
		 ORDER BY total DESC
		 LIMIT $lim`,
		map[string]any{"lim": int64(limit)},
	)
	if err != nil {
		return nil, err
	}
	out := make([]CustomerSales, 0, len(rows))
	for _, r := range rows {
		c := Customer{FirstName: toString(r[1]), LastName: toString(r[2])}
		out = append(out, CustomerSales{
			CustomerID:    toInt64(r[0]),
			CustomerName:  c.FullName(),
			TotalQuantity: toInt64(r[3]),
		})
	}
	return out, nil
}

// TopBrands returns the brands with the highest summed purchase quantity,
// reached through Product nodes.
func (s *KuzuStore) TopBrands(_ context.Context, limit int) ([]BrandSales, error) {
	rows, err := s.query(
		`MATCH (b:Brand)<-[:BELONGS_TO_BRAND]-(p:Product)-[:SOLD_AS]->(x:Purchase)
		 RETURN b.name, b.country, SUM(x.quantity) AS total
		 ORDER BY total DESC
		 LIMIT $lim`,
		map[string]any{"lim": int64(limit)},
	)
	if err != nil {
		return nil, err
	}
	out := make([]BrandSales, 0, len(rows))
	for _, r := range rows {
		out = append(out, BrandSales{
			BrandName:     toString(r[0]),
			BrandCountry:  toString(r[1]),
			TotalQuantity: toInt64(r[2]),
		})
	}
	return out, nil
}

// ---------- Co-purchase ----------

// coPurchasePattern is the self-join over the purchase graph shared by both
// co-purchase passes: target customer -> fact <- product -> fact <- other
// customer. Relationship uniqueness within a match keeps the two facts
// distinct.
const coPurchasePattern = `MATCH (cl:Customer)-[:MADE_PURCHASE]->(:Purchase)` +
	`<-[:SOLD_AS]-(p:Product)-[:SOLD_AS]->(:Purchase)<-[:MADE_PURCHASE]-(other:Customer)`

// CoPurchasers finds every other customer who bought at least two of the
// same products as the named customer, with the overlapping product names.
//
// Two passes: the discovery pass applies the >1 distinct-product threshold,
// the enrichment pass re-runs the traversal per candidate to enumerate the
// overlap. Both passes bind every caller value as a parameter.
func (s *KuzuStore) CoPurchasers(ctx context.Context, firstName, lastName string) ([]CoPurchaser, error) {
	rows, err := s.query(
		coPurchasePattern+`
		 WHERE cl.first_name = $first AND cl.last_name = $last AND other.id <> cl.id
		 WITH other, count(DISTINCT p) AS shared
		 WHERE shared > 1
		 RETURN DISTINCT other.first_name, other.last_name`,
		map[string]any{"first": firstName, "last": lastName},
	)
	if err != nil {
		return nil, err
	}

	out := make([]CoPurchaser, 0, len(rows))
	for _, r := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidate := CoPurchaser{FirstName: toString(r[0]), LastName: toString(r[1])}
		prodRows, err := s.query(
			coPurchasePattern+`
			 WHERE cl.first_name = $first AND cl.last_name = $last
			   AND other.first_name = $ofirst AND other.last_name = $olast
			   AND other.id <> cl.id
			 RETURN DISTINCT p.name`,
			map[string]any{
				"first":  firstName,
				"last":   lastName,
				"ofirst": candidate.FirstName,
				"olast":  candidate.LastName,
			},
		)
		if err != nil {
			return nil, err
		}
		for _, pr := range prodRows {
			candidate.CommonProducts = append(candidate.CommonProducts, toString(pr[0]))
		}
		out = append(out, candidate)
	}
	return out, nil
}

// ---------- Lookup queries ----------

// PurchasesByCustomer lists the products the named customer has bought, with
// the recorded running quantities.
func (s *KuzuStore) PurchasesByCustomer(_ context.Context, firstName, lastName string) ([]CustomerPurchase, error) {
	rows, err := s.query(
		`MATCH (c:Customer)-[:MADE_PURCHASE]->(x:Purchase)<-[:SOLD_AS]-(p:Product)
		 WHERE c.first_name = $first AND c.last_name = $last
		 RETURN p.name, p.brand_name, x.quantity`,
		map[string]any{"first": firstName, "last": lastName},
	)
	if err != nil {
		return nil, err
	}
	out := make([]CustomerPurchase, 0, len(rows))
	for _, r := range rows {
		out = append(out, CustomerPurchase{
			ProductName: toString(r[0]),
			BrandName:   toString(r[1]),
			Quantity:    toInt64(r[2]),
		})
	}
	return out, nil
}

// BuyersOfProduct lists the customers who bought the named product.
func (s *KuzuStore) BuyersOfProduct(_ context.Context, productName string) ([]CustomerName, error) {
	rows, err := s.query(
		`MATCH (c:Customer)-[:MADE_PURCHASE]->(:Purchase)<-[:SOLD_AS]-(p:Product)
		 WHERE p.name = $name
		 RETURN DISTINCT c.first_name, c.last_name`,
		map[string]any{"name": productName},
	)
	if err != nil {
		return nil, err
	}
	out := make([]CustomerName, 0, len(rows))
	for _, r := range rows {
		out = append(out, CustomerName{FirstName: toString(r[0]), LastName: toString(r[1])})
	}
	return out, nil
}

// ---------- Stats ----------

// Stats returns counts of all node and edge tables.
func (s *KuzuStore) Stats(_ context.Context) (*GraphStats, error) {
	customers, err := s.countTable("Customer")
	if err != nil {
		return nil, err
	}
	products, err := s.countTable("Product")
	if err != nil {
		return nil, err
	}
	brands, err := s.countTable("Brand")
	if err != nil {
		return nil, err
	}
	purchases, err := s.countTable("Purchase")
	if err != nil {
		return nil, err
	}
	edges, err := s.countEdges()
	if err != nil {
		return nil, err
	}
	return &GraphStats{
		CustomerCount: customers,
		ProductCount:  products,
		BrandCount:    brands,
		PurchaseCount: purchases,
		EdgeCount:     edges,
	}, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	if len(params) == 0 {
		res, err := s.conn.Query(cypher)
		if err != nil {
			return fmt.Errorf("kuzu: execute: %w", wrapKuzuError(err))
		}
		res.Close()
		return nil
	}
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", wrapKuzuError(err))
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", wrapKuzuError(err))
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// wrapKuzuError maps KuzuDB runtime failures onto the package sentinels so
// callers can match them with errors.Is.
func wrapKuzuError(err error) error {
	if strings.Contains(err.Error(), "duplicated primary key") {
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	}
	return err
}

// countTable returns the number of rows in a node table.
func (s *KuzuStore) countTable(table string) (int, error) {
	// Table name is a fixed internal constant, not user input.
	cypher := fmt.Sprintf("MATCH (n:%s) RETURN count(n)", table)
	rows, err := s.query(cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return int(toInt64(rows[0][0])), nil
}

// countEdges returns the total number of edges across all relationship
// tables. InitSchema runs before any Stats call, so a failing count is a real
// store error and must surface rather than read as zero edges.
func (s *KuzuStore) countEdges() (int, error) {
	tables := []EdgeKind{EdgeKindBelongsToBrand, EdgeKindMadePurchase, EdgeKindSoldAs}
	total := 0
	for _, t := range tables {
		cypher := fmt.Sprintf("MATCH ()-[r:%s]->() RETURN count(r)", t)
		rows, err := s.query(cypher, nil)
		if err != nil {
			return 0, err
		}
		if len(rows) > 0 && len(rows[0]) > 0 {
			total += int(toInt64(rows[0][0]))
		}
	}
	return total, nil
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string). Aggregates
// over INT64 columns come back as INT128, which the driver surfaces as
// *big.Int. These helpers safely coerce any -> concrete type.

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case uint64:
		return int64(n)
	case float64:
		return int64(n)
	case *big.Int:
		return n.Int64()
	default:
		return 0
	}
}
