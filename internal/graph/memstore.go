package graph

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
// Traversals and aggregations walk the stored edge sets rather than the raw
// property keys, so its answers track the KuzuStore's edge-based queries.
type MemStore struct {
	mu        sync.RWMutex
	customers map[int64]Customer
	products  map[int64]Product
	brands    map[int64]Brand
	facts     map[string]PurchaseFact // key: "customerID:productID"

	belongsTo    map[int64]map[int64]bool  // product id -> brand ids
	madePurchase map[int64]map[string]bool // customer id -> fact keys
	soldAs       map[int64]map[string]bool // product id -> fact keys
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{
		customers:    make(map[int64]Customer),
		products:     make(map[int64]Product),
		brands:       make(map[int64]Brand),
		facts:        make(map[string]PurchaseFact),
		belongsTo:    make(map[int64]map[int64]bool),
		madePurchase: make(map[int64]map[string]bool),
		soldAs:       make(map[int64]map[string]bool),
	}
}

// memFactKey builds the composite lookup key for a purchase fact.
func memFactKey(customerID, productID int64) string {
	return fmt.Sprintf("%d:%d", customerID, productID)
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}

// ---------- Node creates ----------

// AddCustomer stores a customer node keyed by its id.
func (m *MemStore) AddCustomer(_ context.Context, c Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[c.ID]; ok {
		return fmt.Errorf("mem: create customer %d: %w", c.ID, ErrDuplicateKey)
	}
	m.customers[c.ID] = c
	return nil
}

// AddProduct stores a product node keyed by its id.
func (m *MemStore) AddProduct(_ context.Context, p Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; ok {
		return fmt.Errorf("mem: create product %d: %w", p.ID, ErrDuplicateKey)
	}
	m.products[p.ID] = p
	return nil
}

// AddBrand stores a brand node keyed by its id.
func (m *MemStore) AddBrand(_ context.Context, b Brand) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.brands[b.ID]; ok {
		return fmt.Errorf("mem: create brand %d: %w", b.ID, ErrDuplicateKey)
	}
	m.brands[b.ID] = b
	return nil
}

// AddPurchaseFact stores a purchase fact keyed by its composite pair.
func (m *MemStore) AddPurchaseFact(_ context.Context, f PurchaseFact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := memFactKey(f.CustomerID, f.ProductID)
	if _, ok := m.facts[key]; ok {
		return fmt.Errorf("mem: create purchase %s: %w", key, ErrDuplicateKey)
	}
	m.facts[key] = f
	return nil
}

// ---------- Node reads ----------

// GetCustomer returns the customer for the given id, or nil if not found.
func (m *MemStore) GetCustomer(_ context.Context, id int64) (*Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// GetProduct returns the product for the given id, or nil if not found.
func (m *MemStore) GetProduct(_ context.Context, id int64) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetBrand returns the brand for the given id, or nil if not found.
func (m *MemStore) GetBrand(_ context.Context, id int64) (*Brand, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.brands[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

// GetPurchaseFact returns the fact for a (customer, product) pair, or nil if
// the pair has never been recorded.
func (m *MemStore) GetPurchaseFact(_ context.Context, customerID, productID int64) (*PurchaseFact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.facts[memFactKey(customerID, productID)]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

// ---------- Node updates ----------

// UpdateCustomer overwrites an existing customer; missing ids are a no-op.
func (m *MemStore) UpdateCustomer(_ context.Context, c Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[c.ID]; ok {
		m.customers[c.ID] = c
	}
	return nil
}

// UpdateProduct overwrites an existing product; missing ids are a no-op.
func (m *MemStore) UpdateProduct(_ context.Context, p Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; ok {
		m.products[p.ID] = p
	}
	return nil
}

// UpdateBrand overwrites an existing brand; missing ids are a no-op.
func (m *MemStore) UpdateBrand(_ context.Context, b Brand) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.brands[b.ID]; ok {
		m.brands[b.ID] = b
	}
	return nil
}

// ---------- Deletes ----------

// DeleteCustomer removes the customer, every fact it owns, and all edges
// incident to those facts.
func (m *MemStore) DeleteCustomer(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.customers, id)
	delete(m.madePurchase, id)
	for key, f := range m.facts {
		if f.CustomerID == id {
			m.dropFactLocked(key)
		}
	}
	return nil
}

// DeleteProduct removes the product, every fact referencing it, and all edges
// incident to the product or those facts.
func (m *MemStore) DeleteProduct(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	delete(m.belongsTo, id)
	delete(m.soldAs, id)
	for key, f := range m.facts {
		if f.ProductID == id {
			m.dropFactLocked(key)
		}
	}
	return nil
}

// DeleteBrand removes the brand node and its incoming edges. Products keep
// their denormalized brand_name property.
func (m *MemStore) DeleteBrand(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.brands, id)
	for _, set := range m.belongsTo {
		delete(set, id)
	}
	return nil
}

// dropFactLocked deletes a fact and every edge touching it. Caller holds mu.
func (m *MemStore) dropFactLocked(key string) {
	delete(m.facts, key)
	for _, set := range m.madePurchase {
		delete(set, key)
	}
	for _, set := range m.soldAs {
		delete(set, key)
	}
}

// ---------- Edge derivation ----------

// LinkProductBrands merges BELONGS_TO_BRAND edges by name equality.
func (m *MemStore) LinkProductBrands(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for pid, p := range m.products {
		for bid, b := range m.brands {
			if p.BrandName != b.Name {
				continue
			}
			set, ok := m.belongsTo[pid]
			if !ok {
				set = make(map[int64]bool)
				m.belongsTo[pid] = set
			}
			set[bid] = true
		}
	}
	return nil
}

// LinkCustomerPurchases merges MADE_PURCHASE edges by customer id equality.
// Facts referencing a nonexistent customer are tolerated: no edge is created.
func (m *MemStore) LinkCustomerPurchases(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, f := range m.facts {
		if _, ok := m.customers[f.CustomerID]; ok {
			m.setEdgeLocked(m.madePurchase, f.CustomerID, key)
		}
	}
	return nil
}

// LinkProductPurchases merges SOLD_AS edges by product id equality.
// Facts referencing a nonexistent product are tolerated: no edge is created.
func (m *MemStore) LinkProductPurchases(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, f := range m.facts {
		if _, ok := m.products[f.ProductID]; ok {
			m.setEdgeLocked(m.soldAs, f.ProductID, key)
		}
	}
	return nil
}

// setEdgeLocked records an edge in an adjacency set. Caller holds mu.
func (m *MemStore) setEdgeLocked(adj map[int64]map[string]bool, from int64, to string) {
	set, ok := adj[from]
	if !ok {
		set = make(map[string]bool)
		adj[from] = set
	}
	set[to] = true
}

// ---------- Ledger upsert ----------

// MergePurchase accumulates quantity for one (customer, product) pair and
// merges the incident edges for whichever endpoints exist.
func (m *MemStore) MergePurchase(_ context.Context, customerID, productID, quantity int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := memFactKey(customerID, productID)
	if f, ok := m.facts[key]; ok {
		f.Quantity += quantity
		m.facts[key] = f
	} else {
		m.facts[key] = PurchaseFact{CustomerID: customerID, ProductID: productID, Quantity: quantity}
	}
	if _, ok := m.customers[customerID]; ok {
		m.setEdgeLocked(m.madePurchase, customerID, key)
	}
	if _, ok := m.products[productID]; ok {
		m.setEdgeLocked(m.soldAs, productID, key)
	}
	return nil
}

// ---------- Aggregations ----------

// TopProducts returns the best-selling products by summed purchase quantity.
func (m *MemStore) TopProducts(_ context.Context, limit int) ([]ProductSales, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ProductSales
	for pid, factKeys := range m.soldAs {
		p, ok := m.products[pid]
		if !ok || len(factKeys) == 0 {
			continue
		}
		var total int64
		for key := range factKeys {
			total += m.facts[key].Quantity
		}
		out = append(out, ProductSales{ProductID: pid, ProductName: p.Name, TotalQuantity: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalQuantity > out[j].TotalQuantity })
	return truncate(out, limit), nil
}

// TopCustomers returns the customers with the highest summed quantity.
func (m *MemStore) TopCustomers(_ context.Context, limit int) ([]CustomerSales, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []CustomerSales
	for cid, factKeys := range m.madePurchase {
		c, ok := m.customers[cid]
		if !ok || len(factKeys) == 0 {
			continue
		}
		var total int64
		for key := range factKeys {
			total += m.facts[key].Quantity
		}
		out = append(out, CustomerSales{CustomerID: cid, CustomerName: c.FullName(), TotalQuantity: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalQuantity > out[j].TotalQuantity })
	return truncate(out, limit), nil
}

// TopBrands returns the brands with the highest summed quantity, reached
// through product edges. Grouping is by (name, country), matching the
// aggregate query's return columns.
func (m *MemStore) TopBrands(_ context.Context, limit int) ([]BrandSales, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	type brandKey struct{ name, country string }
	totals := make(map[brandKey]int64)
	for pid, brandSet := range m.belongsTo {
		if len(m.soldAs[pid]) == 0 {
			continue
		}
		var productTotal int64
		for key := range m.soldAs[pid] {
			productTotal += m.facts[key].Quantity
		}
		for bid := range brandSet {
			b, ok := m.brands[bid]
			if !ok {
				continue
			}
			totals[brandKey{b.Name, b.Country}] += productTotal
		}
	}
	var out []BrandSales
	for k, total := range totals {
		out = append(out, BrandSales{BrandName: k.name, BrandCountry: k.country, TotalQuantity: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalQuantity > out[j].TotalQuantity })
	return truncate(out, limit), nil
}

// truncate keeps at most limit leading entries.
func truncate[T any](in []T, limit int) []T {
	if limit > 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}

// ---------- Co-purchase ----------

// CoPurchasers mirrors the two-pass traversal over the in-memory edge sets.
// Every node carrying the target display name acts as a valid target, so
// duplicate names widen the match exactly as they do in the graph query.
func (m *MemStore) CoPurchasers(_ context.Context, firstName, lastName string) ([]CoPurchaser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	targets := m.customersByNameLocked(firstName, lastName)
	if len(targets) == 0 {
		return nil, nil
	}
	productsOf := m.purchasedProductsLocked()

	// Discovery pass: distinct shared products per candidate node, unioned
	// across all target nodes, thresholded at >1. Candidates collapse to
	// display-name identities.
	type nameKey struct{ first, last string }
	candidates := make(map[nameKey]bool)
	for _, other := range m.customers {
		shared := make(map[int64]bool)
		for _, target := range targets {
			if other.ID == target.ID {
				continue
			}
			for pid := range productsOf[other.ID] {
				if productsOf[target.ID][pid] {
					shared[pid] = true
				}
			}
		}
		if len(shared) > 1 {
			candidates[nameKey{other.FirstName, other.LastName}] = true
		}
	}

	// Enrichment pass: per candidate identity, the distinct names of every
	// product shared between any target node and any candidate-named node.
	var out []CoPurchaser
	for cand := range candidates {
		others := m.customersByNameLocked(cand.first, cand.last)
		common := make(map[string]bool)
		for _, target := range targets {
			for _, other := range others {
				if other.ID == target.ID {
					continue
				}
				for pid := range productsOf[other.ID] {
					if productsOf[target.ID][pid] {
						common[m.products[pid].Name] = true
					}
				}
			}
		}
		names := make([]string, 0, len(common))
		for name := range common {
			names = append(names, name)
		}
		sort.Strings(names)
		out = append(out, CoPurchaser{FirstName: cand.first, LastName: cand.last, CommonProducts: names})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].LastName < out[j].LastName
	})
	return out, nil
}

// customersByNameLocked returns every customer node carrying the display
// name. Caller holds mu.
func (m *MemStore) customersByNameLocked(firstName, lastName string) []Customer {
	var out []Customer
	for _, c := range m.customers {
		if c.FirstName == firstName && c.LastName == lastName {
			out = append(out, c)
		}
	}
	return out
}

// purchasedProductsLocked maps each customer id to the set of product ids
// reachable through a MADE_PURCHASE edge and a SOLD_AS edge on the same
// fact. Caller holds mu.
func (m *MemStore) purchasedProductsLocked() map[int64]map[int64]bool {
	factProducts := make(map[string][]int64, len(m.facts))
	for pid, factKeys := range m.soldAs {
		for key := range factKeys {
			factProducts[key] = append(factProducts[key], pid)
		}
	}
	out := make(map[int64]map[int64]bool, len(m.madePurchase))
	for cid, factKeys := range m.madePurchase {
		set := make(map[int64]bool)
		for key := range factKeys {
			for _, pid := range factProducts[key] {
				set[pid] = true
			}
		}
		out[cid] = set
	}
	return out
}

// ---------- Lookup queries ----------

// PurchasesByCustomer lists what the named customer bought.
func (m *MemStore) PurchasesByCustomer(_ context.Context, firstName, lastName string) ([]CustomerPurchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	factProducts := make(map[string][]int64)
	for pid, factKeys := range m.soldAs {
		for key := range factKeys {
			factProducts[key] = append(factProducts[key], pid)
		}
	}
	var out []CustomerPurchase
	for _, c := range m.customersByNameLocked(firstName, lastName) {
		for key := range m.madePurchase[c.ID] {
			f := m.facts[key]
			for _, pid := range factProducts[key] {
				p := m.products[pid]
				out = append(out, CustomerPurchase{ProductName: p.Name, BrandName: p.BrandName, Quantity: f.Quantity})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}

// BuyersOfProduct lists the distinct customers who bought the named product.
func (m *MemStore) BuyersOfProduct(_ context.Context, productName string) ([]CustomerName, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[CustomerName]bool)
	for pid, p := range m.products {
		if p.Name != productName {
			continue
		}
		for key := range m.soldAs[pid] {
			for cid, factKeys := range m.madePurchase {
				if !factKeys[key] {
					continue
				}
				c := m.customers[cid]
				seen[CustomerName{FirstName: c.FirstName, LastName: c.LastName}] = true
			}
		}
	}
	out := make([]CustomerName, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].LastName < out[j].LastName
	})
	return out, nil
}

// ---------- Stats ----------

// Stats returns counts of all node and edge types in the graph.
func (m *MemStore) Stats(_ context.Context) (*GraphStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	edges := 0
	for _, set := range m.belongsTo {
		edges += len(set)
	}
	for _, set := range m.madePurchase {
		edges += len(set)
	}
	for _, set := range m.soldAs {
		edges += len(set)
	}
	return &GraphStats{
		CustomerCount: len(m.customers),
		ProductCount:  len(m.products),
		BrandCount:    len(m.brands),
		PurchaseCount: len(m.facts),
		EdgeCount:     edges,
	}, nil
}
