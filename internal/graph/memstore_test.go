package graph

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedScenario loads the reference co-purchase scenario: Ana Li and Bo Chen
// both bought Piano and Guitar.
func seedScenario(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.AddCustomer(ctx, Customer{ID: 1, FirstName: "Ana", LastName: "Li"}))
	require.NoError(t, s.AddCustomer(ctx, Customer{ID: 2, FirstName: "Bo", LastName: "Chen"}))
	require.NoError(t, s.AddProduct(ctx, Product{ID: 10, Name: "Piano", BrandName: "Yamaha", Price: 900}))
	require.NoError(t, s.AddProduct(ctx, Product{ID: 11, Name: "Guitar", BrandName: "Fender", Price: 300}))
	require.NoError(t, s.AddBrand(ctx, Brand{ID: 100, Name: "Yamaha", Country: "Japan"}))
	require.NoError(t, s.AddBrand(ctx, Brand{ID: 101, Name: "Fender", Country: "USA"}))

	facts := []PurchaseFact{
		{CustomerID: 1, ProductID: 10, Quantity: 1},
		{CustomerID: 1, ProductID: 11, Quantity: 1},
		{CustomerID: 2, ProductID: 10, Quantity: 1},
		{CustomerID: 2, ProductID: 11, Quantity: 1},
	}
	for _, f := range facts {
		require.NoError(t, s.AddPurchaseFact(ctx, f))
	}
	deriveEdges(t, s)
}

// deriveEdges runs the three edge-derivation passes.
func deriveEdges(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.LinkProductBrands(ctx))
	require.NoError(t, s.LinkCustomerPurchases(ctx))
	require.NoError(t, s.LinkProductPurchases(ctx))
}

// ---------------------------------------------------------------------------
// Nodes
// ---------------------------------------------------------------------------

func TestMemStore_CustomerRoundTrip(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	c := Customer{ID: 7, FirstName: "Mika", LastName: "Tanaka"}
	require.NoError(t, s.AddCustomer(ctx, c))

	got, err := s.GetCustomer(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c, *got)
}

func TestMemStore_GetCustomer_NotFound(t *testing.T) {
	s := NewMemStore()

	got, err := s.GetCustomer(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, got, "missing customer should be a nil result, not an error")
}

func TestMemStore_DuplicateKey(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.AddCustomer(ctx, Customer{ID: 1, FirstName: "Ana", LastName: "Li"}))
	err := s.AddCustomer(ctx, Customer{ID: 1, FirstName: "Other", LastName: "Person"})
	require.ErrorIs(t, err, ErrDuplicateKey)

	require.NoError(t, s.AddPurchaseFact(ctx, PurchaseFact{CustomerID: 1, ProductID: 2, Quantity: 3}))
	err = s.AddPurchaseFact(ctx, PurchaseFact{CustomerID: 1, ProductID: 2, Quantity: 9})
	require.ErrorIs(t, err, ErrDuplicateKey, "composite (customer, product) key must be unique")
}

func TestMemStore_UpdateCustomer(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.AddCustomer(ctx, Customer{ID: 1, FirstName: "Ana", LastName: "Li"}))
	require.NoError(t, s.UpdateCustomer(ctx, Customer{ID: 1, FirstName: "Anya", LastName: "Li"}))

	got, err := s.GetCustomer(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Anya", got.FirstName)

	// Updating a missing node is a no-op.
	require.NoError(t, s.UpdateCustomer(ctx, Customer{ID: 5, FirstName: "Ghost"}))
	got, err = s.GetCustomer(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ---------------------------------------------------------------------------
// Edge derivation
// ---------------------------------------------------------------------------

func TestMemStore_DeriveEdges_Idempotent(t *testing.T) {
	s := NewMemStore()
	seedScenario(t, s)
	ctx := context.Background()

	before, err := s.Stats(ctx)
	require.NoError(t, err)
	// 2 brand edges + 4 customer edges + 4 product edges.
	assert.Equal(t, 10, before.EdgeCount)

	// Re-running derivation on an unchanged node set adds nothing.
	deriveEdges(t, s)
	after, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.EdgeCount, after.EdgeCount)
}

func TestMemStore_DeriveEdges_DanglingFactTolerated(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	// Fact references customer 9 and product 9, neither of which exists.
	require.NoError(t, s.AddPurchaseFact(ctx, PurchaseFact{CustomerID: 9, ProductID: 9, Quantity: 1}))
	deriveEdges(t, s)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.EdgeCount, "dangling fact gets no edges")
	assert.Equal(t, 1, stats.PurchaseCount, "the fact node itself remains")
}

// ---------------------------------------------------------------------------
// Ledger upsert
// ---------------------------------------------------------------------------

func TestMemStore_MergePurchase_Additive(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.AddCustomer(ctx, Customer{ID: 1, FirstName: "Ana", LastName: "Li"}))
	require.NoError(t, s.AddProduct(ctx, Product{ID: 7, Name: "Drum", BrandName: "Pearl", Price: 500}))

	require.NoError(t, s.MergePurchase(ctx, 1, 7, 3))
	require.NoError(t, s.MergePurchase(ctx, 1, 7, 2))

	got, err := s.GetPurchaseFact(ctx, 1, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.Quantity, "quantity is a running total, not the last value")

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PurchaseCount, "exactly one fact per (customer, product) pair")
	assert.Equal(t, 2, stats.EdgeCount, "one MADE_PURCHASE and one SOLD_AS edge, merged not duplicated")
}

func TestMemStore_MergePurchase_MissingEndpoints(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	// Neither the customer nor the product exists; the fact is still
	// recorded, just without edges.
	require.NoError(t, s.MergePurchase(ctx, 3, 4, 2))

	got, err := s.GetPurchaseFact(ctx, 3, 4)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.Quantity)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.EdgeCount)
}

// ---------------------------------------------------------------------------
// Aggregations
// ---------------------------------------------------------------------------

// seedRankings loads one customer and n products with strictly decreasing
// totals so ordering assertions are deterministic (no ties).
func seedRankings(t *testing.T, s Store, n int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.AddCustomer(ctx, Customer{ID: 1, FirstName: "Ana", LastName: "Li"}))
	for i := 1; i <= n; i++ {
		id := int64(i)
		require.NoError(t, s.AddProduct(ctx, Product{ID: id, Name: fmt.Sprintf("product-%d", i), BrandName: "Acme", Price: 10}))
		require.NoError(t, s.AddPurchaseFact(ctx, PurchaseFact{CustomerID: 1, ProductID: id, Quantity: int64(100 - i)}))
	}
	deriveEdges(t, s)
}

func TestMemStore_TopProducts(t *testing.T) {
	s := NewMemStore()
	seedRankings(t, s, 7)
	ctx := context.Background()

	rows, err := s.TopProducts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, rows, 5, "result count is min(5, distinct products)")

	for i, row := range rows {
		assert.Equal(t, int64(i+1), row.ProductID)
		assert.Equal(t, int64(99-i), row.TotalQuantity)
		if i > 0 {
			assert.GreaterOrEqual(t, rows[i-1].TotalQuantity, row.TotalQuantity, "descending by summed quantity")
		}
	}
}

func TestMemStore_TopProducts_FewerGroupsThanLimit(t *testing.T) {
	s := NewMemStore()
	seedRankings(t, s, 2)

	rows, err := s.TopProducts(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestMemStore_TopCustomers(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.AddCustomer(ctx, Customer{ID: 1, FirstName: "Ana", LastName: "Li"}))
	require.NoError(t, s.AddCustomer(ctx, Customer{ID: 2, FirstName: "Bo", LastName: ""}))
	require.NoError(t, s.AddProduct(ctx, Product{ID: 10, Name: "Piano", BrandName: "Yamaha", Price: 900}))
	require.NoError(t, s.AddPurchaseFact(ctx, PurchaseFact{CustomerID: 1, ProductID: 10, Quantity: 4}))
	require.NoError(t, s.AddPurchaseFact(ctx, PurchaseFact{CustomerID: 2, ProductID: 10, Quantity: 9}))
	deriveEdges(t, s)

	rows, err := s.TopCustomers(ctx, 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(2), rows[0].CustomerID)
	assert.Equal(t, "Bo ", rows[0].CustomerName, "missing name component renders as empty string, never null")
	assert.Equal(t, int64(9), rows[0].TotalQuantity)
	assert.Equal(t, "Ana Li", rows[1].CustomerName)
}

func TestMemStore_TopBrands(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.AddBrand(ctx, Brand{ID: 100, Name: "Yamaha", Country: "Japan"}))
	require.NoError(t, s.AddBrand(ctx, Brand{ID: 101, Name: "Fender", Country: "USA"}))
	require.NoError(t, s.AddProduct(ctx, Product{ID: 10, Name: "Piano", BrandName: "Yamaha", Price: 900}))
	require.NoError(t, s.AddProduct(ctx, Product{ID: 11, Name: "Keytar", BrandName: "Yamaha", Price: 400}))
	require.NoError(t, s.AddProduct(ctx, Product{ID: 12, Name: "Guitar", BrandName: "Fender", Price: 300}))
	require.NoError(t, s.AddCustomer(ctx, Customer{ID: 1, FirstName: "Ana", LastName: "Li"}))
	require.NoError(t, s.AddPurchaseFact(ctx, PurchaseFact{CustomerID: 1, ProductID: 10, Quantity: 2}))
	require.NoError(t, s.AddPurchaseFact(ctx, PurchaseFact{CustomerID: 1, ProductID: 11, Quantity: 3}))
	require.NoError(t, s.AddPurchaseFact(ctx, PurchaseFact{CustomerID: 1, ProductID: 12, Quantity: 4}))
	deriveEdges(t, s)

	rows, err := s.TopBrands(ctx, 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, BrandSales{BrandName: "Yamaha", BrandCountry: "Japan", TotalQuantity: 5}, rows[0])
	assert.Equal(t, BrandSales{BrandName: "Fender", BrandCountry: "USA", TotalQuantity: 4}, rows[1])
}

// ---------------------------------------------------------------------------
// Co-purchase
// ---------------------------------------------------------------------------

func TestMemStore_CoPurchasers_Scenario(t *testing.T) {
	s := NewMemStore()
	seedScenario(t, s)

	out, err := s.CoPurchasers(context.Background(), "Ana", "Li")
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "Bo", out[0].FirstName)
	assert.Equal(t, "Chen", out[0].LastName)
	// Order of the overlap list is unspecified; assert set equality.
	assert.ElementsMatch(t, []string{"Piano", "Guitar"}, out[0].CommonProducts)
}

func TestMemStore_CoPurchasers_Threshold(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.AddCustomer(ctx, Customer{ID: 1, FirstName: "Ana", LastName: "Li"}))
	require.NoError(t, s.AddCustomer(ctx, Customer{ID: 2, FirstName: "Bo", LastName: "Chen"}))
	require.NoError(t, s.AddCustomer(ctx, Customer{ID: 3, FirstName: "Cal", LastName: "Ruiz"}))
	for id, name := range map[int64]string{10: "Piano", 11: "Guitar", 12: "Flute"} {
		require.NoError(t, s.AddProduct(ctx, Product{ID: id, Name: name, BrandName: "Acme", Price: 10}))
	}
	// Ana bought all three. Bo shares two products, Cal shares exactly one.
	facts := []PurchaseFact{
		{CustomerID: 1, ProductID: 10, Quantity: 1},
		{CustomerID: 1, ProductID: 11, Quantity: 1},
		{CustomerID: 1, ProductID: 12, Quantity: 1},
		{CustomerID: 2, ProductID: 10, Quantity: 1},
		{CustomerID: 2, ProductID: 11, Quantity: 1},
		{CustomerID: 3, ProductID: 12, Quantity: 1},
	}
	for _, f := range facts {
		require.NoError(t, s.AddPurchaseFact(ctx, f))
	}
	deriveEdges(t, s)

	out, err := s.CoPurchasers(ctx, "Ana", "Li")
	require.NoError(t, err)
	require.Len(t, out, 1, "sharing exactly one product is below the threshold")

	assert.Equal(t, "Bo", out[0].FirstName)
	assert.ElementsMatch(t, []string{"Piano", "Guitar"}, out[0].CommonProducts)
}

func TestMemStore_CoPurchasers_NoPurchases(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.AddCustomer(ctx, Customer{ID: 1, FirstName: "Ana", LastName: "Li"}))

	out, err := s.CoPurchasers(ctx, "Ana", "Li")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMemStore_CoPurchasers_UnknownName(t *testing.T) {
	s := NewMemStore()
	seedScenario(t, s)

	out, err := s.CoPurchasers(context.Background(), "Nobody", "Here")
	require.NoError(t, err)
	assert.Empty(t, out, "unknown customer name is no result, not an error")
}

// Looking customers up by display name is a known weakness: every node
// carrying the name acts as a target, so a second "Ana Li" widens the match.
func TestMemStore_CoPurchasers_DuplicateTargetNames(t *testing.T) {
	s := NewMemStore()
	seedScenario(t, s)
	ctx := context.Background()

	// A second physical node with Ana Li's display name, overlapping with
	// Bo on a third product pair of its own.
	require.NoError(t, s.AddCustomer(ctx, Customer{ID: 3, FirstName: "Ana", LastName: "Li"}))
	require.NoError(t, s.AddProduct(ctx, Product{ID: 12, Name: "Flute", BrandName: "Acme", Price: 50}))
	require.NoError(t, s.AddPurchaseFact(ctx, PurchaseFact{CustomerID: 3, ProductID: 10, Quantity: 1}))
	require.NoError(t, s.AddPurchaseFact(ctx, PurchaseFact{CustomerID: 3, ProductID: 12, Quantity: 1}))
	require.NoError(t, s.AddPurchaseFact(ctx, PurchaseFact{CustomerID: 2, ProductID: 12, Quantity: 1}))
	deriveEdges(t, s)

	out, err := s.CoPurchasers(ctx, "Ana", "Li")
	require.NoError(t, err)

	// Bo now overlaps with both Ana nodes; his overlap list is the union.
	require.NotEmpty(t, out)
	var bo *CoPurchaser
	for i := range out {
		if out[i].FirstName == "Bo" {
			bo = &out[i]
		}
	}
	require.NotNil(t, bo)
	assert.ElementsMatch(t, []string{"Piano", "Guitar", "Flute"}, bo.CommonProducts)
}

// ---------------------------------------------------------------------------
// Cascading deletes
// ---------------------------------------------------------------------------

func TestMemStore_DeleteCustomer_Cascades(t *testing.T) {
	s := NewMemStore()
	seedScenario(t, s)
	ctx := context.Background()

	require.NoError(t, s.DeleteCustomer(ctx, 1))

	got, err := s.GetCustomer(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	for _, productID := range []int64{10, 11} {
		f, err := s.GetPurchaseFact(ctx, 1, productID)
		require.NoError(t, err)
		assert.Nil(t, f, "facts owned by the deleted customer are removed")
	}

	// Bo's facts and edges survive.
	f, err := s.GetPurchaseFact(ctx, 2, 10)
	require.NoError(t, err)
	require.NotNil(t, f)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.PurchaseCount)
	// 2 brand edges + Bo's 2 MADE_PURCHASE + 2 SOLD_AS.
	assert.Equal(t, 6, stats.EdgeCount, "edges incident to removed facts are gone")
}

func TestMemStore_DeleteProduct_Cascades(t *testing.T) {
	s := NewMemStore()
	seedScenario(t, s)
	ctx := context.Background()

	require.NoError(t, s.DeleteProduct(ctx, 10))

	got, err := s.GetProduct(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, got)

	for _, customerID := range []int64{1, 2} {
		f, err := s.GetPurchaseFact(ctx, customerID, 10)
		require.NoError(t, err)
		assert.Nil(t, f, "facts referencing the deleted product are removed")
	}

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.PurchaseCount)
	// 1 remaining brand edge + 2 MADE_PURCHASE + 2 SOLD_AS for Guitar.
	assert.Equal(t, 5, stats.EdgeCount)
}

// ---------------------------------------------------------------------------
// Lookup queries
// ---------------------------------------------------------------------------

func TestMemStore_PurchasesByCustomer(t *testing.T) {
	s := NewMemStore()
	seedScenario(t, s)

	out, err := s.PurchasesByCustomer(context.Background(), "Ana", "Li")
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, CustomerPurchase{ProductName: "Guitar", BrandName: "Fender", Quantity: 1}, out[0])
	assert.Equal(t, CustomerPurchase{ProductName: "Piano", BrandName: "Yamaha", Quantity: 1}, out[1])
}

func TestMemStore_BuyersOfProduct(t *testing.T) {
	s := NewMemStore()
	seedScenario(t, s)

	out, err := s.BuyersOfProduct(context.Background(), "Piano")
	require.NoError(t, err)
	assert.ElementsMatch(t, []CustomerName{
		{FirstName: "Ana", LastName: "Li"},
		{FirstName: "Bo", LastName: "Chen"},
	}, out)
}

func TestMemStore_Stats(t *testing.T) {
	s := NewMemStore()
	seedScenario(t, s)

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &GraphStats{
		CustomerCount: 2,
		ProductCount:  2,
		BrandCount:    2,
		PurchaseCount: 4,
		EdgeCount:     10,
	}, stats)
}
