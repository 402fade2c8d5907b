package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/shopgraph/internal/graph"
)

// seededStore returns a MemStore holding two customers, two products with
// brands, and linked purchase facts.
func seededStore(t *testing.T) *graph.MemStore {
	t.Helper()
	s := graph.NewMemStore()
	ctx := context.Background()

	require.NoError(t, s.AddCustomer(ctx, graph.Customer{ID: 1, FirstName: "Ana", LastName: "Li"}))
	require.NoError(t, s.AddCustomer(ctx, graph.Customer{ID: 2, FirstName: "Bo", LastName: "Chen"}))
	require.NoError(t, s.AddBrand(ctx, graph.Brand{ID: 100, Name: "Yamaha", Country: "Japan"}))
	require.NoError(t, s.AddBrand(ctx, graph.Brand{ID: 101, Name: "Fender", Country: "USA"}))
	require.NoError(t, s.AddProduct(ctx, graph.Product{ID: 10, Name: "Piano", BrandName: "Yamaha", Price: 900}))
	require.NoError(t, s.AddProduct(ctx, graph.Product{ID: 11, Name: "Guitar", BrandName: "Fender", Price: 300}))
	require.NoError(t, s.AddPurchaseFact(ctx, graph.PurchaseFact{CustomerID: 1, ProductID: 10, Quantity: 5}))
	require.NoError(t, s.AddPurchaseFact(ctx, graph.PurchaseFact{CustomerID: 2, ProductID: 11, Quantity: 2}))
	require.NoError(t, s.LinkProductBrands(ctx))
	require.NoError(t, s.LinkCustomerPurchases(ctx))
	require.NoError(t, s.LinkProductPurchases(ctx))
	return s
}

func TestBuild(t *testing.T) {
	s := seededStore(t)

	rep, err := Build(context.Background(), s)
	require.NoError(t, err)

	require.Len(t, rep.TopProducts, 2)
	assert.Equal(t, graph.ProductSales{ProductID: 10, ProductName: "Piano", TotalQuantity: 5}, rep.TopProducts[0])

	require.Len(t, rep.TopCustomers, 2)
	assert.Equal(t, "Ana Li", rep.TopCustomers[0].CustomerName)

	require.Len(t, rep.TopBrands, 2)
	assert.Equal(t, "Yamaha", rep.TopBrands[0].BrandName)
}

func TestBuild_EmptyGraph(t *testing.T) {
	rep, err := Build(context.Background(), graph.NewMemStore())
	require.NoError(t, err)
	assert.Empty(t, rep.TopProducts)
	assert.Empty(t, rep.TopCustomers)
	assert.Empty(t, rep.TopBrands)
}

// brokenStore fails one aggregation so error propagation can be observed.
type brokenStore struct {
	graph.Store
}

var errBrandsDown = errors.New("brands query failed")

func (b *brokenStore) TopBrands(context.Context, int) ([]graph.BrandSales, error) {
	return nil, errBrandsDown
}

func TestBuild_PropagatesFirstError(t *testing.T) {
	s := &brokenStore{Store: seededStore(t)}

	rep, err := Build(context.Background(), s)
	require.ErrorIs(t, err, errBrandsDown)
	assert.Nil(t, rep)
}
