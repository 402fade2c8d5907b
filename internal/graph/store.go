package graph

import (
	"context"
	"io"
)

// Store is the interface for the commerce graph backend.
// Implementations: KuzuStore (production), MemStore (testing).
// All graph DB access goes through this interface; callers supply plain
// parameters and receive plain result structures.
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Node creates. Each fails with ErrDuplicateKey if the key is taken.
	AddCustomer(ctx context.Context, c Customer) error
	AddProduct(ctx context.Context, p Product) error
	AddBrand(ctx context.Context, b Brand) error
	AddPurchaseFact(ctx context.Context, f PurchaseFact) error

	// Node reads. A missing node yields (nil, nil), not an error.
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	GetBrand(ctx context.Context, id int64) (*Brand, error)
	GetPurchaseFact(ctx context.Context, customerID, productID int64) (*PurchaseFact, error)

	// Node updates. Updating a missing node is a no-op.
	UpdateCustomer(ctx context.Context, c Customer) error
	UpdateProduct(ctx context.Context, p Product) error
	UpdateBrand(ctx context.Context, b Brand) error

	// Deletes. Deleting a Customer or Product detach-deletes the node and
	// cascades to its purchase facts and their incident edges.
	DeleteCustomer(ctx context.Context, id int64) error
	DeleteProduct(ctx context.Context, id int64) error
	DeleteBrand(ctx context.Context, id int64) error

	// Edge derivation. Each scans the node set and merges edges by key
	// equality; re-running on an unchanged graph adds nothing.
	LinkProductBrands(ctx context.Context) error
	LinkCustomerPurchases(ctx context.Context) error
	LinkProductPurchases(ctx context.Context) error

	// MergePurchase records quantity for one (customer, product) pair as a
	// single atomic conditional merge: the fact is created with quantity, or
	// its existing quantity is incremented by it. Both incident edges are
	// merged afterwards; a missing customer or product leaves that edge
	// uncreated.
	MergePurchase(ctx context.Context, customerID, productID, quantity int64) error

	// Aggregations. Read-only; rows ordered by summed quantity descending,
	// truncated to limit. Tie order at the cut-off is not specified.
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)
	TopCustomers(ctx context.Context, limit int) ([]CustomerSales, error)
	TopBrands(ctx context.Context, limit int) ([]BrandSales, error)

	// CoPurchasers finds the other customers who bought at least two of the
	// same products as the named customer, each with the overlapping product
	// names. The target is identified by display name, so duplicate names
	// match every node carrying them.
	CoPurchasers(ctx context.Context, firstName, lastName string) ([]CoPurchaser, error)

	// PurchasesByCustomer lists what the named customer bought.
	PurchasesByCustomer(ctx context.Context, firstName, lastName string) ([]CustomerPurchase, error)

	// BuyersOfProduct lists the customers who bought the named product.
	BuyersOfProduct(ctx context.Context, productName string) ([]CustomerName, error)

	// Stats.
	Stats(ctx context.Context) (*GraphStats, error)
}
