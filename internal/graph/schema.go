package graph

// --- Enums ---

// EdgeKind classifies relationships between nodes in the commerce graph.
type EdgeKind string

const (
	// EdgeKindBelongsToBrand links a Product to its Brand, derived by
	// matching Product.brand_name against Brand.name.
	EdgeKindBelongsToBrand EdgeKind = "BELONGS_TO_BRAND"
	// EdgeKindMadePurchase links a Customer to a PurchaseFact it owns.
	EdgeKindMadePurchase EdgeKind = "MADE_PURCHASE"
	// EdgeKindSoldAs links a Product to a PurchaseFact recording its sale.
	EdgeKindSoldAs EdgeKind = "SOLD_AS"
)

// --- Models ---

// Customer represents a customer node.
type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// FullName concatenates first and last name with a single space. A missing
// component is treated as an empty string, never "null".
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Product represents a product node. BrandName is a denormalized foreign key
// by name, not by brand id.
type Product struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BrandName string `json:"brandName"`
	Price     int64  `json:"price"`
}

// Brand represents a brand node.
type Brand struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// PurchaseFact is the running-total purchase record for one
// (customer, product) pair. At most one fact exists per pair; repeated
// registrations accumulate into Quantity.
type PurchaseFact struct {
	CustomerID int64 `json:"customerId"`
	ProductID  int64 `json:"productId"`
	Quantity   int64 `json:"quantity"`
}

// PurchaseLine is one line item of a purchase registration.
type PurchaseLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// --- Query results ---

// ProductSales is one row of the top-products ranking.
type ProductSales struct {
	ProductID     int64  `json:"productId"`
	ProductName   string `json:"productName"`
	TotalQuantity int64  `json:"totalQuantity"`
}

// CustomerSales is one row of the top-customers ranking. CustomerName is the
// display name built from first and last name.
type CustomerSales struct {
	CustomerID    int64  `json:"customerId"`
	CustomerName  string `json:"customerName"`
	TotalQuantity int64  `json:"totalQuantity"`
}

// BrandSales is one row of the top-brands ranking.
type BrandSales struct {
	BrandName     string `json:"brandName"`
	BrandCountry  string `json:"brandCountry"`
	TotalQuantity int64  `json:"totalQuantity"`
}

// CoPurchaser identifies another customer who bought at least two of the same
// products as the target customer, with the overlapping product names.
// The order of CommonProducts is not specified.
type CoPurchaser struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	CommonProducts []string `json:"commonProducts"`
}

// CustomerPurchase is one product a customer has bought, with the recorded
// running quantity.
type CustomerPurchase struct {
	ProductName string `json:"productName"`
	BrandName   string `json:"brandName"`
	Quantity    int64  `json:"quantity"`
}

// CustomerName is a customer display name pair, used by queries that look
// customers up by what they bought rather than by id.
type CustomerName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// GraphStats summarizes the commerce graph.
type GraphStats struct {
	CustomerCount int `json:"customerCount"`
	ProductCount  int `json:"productCount"`
	BrandCount    int `json:"brandCount"`
	PurchaseCount int `json:"purchaseCount"`
	EdgeCount     int `json:"edgeCount"`
}
