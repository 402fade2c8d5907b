package graph

import (
	"context"
	"fmt"
)

// RegisterPurchases records a customer's purchase lines, one merge per line.
// Each line is committed independently: a failure part way through leaves the
// earlier lines applied and the later ones not attempted. Re-running the same
// registration adds the quantities again; it is an accumulation, not a replay.
func RegisterPurchases(ctx context.Context, store Store, customerID int64, lines []PurchaseLine) error {
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := store.MergePurchase(ctx, customerID, line.ProductID, line.Quantity); err != nil {
			return fmt.Errorf("register purchase customer=%d product=%d: %w", customerID, line.ProductID, err)
		}
	}
	return nil
}
