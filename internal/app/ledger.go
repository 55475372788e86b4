package app

import (
	"context"

	"github.com/christheg21/Firesale-2/internal/domain"
)

// InventoryLedger is the single source of truth for remaining sellable
// quantity. Both operations must be applied atomically against the item
// record: two concurrent decrements for the last unit must not both succeed.
type InventoryLedger interface {
	// TryDecrement checks quantityAvailable >= amount and decrements in one
	// conditional write. Returns the updated item, or ErrInsufficientStock /
	// ErrItemNotFound.
	TryDecrement(ctx context.Context, itemID string, amount int) (domain.Item, error)

	// Increment returns stock to the item, e.g. on reservation expiry or
	// cancellation. Returns the new quantity, or ErrItemNotFound if the item
	// was deleted out-of-band.
	Increment(ctx context.Context, itemID string, amount int) (int, error)
}
