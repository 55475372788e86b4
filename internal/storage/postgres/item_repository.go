package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/christheg21/Firesale-2/internal/domain"
)

// ItemRepository is the inventory ledger: quantity_available changes only
// through the conditional updates below.
type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

func (r *ItemRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// TryDecrement is a single-statement compare-and-swap: the quantity check and
// the decrement happen in one row-locking UPDATE, so two buyers racing for
// the last unit serialize and exactly one wins.
func (r *ItemRepository) TryDecrement(ctx context.Context, itemID string, amount int) (domain.Item, error) {
	const stmt = `
UPDATE items
SET quantity_available = quantity_available - $2
WHERE id = $1 AND quantity_available >= $2
RETURNING id, store_id, name, category, original_price, discount_price, quantity_available, time_left, created_at`

	var item domain.Item
	err := r.queryRow(ctx, stmt, itemID, amount).Scan(
		&item.ID,
		&item.StoreID,
		&item.Name,
		&item.Category,
		&item.OriginalPrice,
		&item.DiscountPrice,
		&item.QuantityAvailable,
		&item.TimeLeft,
		&item.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Item{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			// Zero rows means either no such item or not enough stock.
			var exists bool
			if err := r.queryRow(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`, itemID).Scan(&exists); err != nil {
				return domain.Item{}, fmt.Errorf("check item exists: %w", err)
			}
			if !exists {
				return domain.Item{}, domain.ErrItemNotFound
			}
			return domain.Item{}, domain.ErrInsufficientStock
		}
		return domain.Item{}, fmt.Errorf("decrement item: %w", err)
	}
	return item, nil
}

// Increment returns stock to an item, e.g. when a reservation expires or is
// cancelled.
func (r *ItemRepository) Increment(ctx context.Context, itemID string, amount int) (int, error) {
	const stmt = `
UPDATE items
SET quantity_available = quantity_available + $2
WHERE id = $1
RETURNING quantity_available`

	var quantity int
	err := r.queryRow(ctx, stmt, itemID, amount).Scan(&quantity)
	if err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return 0, domain.ErrItemNotFound
		}
		return 0, fmt.Errorf("increment item: %w", err)
	}
	return quantity, nil
}

func (r *ItemRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ItemRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
