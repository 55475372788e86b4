package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/christheg21/Firesale-2/internal/app"
	"github.com/christheg21/Firesale-2/internal/domain"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

const itemColumns = `id, store_id, name, category, original_price, discount_price, quantity_available, time_left, created_at`

func (r *CatalogRepository) CreateItem(ctx context.Context, item domain.Item) error {
	const stmt = `
INSERT INTO items (id, store_id, name, category, original_price, discount_price, quantity_available, time_left, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.exec(ctx, stmt,
		item.ID,
		item.StoreID,
		item.Name,
		item.Category,
		item.OriginalPrice,
		item.DiscountPrice,
		item.QuantityAvailable,
		item.TimeLeft,
		item.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (r *CatalogRepository) GetItem(ctx context.Context, id string) (domain.Item, error) {
	return getItem(ctx, r.queryRow, id)
}

func (r *CatalogRepository) ListItemsByStore(ctx context.Context, storeID string) ([]domain.Item, error) {
	const query = `
SELECT ` + itemColumns + `
FROM items
WHERE store_id = $1
ORDER BY created_at DESC, id DESC`

	rows, err := r.query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list store items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *CatalogRepository) SearchItems(ctx context.Context, q app.ItemQuery) ([]domain.Item, error) {
	query := `
SELECT ` + itemColumns + `
FROM items
WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
  AND ($2 = '' OR category = $2)`

	switch q.Sort {
	case app.SortPriceAsc:
		query += ` ORDER BY discount_price ASC, id`
	case app.SortPriceDesc:
		query += ` ORDER BY discount_price DESC, id`
	default:
		query += ` ORDER BY created_at DESC, id DESC`
	}

	rows, err := r.query(ctx, query, q.Text, q.Category)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *CatalogRepository) StoreStats(ctx context.Context, storeID string) (domain.StoreStats, error) {
	const query = `
SELECT COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(quantity * unit_price), 0)
FROM purchases
WHERE store_id = $1`

	stats := domain.StoreStats{StoreID: storeID}
	if err := r.queryRow(ctx, query, storeID).Scan(&stats.Purchases, &stats.UnitsSold, &stats.Revenue); err != nil {
		return domain.StoreStats{}, fmt.Errorf("store stats: %w", err)
	}
	return stats, nil
}

func getItem(ctx context.Context, queryRow func(ctx context.Context, sql string, args ...any) pgx.Row, id string) (domain.Item, error) {
	const query = `
SELECT ` + itemColumns + `
FROM items
WHERE id = $1`

	item, err := scanItem(queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Item{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Item{}, domain.ErrItemNotFound
		}
		return domain.Item{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func scanItem(row pgx.Row) (domain.Item, error) {
	var item domain.Item
	err := row.Scan(
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
		return domain.Item{}, err
	}
	return item, nil
}

func collectItems(rows pgx.Rows) ([]domain.Item, error) {
	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("collect items: %w", err)
	}
	return items, nil
}

func (r *CatalogRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CatalogRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *CatalogRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
