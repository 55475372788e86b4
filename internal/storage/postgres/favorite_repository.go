package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/christheg21/Firesale-2/internal/domain"
)

type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

func (r *FavoriteRepository) UpsertFavorite(ctx context.Context, fav domain.Favorite) error {
	const stmt = `
INSERT INTO favorites (user_id, item_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, item_id) DO NOTHING`

	_, err := r.exec(ctx, stmt, fav.UserID, fav.ItemID, fav.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrItemNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("upsert favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) DeleteFavorite(ctx context.Context, userID, itemID string) error {
	const stmt = `DELETE FROM favorites WHERE user_id = $1 AND item_id = $2`

	if _, err := r.exec(ctx, stmt, userID, itemID); err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) ListFavoriteItems(ctx context.Context, userID string) ([]domain.Item, error) {
	const query = `
SELECT i.id, i.store_id, i.name, i.category, i.original_price, i.discount_price, i.quantity_available, i.time_left, i.created_at
FROM favorites f
JOIN items i ON i.id = f.item_id
WHERE f.user_id = $1
ORDER BY f.created_at DESC, i.id DESC`

	rows, err := r.query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *FavoriteRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *FavoriteRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
