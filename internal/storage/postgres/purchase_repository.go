package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/christheg21/Firesale-2/internal/domain"
)

type PurchaseRepository struct {
	pool *pgxpool.Pool
}

func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

func (r *PurchaseRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *PurchaseRepository) GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error) {
	const query = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE id = $1
FOR UPDATE`

	res, err := scanReservation(r.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Reservation{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

func (r *PurchaseRepository) GetItem(ctx context.Context, id string) (domain.Item, error) {
	return getItem(ctx, r.queryRow, id)
}

// MarkFulfilled flips a pending reservation to fulfilled.
func (r *PurchaseRepository) MarkFulfilled(ctx context.Context, reservationID string) error {
	const stmt = `UPDATE reservations SET status = 'fulfilled' WHERE id = $1 AND status = 'pending'`

	tag, err := r.exec(ctx, stmt, reservationID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("fulfil reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyTerminal
	}
	return nil
}

func (r *PurchaseRepository) CreatePurchase(ctx context.Context, p domain.Purchase) error {
	const stmt = `
INSERT INTO purchases (id, reservation_id, item_id, user_id, store_id, quantity, unit_price, created_at, pickup_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.exec(ctx, stmt,
		p.ID,
		p.ReservationID,
		p.ItemID,
		p.UserID,
		p.StoreID,
		p.Quantity,
		p.UnitPrice,
		p.CreatedAt,
		p.PickupBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// A concurrent confirm already produced a purchase for this
			// reservation.
			return domain.ErrAlreadyTerminal
		}
		if isForeignKeyViolation(err) {
			return domain.ErrItemNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepository) GetPurchaseByReservationID(ctx context.Context, reservationID string) (*domain.Purchase, error) {
	const query = `
SELECT id, reservation_id, item_id, user_id, store_id, quantity, unit_price, created_at, pickup_by
FROM purchases
WHERE reservation_id = $1`

	var p domain.Purchase
	err := r.queryRow(ctx, query, reservationID).Scan(
		&p.ID,
		&p.ReservationID,
		&p.ItemID,
		&p.UserID,
		&p.StoreID,
		&p.Quantity,
		&p.UnitPrice,
		&p.CreatedAt,
		&p.PickupBy,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

func (r *PurchaseRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *PurchaseRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
