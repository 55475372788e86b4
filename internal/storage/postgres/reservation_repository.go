package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/christheg21/Firesale-2/internal/domain"
)

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const reservationColumns = `id, item_id, user_id, store_id, quantity, status, created_at, expires_at`

func (r *ReservationRepository) FindPendingByItemAndUser(ctx context.Context, itemID, userID string) (*domain.Reservation, error) {
	const query = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE item_id = $1 AND user_id = $2 AND status = 'pending'
FOR UPDATE`

	res, err := scanReservation(r.queryRow(ctx, query, itemID, userID))
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find pending reservation: %w", err)
	}
	return &res, nil
}

func (r *ReservationRepository) CreateReservation(ctx context.Context, reservation domain.Reservation) error {
	const stmt = `
INSERT INTO reservations (id, item_id, user_id, store_id, quantity, status, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.exec(ctx, stmt,
		reservation.ID,
		reservation.ItemID,
		reservation.UserID,
		reservation.StoreID,
		reservation.Quantity,
		reservation.Status,
		reservation.CreatedAt,
		reservation.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePending
		}
		if isForeignKeyViolation(err) {
			return domain.ErrItemNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error) {
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

// MarkCancelled flips a pending reservation to cancelled. The status guard
// makes the transition idempotent under concurrency.
func (r *ReservationRepository) MarkCancelled(ctx context.Context, id string) error {
	return r.transition(ctx, id, domain.ReservationStatusCancelled)
}

// MarkExpired flips a pending reservation to expired.
func (r *ReservationRepository) MarkExpired(ctx context.Context, id string) error {
	return r.transition(ctx, id, domain.ReservationStatusExpired)
}

func (r *ReservationRepository) transition(ctx context.Context, id string, status domain.ReservationStatus) error {
	const stmt = `UPDATE reservations SET status = $2 WHERE id = $1 AND status = 'pending'`

	tag, err := r.exec(ctx, stmt, id, status)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("transition reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyTerminal
	}
	return nil
}

// ExpireDue flips every lapsed pending reservation to expired and returns the
// flipped rows so the caller can restock. Rows already terminal are untouched.
func (r *ReservationRepository) ExpireDue(ctx context.Context, now time.Time) ([]domain.Reservation, error) {
	const stmt = `
UPDATE reservations
SET status = 'expired'
WHERE status = 'pending' AND expires_at <= $1
RETURNING ` + reservationColumns

	rows, err := r.query(ctx, stmt, now)
	if err != nil {
		return nil, fmt.Errorf("expire due reservations: %w", err)
	}
	defer rows.Close()

	var expired []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expired reservation: %w", err)
		}
		expired = append(expired, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("expire due reservations: %w", err)
	}
	return expired, nil
}

// ListActiveByUser returns the user's pending, unexpired reservations,
// most recent first. This is the cart.
func (r *ReservationRepository) ListActiveByUser(ctx context.Context, userID string, now time.Time) ([]domain.Reservation, error) {
	const query = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE user_id = $1 AND status = 'pending' AND expires_at > $2
ORDER BY created_at DESC, id DESC`

	rows, err := r.query(ctx, query, userID, now)
	if err != nil {
		return nil, fmt.Errorf("list active reservations: %w", err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active reservations: %w", err)
	}
	return reservations, nil
}

func scanReservation(row pgx.Row) (domain.Reservation, error) {
	var res domain.Reservation
	var status string
	err := row.Scan(
		&res.ID,
		&res.ItemID,
		&res.UserID,
		&res.StoreID,
		&res.Quantity,
		&status,
		&res.CreatedAt,
		&res.ExpiresAt,
	)
	if err != nil {
		return domain.Reservation{}, err
	}
	res.Status = domain.ReservationStatus(status)
	return res, nil
}

func (r *ReservationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ReservationRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *ReservationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
