package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/christheg21/Firesale-2/internal/clock"
	"github.com/christheg21/Firesale-2/internal/domain"
)

type ReservationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	FindPendingByItemAndUser(ctx context.Context, itemID, userID string) (*domain.Reservation, error)
	CreateReservation(ctx context.Context, r domain.Reservation) error
	GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error)
	MarkCancelled(ctx context.Context, id string) error
	MarkExpired(ctx context.Context, id string) error
	ExpireDue(ctx context.Context, now time.Time) ([]domain.Reservation, error)
}

const defaultReservationTTL = 24 * time.Hour

type ReservationService struct {
	repo   ReservationRepository
	ledger InventoryLedger
	clock  clock.Clock
	ttl    time.Duration
}

func NewReservationService(repo ReservationRepository, ledger InventoryLedger, clk clock.Clock, opts ...ReservationServiceOption) *ReservationService {
	svc := &ReservationService{
		repo:   repo,
		ledger: ledger,
		clock:  clk,
		ttl:    defaultReservationTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type ReservationServiceOption func(*ReservationService)

// WithReservationTTL overrides the default 24h TTL for new reservations.
func WithReservationTTL(d time.Duration) ReservationServiceOption {
	return func(s *ReservationService) {
		if d > 0 {
			s.ttl = d
		}
	}
}

type ReserveInput struct {
	ItemID   string
	UserID   string
	Quantity int
}

// Reserve places a time-boxed hold on stock. The ledger decrement and the
// reservation record commit together or not at all.
func (s *ReservationService) Reserve(ctx context.Context, in ReserveInput) (domain.Reservation, error) {
	if in.Quantity <= 0 {
		return domain.Reservation{}, domain.ErrInvalidQuantity
	}
	if in.ItemID == "" {
		return domain.Reservation{}, domain.ErrInvalidID
	}
	if in.UserID == "" {
		return domain.Reservation{}, domain.ErrUserIDRequired
	}

	now := s.clock.Now()
	var result domain.Reservation

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindPendingByItemAndUser(txCtx, in.ItemID, in.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.ExpiresAt.After(now) {
				return domain.ErrDuplicatePending
			}
			// Lapsed but not yet swept: expire it here so the new
			// reservation does not trip the one-pending index.
			if err := s.repo.MarkExpired(txCtx, existing.ID); err != nil {
				return err
			}
			if _, err := s.ledger.Increment(txCtx, existing.ItemID, existing.Quantity); err != nil && !errors.Is(err, domain.ErrItemNotFound) {
				return err
			}
		}

		item, err := s.ledger.TryDecrement(txCtx, in.ItemID, in.Quantity)
		if err != nil {
			return err
		}

		reservation := domain.Reservation{
			ID:        uuid.NewString(),
			ItemID:    in.ItemID,
			UserID:    in.UserID,
			StoreID:   item.StoreID,
			Quantity:  in.Quantity,
			Status:    domain.ReservationStatusPending,
			CreatedAt: now,
			ExpiresAt: now.Add(s.ttl),
		}

		// The partial unique index on (item_id, user_id) WHERE pending backs
		// the pre-check under concurrency; a racing insert loses here.
		if err := s.repo.CreateReservation(txCtx, reservation); err != nil {
			return err
		}

		result = reservation
		return nil
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	return result, nil
}

// Cancel releases a pending reservation and returns its stock. Only the
// owning buyer may cancel.
func (s *ReservationService) Cancel(ctx context.Context, reservationID, actorID string) error {
	if reservationID == "" {
		return domain.ErrInvalidID
	}
	if actorID == "" {
		return domain.ErrUserIDRequired
	}

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		reservation, err := s.repo.GetReservationForUpdate(txCtx, reservationID)
		if err != nil {
			return err
		}
		if reservation.UserID != actorID {
			return domain.ErrForbidden
		}
		if reservation.Status.Terminal() {
			return domain.ErrAlreadyTerminal
		}

		if err := s.repo.MarkCancelled(txCtx, reservationID); err != nil {
			return err
		}

		// Restock exactly what the original decrement took.
		if _, err := s.ledger.Increment(txCtx, reservation.ItemID, reservation.Quantity); err != nil {
			if errors.Is(err, domain.ErrItemNotFound) {
				// Item deleted out-of-band; nothing left to restock.
				return nil
			}
			return err
		}
		return nil
	})
}

// SweepExpired transitions every lapsed pending reservation to expired and
// returns its stock. Idempotent: the pending->expired guard in the store means
// a reservation swept twice is restocked once.
func (s *ReservationService) SweepExpired(ctx context.Context) (int, error) {
	now := s.clock.Now()
	var count int

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		expired, err := s.repo.ExpireDue(txCtx, now)
		if err != nil {
			return err
		}
		for _, reservation := range expired {
			if _, err := s.ledger.Increment(txCtx, reservation.ItemID, reservation.Quantity); err != nil {
				if errors.Is(err, domain.ErrItemNotFound) {
					continue
				}
				return err
			}
		}
		count = len(expired)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
