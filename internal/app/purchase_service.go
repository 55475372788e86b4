package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/christheg21/Firesale-2/internal/clock"
	"github.com/christheg21/Firesale-2/internal/domain"
)

type PurchaseRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error)
	GetItem(ctx context.Context, id string) (domain.Item, error)
	MarkFulfilled(ctx context.Context, reservationID string) error
	CreatePurchase(ctx context.Context, p domain.Purchase) error
	GetPurchaseByReservationID(ctx context.Context, reservationID string) (*domain.Purchase, error)
}

const defaultPickupWindow = 7 * 24 * time.Hour

type PurchaseService struct {
	repo         PurchaseRepository
	ledger       InventoryLedger
	clock        clock.Clock
	pickupWindow time.Duration
}

func NewPurchaseService(repo PurchaseRepository, ledger InventoryLedger, clk clock.Clock, opts ...PurchaseServiceOption) *PurchaseService {
	svc := &PurchaseService{
		repo:         repo,
		ledger:       ledger,
		clock:        clk,
		pickupWindow: defaultPickupWindow,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type PurchaseServiceOption func(*PurchaseService)

// WithPickupWindow overrides the default 7-day pickup window.
func WithPickupWindow(d time.Duration) PurchaseServiceOption {
	return func(s *PurchaseService) {
		if d > 0 {
			s.pickupWindow = d
		}
	}
}

// ConfirmReservation turns a pending, unexpired reservation into a purchase.
// Stock was already taken at reserve time, so the ledger is not touched: the
// status flip and the purchase record commit in one transaction.
func (s *PurchaseService) ConfirmReservation(ctx context.Context, reservationID, actorID string) (domain.Purchase, error) {
	if reservationID == "" {
		return domain.Purchase{}, domain.ErrInvalidID
	}
	if actorID == "" {
		return domain.Purchase{}, domain.ErrUserIDRequired
	}

	now := s.clock.Now()
	var result domain.Purchase

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
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
		if !reservation.ExpiresAt.After(now) {
			// Lapsed but not yet swept; the sweeper returns the stock.
			return domain.ErrReservationExpired
		}

		item, err := s.repo.GetItem(txCtx, reservation.ItemID)
		if err != nil {
			return err
		}

		reservationID := reservation.ID
		purchase := domain.Purchase{
			ID:            uuid.NewString(),
			ReservationID: &reservationID,
			ItemID:        reservation.ItemID,
			UserID:        reservation.UserID,
			StoreID:       reservation.StoreID,
			Quantity:      reservation.Quantity,
			UnitPrice:     item.DiscountPrice,
			CreatedAt:     now,
			PickupBy:      now.Add(s.pickupWindow),
		}

		if err := s.repo.CreatePurchase(txCtx, purchase); err != nil {
			return err
		}
		if err := s.repo.MarkFulfilled(txCtx, reservationID); err != nil {
			return err
		}

		result = purchase
		return nil
	})
	if err != nil {
		return domain.Purchase{}, err
	}
	return result, nil
}

type BuyNowInput struct {
	ItemID   string
	UserID   string
	Quantity int
}

// BuyNow is the no-reservation entry point into the same stock invariant: the
// conditional decrement and the purchase record commit together.
func (s *PurchaseService) BuyNow(ctx context.Context, in BuyNowInput) (domain.Purchase, error) {
	if in.Quantity <= 0 {
		return domain.Purchase{}, domain.ErrInvalidQuantity
	}
	if in.ItemID == "" {
		return domain.Purchase{}, domain.ErrInvalidID
	}
	if in.UserID == "" {
		return domain.Purchase{}, domain.ErrUserIDRequired
	}

	now := s.clock.Now()
	var result domain.Purchase

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		item, err := s.ledger.TryDecrement(txCtx, in.ItemID, in.Quantity)
		if err != nil {
			return err
		}

		purchase := domain.Purchase{
			ID:        uuid.NewString(),
			ItemID:    in.ItemID,
			UserID:    in.UserID,
			StoreID:   item.StoreID,
			Quantity:  in.Quantity,
			UnitPrice: item.DiscountPrice,
			CreatedAt: now,
			PickupBy:  now.Add(s.pickupWindow),
		}

		if err := s.repo.CreatePurchase(txCtx, purchase); err != nil {
			return err
		}

		result = purchase
		return nil
	})
	if err != nil {
		return domain.Purchase{}, err
	}
	return result, nil
}
