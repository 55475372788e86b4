package app

import (
	"context"
	"testing"
	"time"

	"github.com/christheg21/Firesale-2/internal/clock"
	"github.com/christheg21/Firesale-2/internal/domain"
)

func TestReservationService_Reserve(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

	t.Run("creates pending reservation and decrements stock", func(t *testing.T) {
		store := newMemStore(domain.Item{ID: "item-1", StoreID: "store-1", QuantityAvailable: 3})
		svc := NewReservationService(store, store, clock.NewFixed(now))

		reservation, err := svc.Reserve(context.Background(), ReserveInput{ItemID: "item-1", UserID: "buyer-1", Quantity: 1})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if reservation.ID == "" {
			t.Fatalf("expected reservation ID to be set")
		}
		if reservation.Status != domain.ReservationStatusPending {
			t.Fatalf("expected status pending, got %s", reservation.Status)
		}
		if reservation.StoreID != "store-1" {
			t.Fatalf("expected store id from item, got %q", reservation.StoreID)
		}
		if want := now.Add(24 * time.Hour); reservation.ExpiresAt != want {
			t.Fatalf("expected expires_at %v, got %v", want, reservation.ExpiresAt)
		}
		if got := store.quantity("item-1"); got != 2 {
			t.Fatalf("expected quantity 2 after reserve, got %d", got)
		}
	})

	t.Run("insufficient stock leaves no record", func(t *testing.T) {
		store := newMemStore(domain.Item{ID: "item-1", QuantityAvailable: 1})
		svc := NewReservationService(store, store, clock.NewFixed(now))

		_, err := svc.Reserve(context.Background(), ReserveInput{ItemID: "item-1", UserID: "buyer-1", Quantity: 2})
		if err != domain.ErrInsufficientStock {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		if len(store.reservations) != 0 {
			t.Fatalf("expected no reservations, got %d", len(store.reservations))
		}
		if got := store.quantity("item-1"); got != 1 {
			t.Fatalf("expected quantity unchanged, got %d", got)
		}
	})

	t.Run("rejects second pending reservation for same item and user", func(t *testing.T) {
		store := newMemStore(domain.Item{ID: "item-1", QuantityAvailable: 5})
		svc := NewReservationService(store, store, clock.NewFixed(now))

		if _, err := svc.Reserve(context.Background(), ReserveInput{ItemID: "item-1", UserID: "buyer-1", Quantity: 1}); err != nil {
			t.Fatalf("first reserve: %v", err)
		}
		_, err := svc.Reserve(context.Background(), ReserveInput{ItemID: "item-1", UserID: "buyer-1", Quantity: 1})
		if err != domain.ErrDuplicatePending {
			t.Fatalf("expected ErrDuplicatePending, got %v", err)
		}
		if got := store.quantity("item-1"); got != 4 {
			t.Fatalf("expected quantity 4, got %d", got)
		}
	})

	t.Run("lapsed pending reservation is expired and replaced", func(t *testing.T) {
		store := newMemStore(domain.Item{ID: "item-1", QuantityAvailable: 0})
		_ = store.CreateReservation(context.Background(), domain.Reservation{
			ID: "res-old", ItemID: "item-1", UserID: "buyer-1", Quantity: 1,
			Status: domain.ReservationStatusPending, ExpiresAt: now.Add(-time.Minute),
		})
		svc := NewReservationService(store, store, clock.NewFixed(now))

		reservation, err := svc.Reserve(context.Background(), ReserveInput{ItemID: "item-1", UserID: "buyer-1", Quantity: 1})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if reservation.ID == "res-old" {
			t.Fatalf("expected a new reservation")
		}
		if got := store.reservations["res-old"].Status; got != domain.ReservationStatusExpired {
			t.Fatalf("expected old reservation expired, got %s", got)
		}
		// Old unit restocked, then taken by the new reservation.
		if got := store.quantity("item-1"); got != 0 {
			t.Fatalf("expected quantity 0, got %d", got)
		}
	})

	t.Run("validates input", func(t *testing.T) {
		store := newMemStore(domain.Item{ID: "item-1", QuantityAvailable: 1})
		svc := NewReservationService(store, store, clock.NewFixed(now))

		if _, err := svc.Reserve(context.Background(), ReserveInput{ItemID: "item-1", UserID: "u", Quantity: 0}); err != domain.ErrInvalidQuantity {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
		if _, err := svc.Reserve(context.Background(), ReserveInput{ItemID: "", UserID: "u", Quantity: 1}); err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
		if _, err := svc.Reserve(context.Background(), ReserveInput{ItemID: "item-1", UserID: "", Quantity: 1}); err != domain.ErrUserIDRequired {
			t.Fatalf("expected ErrUserIDRequired, got %v", err)
		}
		if _, err := svc.Reserve(context.Background(), ReserveInput{ItemID: "missing", UserID: "u", Quantity: 1}); err != domain.ErrItemNotFound {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("drains stock across users then rejects", func(t *testing.T) {
		store := newMemStore(domain.Item{ID: "item-1", QuantityAvailable: 3})
		svc := NewReservationService(store, store, clock.NewFixed(now))

		for _, user := range []string{"buyer-1", "buyer-2", "buyer-3"} {
			if _, err := svc.Reserve(context.Background(), ReserveInput{ItemID: "item-1", UserID: user, Quantity: 1}); err != nil {
				t.Fatalf("reserve for %s: %v", user, err)
			}
		}
		if got := store.quantity("item-1"); got != 0 {
			t.Fatalf("expected quantity 0, got %d", got)
		}
		if _, err := svc.Reserve(context.Background(), ReserveInput{ItemID: "item-1", UserID: "buyer-4", Quantity: 1}); err != domain.ErrInsufficientStock {
			t.Fatalf("expected ErrInsufficientStock for fourth buyer, got %v", err)
		}
	})
}

func TestReservationService_Cancel(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

	setup := func() (*ReservationService, *memStore, domain.Reservation) {
		store := newMemStore(domain.Item{ID: "item-1", QuantityAvailable: 2})
		svc := NewReservationService(store, store, clock.NewFixed(now))
		reservation, err := svc.Reserve(context.Background(), ReserveInput{ItemID: "item-1", UserID: "buyer-1", Quantity: 1})
		if err != nil {
			t.Fatalf("reserve: %v", err)
		}
		return svc, store, reservation
	}

	t.Run("owner cancels and stock is returned", func(t *testing.T) {
		svc, store, reservation := setup()

		if err := svc.Cancel(context.Background(), reservation.ID, "buyer-1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := store.reservations[reservation.ID].Status; got != domain.ReservationStatusCancelled {
			t.Fatalf("expected cancelled, got %s", got)
		}
		if got := store.quantity("item-1"); got != 2 {
			t.Fatalf("expected quantity restored to 2, got %d", got)
		}
	})

	t.Run("reserve after cancel succeeds again", func(t *testing.T) {
		svc, store, reservation := setup()

		if err := svc.Cancel(context.Background(), reservation.ID, "buyer-1"); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if _, err := svc.Reserve(context.Background(), ReserveInput{ItemID: "item-1", UserID: "buyer-1", Quantity: 1}); err != nil {
			t.Fatalf("expected second reserve to succeed, got %v", err)
		}
		if got := store.quantity("item-1"); got != 1 {
			t.Fatalf("expected quantity 1, got %d", got)
		}
	})

	t.Run("only the owner may cancel", func(t *testing.T) {
		svc, store, reservation := setup()

		if err := svc.Cancel(context.Background(), reservation.ID, "someone-else"); err != domain.ErrForbidden {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if got := store.quantity("item-1"); got != 1 {
			t.Fatalf("expected quantity unchanged, got %d", got)
		}
	})

	t.Run("cancel is rejected on terminal reservations", func(t *testing.T) {
		svc, _, reservation := setup()

		if err := svc.Cancel(context.Background(), reservation.ID, "buyer-1"); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if err := svc.Cancel(context.Background(), reservation.ID, "buyer-1"); err != domain.ErrAlreadyTerminal {
			t.Fatalf("expected ErrAlreadyTerminal, got %v", err)
		}
	})

	t.Run("unknown reservation", func(t *testing.T) {
		svc, _, _ := setup()
		if err := svc.Cancel(context.Background(), "missing", "buyer-1"); err != domain.ErrReservationNotFound {
			t.Fatalf("expected ErrReservationNotFound, got %v", err)
		}
	})
}

func TestReservationService_SweepExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

	t.Run("expires lapsed reservations and restocks once", func(t *testing.T) {
		store := newMemStore(domain.Item{ID: "item-1", QuantityAvailable: 10})
		clk := clock.NewFixed(now)
		svc := NewReservationService(store, store, clk)

		first, err := svc.Reserve(context.Background(), ReserveInput{ItemID: "item-1", UserID: "buyer-1", Quantity: 2})
		if err != nil {
			t.Fatalf("reserve: %v", err)
		}
		if _, err := svc.Reserve(context.Background(), ReserveInput{ItemID: "item-1", UserID: "buyer-2", Quantity: 3}); err != nil {
			t.Fatalf("reserve: %v", err)
		}

		clk.Advance(25 * time.Hour)

		count, err := svc.SweepExpired(context.Background())
		if err != nil {
			t.Fatalf("sweep: %v", err)
		}
		if count != 2 {
			t.Fatalf("expected 2 expired, got %d", count)
		}
		if got := store.reservations[first.ID].Status; got != domain.ReservationStatusExpired {
			t.Fatalf("expected expired, got %s", got)
		}
		if got := store.quantity("item-1"); got != 10 {
			t.Fatalf("expected full restock to 10, got %d", got)
		}

		// Second run at the same instant is a no-op.
		count, err = svc.SweepExpired(context.Background())
		if err != nil {
			t.Fatalf("second sweep: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected 0 expired on second sweep, got %d", count)
		}
		if got := store.quantity("item-1"); got != 10 {
			t.Fatalf("expected quantity still 10, got %d", got)
		}
	})

	t.Run("leaves unexpired reservations alone", func(t *testing.T) {
		store := newMemStore(domain.Item{ID: "item-1", QuantityAvailable: 5})
		clk := clock.NewFixed(now)
		svc := NewReservationService(store, store, clk)

		reservation, err := svc.Reserve(context.Background(), ReserveInput{ItemID: "item-1", UserID: "buyer-1", Quantity: 1})
		if err != nil {
			t.Fatalf("reserve: %v", err)
		}

		clk.Advance(time.Hour)

		count, err := svc.SweepExpired(context.Background())
		if err != nil {
			t.Fatalf("sweep: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected 0 expired, got %d", count)
		}
		if got := store.reservations[reservation.ID].Status; got != domain.ReservationStatusPending {
			t.Fatalf("expected still pending, got %s", got)
		}
	})
}
