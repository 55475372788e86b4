package app

import (
	"context"
	"sort"
	"time"

	"github.com/christheg21/Firesale-2/internal/domain"
)

// memStore is an in-memory stand-in for the Postgres repositories and the
// inventory ledger, sharing one state like the real ones share one database.
type memStore struct {
	items        map[string]*domain.Item
	reservations map[string]*memReservation
	purchases    map[string]*domain.Purchase
	seq          int
}

type memReservation struct {
	domain.Reservation
	seq int
}

func newMemStore(items ...domain.Item) *memStore {
	s := &memStore{
		items:        make(map[string]*domain.Item),
		reservations: make(map[string]*memReservation),
		purchases:    make(map[string]*domain.Purchase),
	}
	for _, item := range items {
		cp := item
		s.items[item.ID] = &cp
	}
	return s
}

func (s *memStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *memStore) TryDecrement(_ context.Context, itemID string, amount int) (domain.Item, error) {
	item, ok := s.items[itemID]
	if !ok {
		return domain.Item{}, domain.ErrItemNotFound
	}
	if item.QuantityAvailable < amount {
		return domain.Item{}, domain.ErrInsufficientStock
	}
	item.QuantityAvailable -= amount
	return *item, nil
}

func (s *memStore) Increment(_ context.Context, itemID string, amount int) (int, error) {
	item, ok := s.items[itemID]
	if !ok {
		return 0, domain.ErrItemNotFound
	}
	item.QuantityAvailable += amount
	return item.QuantityAvailable, nil
}

func (s *memStore) GetItem(_ context.Context, id string) (domain.Item, error) {
	item, ok := s.items[id]
	if !ok {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return *item, nil
}

func (s *memStore) FindPendingByItemAndUser(_ context.Context, itemID, userID string) (*domain.Reservation, error) {
	for _, r := range s.reservations {
		if r.ItemID == itemID && r.UserID == userID && r.Status == domain.ReservationStatusPending {
			cp := r.Reservation
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) CreateReservation(_ context.Context, reservation domain.Reservation) error {
	for _, r := range s.reservations {
		if r.ItemID == reservation.ItemID && r.UserID == reservation.UserID && r.Status == domain.ReservationStatusPending {
			return domain.ErrDuplicatePending
		}
	}
	s.seq++
	s.reservations[reservation.ID] = &memReservation{Reservation: reservation, seq: s.seq}
	return nil
}

func (s *memStore) GetReservationForUpdate(_ context.Context, id string) (domain.Reservation, error) {
	r, ok := s.reservations[id]
	if !ok {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	return r.Reservation, nil
}

func (s *memStore) MarkCancelled(_ context.Context, id string) error {
	return s.transition(id, domain.ReservationStatusCancelled)
}

func (s *memStore) MarkExpired(_ context.Context, id string) error {
	return s.transition(id, domain.ReservationStatusExpired)
}

func (s *memStore) MarkFulfilled(_ context.Context, id string) error {
	return s.transition(id, domain.ReservationStatusFulfilled)
}

func (s *memStore) transition(id string, status domain.ReservationStatus) error {
	r, ok := s.reservations[id]
	if !ok || r.Status != domain.ReservationStatusPending {
		return domain.ErrAlreadyTerminal
	}
	r.Status = status
	return nil
}

func (s *memStore) ExpireDue(_ context.Context, now time.Time) ([]domain.Reservation, error) {
	var expired []domain.Reservation
	for _, r := range s.reservations {
		if r.Status == domain.ReservationStatusPending && !r.ExpiresAt.After(now) {
			r.Status = domain.ReservationStatusExpired
			expired = append(expired, r.Reservation)
		}
	}
	return expired, nil
}

func (s *memStore) ListActiveByUser(_ context.Context, userID string, now time.Time) ([]domain.Reservation, error) {
	var active []*memReservation
	for _, r := range s.reservations {
		if r.UserID == userID && r.Status == domain.ReservationStatusPending && r.ExpiresAt.After(now) {
			active = append(active, r)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if !active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].CreatedAt.After(active[j].CreatedAt)
		}
		return active[i].seq > active[j].seq
	})
	out := make([]domain.Reservation, 0, len(active))
	for _, r := range active {
		out = append(out, r.Reservation)
	}
	return out, nil
}

func (s *memStore) CreatePurchase(_ context.Context, p domain.Purchase) error {
	if p.ReservationID != nil {
		for _, existing := range s.purchases {
			if existing.ReservationID != nil && *existing.ReservationID == *p.ReservationID {
				return domain.ErrAlreadyTerminal
			}
		}
	}
	cp := p
	s.purchases[p.ID] = &cp
	return nil
}

func (s *memStore) GetPurchaseByReservationID(_ context.Context, reservationID string) (*domain.Purchase, error) {
	for _, p := range s.purchases {
		if p.ReservationID != nil && *p.ReservationID == reservationID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) quantity(itemID string) int {
	return s.items[itemID].QuantityAvailable
}
