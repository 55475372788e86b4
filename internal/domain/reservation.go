package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusFulfilled ReservationStatus = "fulfilled"
	ReservationStatusExpired   ReservationStatus = "expired"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed from s.
// Every status except pending is terminal.
func (s ReservationStatus) Terminal() bool {
	return s != ReservationStatusPending
}

// Reservation is a time-boxed claim by a buyer on units of an item. Stock is
// decremented when the reservation is created and returned when it expires or
// is cancelled; Quantity records how much to return.
type Reservation struct {
	ID        string
	ItemID    string
	UserID    string
	StoreID   string
	Quantity  int
	Status    ReservationStatus
	CreatedAt time.Time
	ExpiresAt time.Time
}
