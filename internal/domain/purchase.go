package domain

import "time"

// Purchase is a confirmed, non-reversible sale. ReservationID is nil for
// buy-now purchases that never went through a reservation.
type Purchase struct {
	ID            string
	ReservationID *string
	ItemID        string
	UserID        string
	StoreID       string
	Quantity      int
	UnitPrice     float64
	CreatedAt     time.Time
	PickupBy      time.Time
}

// StoreStats aggregates a seller's confirmed sales.
type StoreStats struct {
	StoreID   string
	Purchases int
	UnitsSold int
	Revenue   float64
}
