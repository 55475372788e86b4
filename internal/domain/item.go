package domain

import "time"

// Item is a sellable unit owned by a store. QuantityAvailable is the only
// field mutated after creation, and only through the inventory ledger.
type Item struct {
	ID                string
	StoreID           string
	Name              string
	Category          string
	OriginalPrice     float64
	DiscountPrice     float64
	QuantityAvailable int
	TimeLeft          string
	CreatedAt         time.Time
}
