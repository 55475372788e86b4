package domain

import "time"

// Favorite marks an item a user wants to keep an eye on.
type Favorite struct {
	UserID    string
	ItemID    string
	CreatedAt time.Time
}
