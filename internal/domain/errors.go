package domain

import "errors"

// Expected business outcomes. Safe to surface to the caller verbatim.
var (
	ErrItemNotFound        = errors.New("item not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrDuplicatePending    = errors.New("pending reservation already exists")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationExpired  = errors.New("reservation expired")
	ErrAlreadyTerminal     = errors.New("reservation already finalized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrInvalidID           = errors.New("invalid id")
	ErrItemNameRequired    = errors.New("item name required")
	ErrStoreIDRequired     = errors.New("store id required")
	ErrUserIDRequired      = errors.New("user id required")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrInvalidSort         = errors.New("invalid sort")
)

// ErrUnavailable is an infrastructure failure: the store could not commit the
// operation within the bounded retry budget.
var ErrUnavailable = errors.New("store unavailable")
