package app

import (
	"context"
	"time"

	"github.com/christheg21/Firesale-2/internal/clock"
	"github.com/christheg21/Firesale-2/internal/domain"
)

type CartRepository interface {
	ListActiveByUser(ctx context.Context, userID string, now time.Time) ([]domain.Reservation, error)
}

// CartService derives the buyer cart from reservation state. It holds no
// state of its own: the cart is whatever is pending and unexpired right now.
type CartService struct {
	repo  CartRepository
	clock clock.Clock
}

func NewCartService(repo CartRepository, clk clock.Clock) *CartService {
	return &CartService{
		repo:  repo,
		clock: clk,
	}
}

// BuyerCart returns the user's pending, unexpired reservations,
// most recent first.
func (s *CartService) BuyerCart(ctx context.Context, userID string) ([]domain.Reservation, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}
	return s.repo.ListActiveByUser(ctx, userID, s.clock.Now())
}
