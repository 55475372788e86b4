package app

import (
	"context"

	"github.com/christheg21/Firesale-2/internal/clock"
	"github.com/christheg21/Firesale-2/internal/domain"
)

type FavoriteRepository interface {
	UpsertFavorite(ctx context.Context, fav domain.Favorite) error
	DeleteFavorite(ctx context.Context, userID, itemID string) error
	ListFavoriteItems(ctx context.Context, userID string) ([]domain.Item, error)
}

type FavoriteService struct {
	repo  FavoriteRepository
	clock clock.Clock
}

func NewFavoriteService(repo FavoriteRepository, clk clock.Clock) *FavoriteService {
	return &FavoriteService{
		repo:  repo,
		clock: clk,
	}
}

// Add marks an item as a favorite. Adding twice is a no-op.
func (s *FavoriteService) Add(ctx context.Context, userID, itemID string) error {
	if userID == "" {
		return domain.ErrUserIDRequired
	}
	if itemID == "" {
		return domain.ErrInvalidID
	}
	return s.repo.UpsertFavorite(ctx, domain.Favorite{
		UserID:    userID,
		ItemID:    itemID,
		CreatedAt: s.clock.Now(),
	})
}

// Remove drops a favorite. Removing an item that was never favorited
// is a no-op.
func (s *FavoriteService) Remove(ctx context.Context, userID, itemID string) error {
	if userID == "" {
		return domain.ErrUserIDRequired
	}
	if itemID == "" {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteFavorite(ctx, userID, itemID)
}

// List returns the user's favorited items, most recently added first.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Item, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}
	return s.repo.ListFavoriteItems(ctx, userID)
}
