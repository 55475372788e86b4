package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/christheg21/Firesale-2/internal/clock"
	"github.com/christheg21/Firesale-2/internal/domain"
)

type CatalogRepository interface {
	CreateItem(ctx context.Context, item domain.Item) error
	GetItem(ctx context.Context, id string) (domain.Item, error)
	ListItemsByStore(ctx context.Context, storeID string) ([]domain.Item, error)
	SearchItems(ctx context.Context, q ItemQuery) ([]domain.Item, error)
	StoreStats(ctx context.Context, storeID string) (domain.StoreStats, error)
}

// Sort orders accepted by SearchItems.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

type ItemQuery struct {
	Text     string
	Category string
	Sort     string
}

type CatalogService struct {
	repo  CatalogRepository
	clock clock.Clock
}

func NewCatalogService(repo CatalogRepository, clk clock.Clock) *CatalogService {
	return &CatalogService{
		repo:  repo,
		clock: clk,
	}
}

type CreateItemInput struct {
	StoreID       string
	Name          string
	Category      string
	OriginalPrice float64
	DiscountPrice float64
	Quantity      int
	TimeLeft      string
}

func (s *CatalogService) CreateItem(ctx context.Context, in CreateItemInput) (domain.Item, error) {
	if in.StoreID == "" {
		return domain.Item{}, domain.ErrStoreIDRequired
	}
	if in.Name == "" {
		return domain.Item{}, domain.ErrItemNameRequired
	}
	if in.OriginalPrice < 0 || in.DiscountPrice < 0 || in.DiscountPrice > in.OriginalPrice {
		return domain.Item{}, domain.ErrInvalidPrice
	}
	if in.Quantity < 0 {
		return domain.Item{}, domain.ErrInvalidQuantity
	}

	item := domain.Item{
		ID:                uuid.NewString(),
		StoreID:           in.StoreID,
		Name:              in.Name,
		Category:          in.Category,
		OriginalPrice:     in.OriginalPrice,
		DiscountPrice:     in.DiscountPrice,
		QuantityAvailable: in.Quantity,
		TimeLeft:          in.TimeLeft,
		CreatedAt:         s.clock.Now(),
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

func (s *CatalogService) GetItem(ctx context.Context, id string) (domain.Item, error) {
	if id == "" {
		return domain.Item{}, domain.ErrInvalidID
	}
	return s.repo.GetItem(ctx, id)
}

func (s *CatalogService) ListStoreItems(ctx context.Context, storeID string) ([]domain.Item, error) {
	if storeID == "" {
		return nil, domain.ErrStoreIDRequired
	}
	return s.repo.ListItemsByStore(ctx, storeID)
}

func (s *CatalogService) SearchItems(ctx context.Context, q ItemQuery) ([]domain.Item, error) {
	switch q.Sort {
	case "", SortNewest, SortPriceAsc, SortPriceDesc:
	default:
		return nil, domain.ErrInvalidSort
	}
	if q.Sort == "" {
		q.Sort = SortNewest
	}
	return s.repo.SearchItems(ctx, q)
}

// StoreStats aggregates a seller's confirmed sales: purchase count, units
// sold and revenue.
func (s *CatalogService) StoreStats(ctx context.Context, storeID string) (domain.StoreStats, error) {
	if storeID == "" {
		return domain.StoreStats{}, domain.ErrStoreIDRequired
	}
	return s.repo.StoreStats(ctx, storeID)
}
