package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/christheg21/Firesale-2/internal/app"
	"github.com/christheg21/Firesale-2/internal/domain"
)

// Catalog is the minimal interface the item endpoints need.
type Catalog interface {
	CreateItem(ctx context.Context, in app.CreateItemInput) (domain.Item, error)
	GetItem(ctx context.Context, id string) (domain.Item, error)
	ListStoreItems(ctx context.Context, storeID string) ([]domain.Item, error)
	SearchItems(ctx context.Context, q app.ItemQuery) ([]domain.Item, error)
}

// HandleCreateItem returns an HTTP handler for POST /items. The caller is the
// selling store.
func HandleCreateItem(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, ok := requireCaller(w, r)
		if !ok {
			return
		}

		var req createItemRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		item, err := svc.CreateItem(r.Context(), app.CreateItemInput{
			StoreID:       storeID,
			Name:          req.Name,
			Category:      req.Category,
			OriginalPrice: req.OriginalPrice,
			DiscountPrice: req.DiscountPrice,
			Quantity:      req.Quantity,
			TimeLeft:      req.TimeLeft,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toItemResponse(item))
	}
}

// HandleGetItem returns an HTTP handler for GET /items/{itemID}.
func HandleGetItem(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := svc.GetItem(r.Context(), chi.URLParam(r, "itemID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toItemResponse(item))
	}
}

// HandleSearchItems returns an HTTP handler for GET /items.
func HandleSearchItems(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.SearchItems(r.Context(), app.ItemQuery{
			Text:     q.Get("q"),
			Category: q.Get("category"),
			Sort:     q.Get("sort"),
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toItemsResponse(items))
	}
}

// HandleListStoreItems returns an HTTP handler for GET /stores/{storeID}/items.
func HandleListStoreItems(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListStoreItems(r.Context(), chi.URLParam(r, "storeID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toItemsResponse(items))
	}
}

type createItemRequest struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	OriginalPrice float64 `json:"original_price"`
	DiscountPrice float64 `json:"discount_price"`
	Quantity      int     `json:"quantity"`
	TimeLeft      string  `json:"time_left"`
}

type itemResponse struct {
	ID                string    `json:"id"`
	StoreID           string    `json:"store_id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	OriginalPrice     float64   `json:"original_price"`
	DiscountPrice     float64   `json:"discount_price"`
	QuantityAvailable int       `json:"quantity_available"`
	TimeLeft          string    `json:"time_left"`
	CreatedAt         time.Time `json:"created_at"`
}

type itemsResponse struct {
	Items []itemResponse `json:"items"`
}

func toItemResponse(i domain.Item) itemResponse {
	return itemResponse{
		ID:                i.ID,
		StoreID:           i.StoreID,
		Name:              i.Name,
		Category:          i.Category,
		OriginalPrice:     i.OriginalPrice,
		DiscountPrice:     i.DiscountPrice,
		QuantityAvailable: i.QuantityAvailable,
		TimeLeft:          i.TimeLeft,
		CreatedAt:         i.CreatedAt,
	}
}

func toItemsResponse(items []domain.Item) itemsResponse {
	out := itemsResponse{Items: make([]itemResponse, 0, len(items))}
	for _, item := range items {
		out.Items = append(out.Items, toItemResponse(item))
	}
	return out
}
