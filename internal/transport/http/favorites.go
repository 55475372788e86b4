package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/christheg21/Firesale-2/internal/domain"
)

// FavoriteManager is the minimal interface the favorites endpoints need.
type FavoriteManager interface {
	Add(ctx context.Context, userID, itemID string) error
	Remove(ctx context.Context, userID, itemID string) error
	List(ctx context.Context, userID string) ([]domain.Item, error)
}

// HandleAddFavorite returns an HTTP handler for PUT /favorites/{itemID}.
func HandleAddFavorite(svc FavoriteManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireCaller(w, r)
		if !ok {
			return
		}
		if err := svc.Add(r.Context(), userID, chi.URLParam(r, "itemID")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleRemoveFavorite returns an HTTP handler for DELETE /favorites/{itemID}.
func HandleRemoveFavorite(svc FavoriteManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireCaller(w, r)
		if !ok {
			return
		}
		if err := svc.Remove(r.Context(), userID, chi.URLParam(r, "itemID")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleListFavorites returns an HTTP handler for GET /favorites.
func HandleListFavorites(svc FavoriteManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireCaller(w, r)
		if !ok {
			return
		}
		items, err := svc.List(r.Context(), userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toItemsResponse(items))
	}
}
