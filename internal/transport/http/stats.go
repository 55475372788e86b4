package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/christheg21/Firesale-2/internal/domain"
)

// StatsReader is the minimal interface the seller analytics endpoint needs.
type StatsReader interface {
	StoreStats(ctx context.Context, storeID string) (domain.StoreStats, error)
}

// HandleStoreStats returns an HTTP handler for GET /stores/{storeID}/stats.
func HandleStoreStats(svc StatsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.StoreStats(r.Context(), chi.URLParam(r, "storeID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, storeStatsResponse{
			StoreID:   stats.StoreID,
			Purchases: stats.Purchases,
			UnitsSold: stats.UnitsSold,
			Revenue:   stats.Revenue,
		})
	}
}

type storeStatsResponse struct {
	StoreID   string  `json:"store_id"`
	Purchases int     `json:"purchases"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}
