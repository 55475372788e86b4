package http

import (
	"context"
	"net/http"

	"github.com/christheg21/Firesale-2/internal/domain"
)

// CartReader is the minimal interface needed to render the buyer cart.
type CartReader interface {
	BuyerCart(ctx context.Context, userID string) ([]domain.Reservation, error)
}

// HandleBuyerCart returns an HTTP handler for GET /cart.
func HandleBuyerCart(svc CartReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireCaller(w, r)
		if !ok {
			return
		}

		reservations, err := svc.BuyerCart(r.Context(), userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		entries := make([]reservationResponse, 0, len(reservations))
		for _, res := range reservations {
			entries = append(entries, toReservationResponse(res))
		}
		writeJSON(w, http.StatusOK, cartResponse{Entries: entries})
	}
}

type cartResponse struct {
	Entries []reservationResponse `json:"entries"`
}
