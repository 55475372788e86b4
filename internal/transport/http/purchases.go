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

// ReservationConfirmer is the minimal interface needed to confirm a
// reservation into a purchase.
type ReservationConfirmer interface {
	ConfirmReservation(ctx context.Context, reservationID, actorID string) (domain.Purchase, error)
}

// DirectBuyer is the minimal interface needed for reservation-less purchases.
type DirectBuyer interface {
	BuyNow(ctx context.Context, in app.BuyNowInput) (domain.Purchase, error)
}

// HandleConfirmReservation returns an HTTP handler for
// POST /reservations/{reservationID}/confirm.
func HandleConfirmReservation(svc ReservationConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireCaller(w, r)
		if !ok {
			return
		}

		reservationID := chi.URLParam(r, "reservationID")
		purchase, err := svc.ConfirmReservation(r.Context(), reservationID, userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPurchaseResponse(purchase))
	}
}

// HandleBuyNow returns an HTTP handler for POST /purchases.
func HandleBuyNow(svc DirectBuyer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireCaller(w, r)
		if !ok {
			return
		}

		var req buyNowRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.ItemID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "item_id is required")
			return
		}
		if req.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidQuantity, domain.ErrInvalidQuantity.Error())
			return
		}

		purchase, err := svc.BuyNow(r.Context(), app.BuyNowInput{
			ItemID:   req.ItemID,
			UserID:   userID,
			Quantity: req.Quantity,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPurchaseResponse(purchase))
	}
}

type buyNowRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type purchaseResponse struct {
	ID            string    `json:"id"`
	ReservationID *string   `json:"reservation_id,omitempty"`
	ItemID        string    `json:"item_id"`
	StoreID       string    `json:"store_id"`
	Quantity      int       `json:"quantity"`
	UnitPrice     float64   `json:"unit_price"`
	CreatedAt     time.Time `json:"created_at"`
	PickupBy      time.Time `json:"pickup_by"`
}

func toPurchaseResponse(p domain.Purchase) purchaseResponse {
	return purchaseResponse{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		ItemID:        p.ItemID,
		StoreID:       p.StoreID,
		Quantity:      p.Quantity,
		UnitPrice:     p.UnitPrice,
		CreatedAt:     p.CreatedAt,
		PickupBy:      p.PickupBy,
	}
}
