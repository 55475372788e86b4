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

// Reserver is the minimal interface needed to place a reservation.
type Reserver interface {
	Reserve(ctx context.Context, in app.ReserveInput) (domain.Reservation, error)
}

// Canceller is the minimal interface needed to cancel a reservation.
type Canceller interface {
	Cancel(ctx context.Context, reservationID, actorID string) error
}

// HandleCreateReservation returns an HTTP handler for POST /reservations.
func HandleCreateReservation(svc Reserver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireCaller(w, r)
		if !ok {
			return
		}

		var req createReservationRequest
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

		reservation, err := svc.Reserve(r.Context(), app.ReserveInput{
			ItemID:   req.ItemID,
			UserID:   userID,
			Quantity: req.Quantity,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toReservationResponse(reservation))
	}
}

// HandleCancelReservation returns an HTTP handler for
// DELETE /reservations/{reservationID}.
func HandleCancelReservation(svc Canceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireCaller(w, r)
		if !ok {
			return
		}

		reservationID := chi.URLParam(r, "reservationID")
		if err := svc.Cancel(r.Context(), reservationID, userID); err != nil {
			writeDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type createReservationRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type reservationResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	StoreID   string    `json:"store_id"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toReservationResponse(r domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:        r.ID,
		ItemID:    r.ItemID,
		StoreID:   r.StoreID,
		Quantity:  r.Quantity,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
