package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RouterConfig carries the services the router exposes.
type RouterConfig struct {
	Reservations interface {
		Reserver
		Canceller
	}
	Purchases interface {
		ReservationConfirmer
		DirectBuyer
	}
	Cart        CartReader
	Catalog     Catalog
	Stats       StatsReader
	Favorites   FavoriteManager
	CORSOrigins []string
	Logger      *log.Logger
}

// NewRouter wires all endpoints onto a chi mux.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestLogger(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", userIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", HealthHandler)

	r.Route("/items", func(r chi.Router) {
		r.Post("/", HandleCreateItem(cfg.Catalog))
		r.Get("/", HandleSearchItems(cfg.Catalog))
		r.Get("/{itemID}", HandleGetItem(cfg.Catalog))
	})

	r.Route("/stores/{storeID}", func(r chi.Router) {
		r.Get("/items", HandleListStoreItems(cfg.Catalog))
		r.Get("/stats", HandleStoreStats(cfg.Stats))
	})

	r.Route("/reservations", func(r chi.Router) {
		r.Post("/", HandleCreateReservation(cfg.Reservations))
		r.Delete("/{reservationID}", HandleCancelReservation(cfg.Reservations))
		r.Post("/{reservationID}/confirm", HandleConfirmReservation(cfg.Purchases))
	})

	r.Post("/purchases", HandleBuyNow(cfg.Purchases))
	r.Get("/cart", HandleBuyerCart(cfg.Cart))

	r.Route("/favorites", func(r chi.Router) {
		r.Get("/", HandleListFavorites(cfg.Favorites))
		r.Put("/{itemID}", HandleAddFavorite(cfg.Favorites))
		r.Delete("/{itemID}", HandleRemoveFavorite(cfg.Favorites))
	})

	return r
}
