package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/christheg21/Firesale-2/internal/app"
	"github.com/christheg21/Firesale-2/internal/clock"
	"github.com/christheg21/Firesale-2/internal/config"
	"github.com/christheg21/Firesale-2/internal/storage/postgres"
	"github.com/christheg21/Firesale-2/internal/sweeper"
	transporthttp "github.com/christheg21/Firesale-2/internal/transport/http"
	"github.com/christheg21/Firesale-2/migrations"
)

func main() {
	logger := log.Default()
	cfg := config.MustLoad()

	startupCtx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	clk := clock.NewSystem()
	ledger := postgres.NewItemRepository(pool)

	reservationRepo := postgres.NewReservationRepository(pool)
	reservationSvc := app.NewReservationService(reservationRepo, ledger, clk)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	purchaseSvc := app.NewPurchaseService(purchaseRepo, ledger, clk)
	cartSvc := app.NewCartService(reservationRepo, clk)
	catalogRepo := postgres.NewCatalogRepository(pool)
	catalogSvc := app.NewCatalogService(catalogRepo, clk)
	favoriteRepo := postgres.NewFavoriteRepository(pool)
	favoriteSvc := app.NewFavoriteService(favoriteRepo, clk)

	router := transporthttp.NewRouter(transporthttp.RouterConfig{
		Reservations: reservationSvc,
		Purchases:    purchaseSvc,
		Cart:         cartSvc,
		Catalog:      catalogSvc,
		Stats:        catalogSvc,
		Favorites:    favoriteSvc,
		CORSOrigins:  cfg.CORS.Origins,
		Logger:       logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweep := sweeper.New(reservationSvc, cfg.Sweep.Interval, logger)
	go sweep.Run(stopCtx)

	log.Printf("api listening on :%d", cfg.Server.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
