package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/specialdk/rac-artwork/internal/cart"
	"github.com/specialdk/rac-artwork/internal/catalog"
	"github.com/specialdk/rac-artwork/internal/config"
	h "github.com/specialdk/rac-artwork/internal/http"
	"github.com/specialdk/rac-artwork/internal/payment"
	"github.com/specialdk/rac-artwork/internal/sheets"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(os.Stdout)

	cfg := config.Load()

	// Redis backs both the cart documents and the badge channel.
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Str("addr", cfg.RedisAddr).Msg("connected to redis")

	sheetsClient := sheets.NewClient(cfg.SheetID)
	repo := catalog.NewRepository(sheetsClient, catalog.Tables{
		SiteContent:    cfg.SiteContentTab,
		Artists:        cfg.ArtistsTab,
		Artworks:       cfg.ArtworksTab,
		ArtworkDetails: cfg.ArtworkDetailsTab,
	})

	carts := cart.NewService(
		cart.NewRedisStore(redisClient),
		cart.NewRedisNotifier(redisClient),
		cart.Pricing{
			Currency:              cfg.Currency,
			ShippingFlatRate:      cfg.ShippingFlatRate,
			FreeShippingThreshold: cfg.FreeShippingThreshold,
		},
	)

	gateway := payment.NewStubGateway(cfg.StripePublishableKey)

	catalogHandler := h.NewCatalogHandler(repo, cfg.RequestTimeout, cfg.CurrencySymbol)
	cartHandler := h.NewCartHandler(repo, carts, cfg.RequestTimeout, cfg.CurrencySymbol)
	checkoutHandler := h.NewCheckoutHandler(carts, gateway, cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.CartIDMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/content", catalogHandler.GetContent)
		r.Get("/artists", catalogHandler.GetArtists)
		r.Get("/artists/{id}/artworks", catalogHandler.GetArtistArtworks)
		r.Get("/artworks", catalogHandler.ListArtworks)
		r.Get("/artworks/{id}", catalogHandler.GetArtwork)
		r.Post("/admin/cache/clear", catalogHandler.ClearCache)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Get("/items/{id}", cartHandler.HasItem)
			r.Delete("/items/{id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.ClearCart)
		})

		r.Post("/checkout", checkoutHandler.Checkout)
		r.Post("/checkout/complete", checkoutHandler.Complete)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("gallery server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	ctx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
