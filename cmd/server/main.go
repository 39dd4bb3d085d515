package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/metaquant/engel-landing/internal/adapter/httpserver"
	"github.com/metaquant/engel-landing/internal/adapter/metrics"
	"github.com/metaquant/engel-landing/internal/adapter/websocket"
	"github.com/metaquant/engel-landing/internal/app"
	"github.com/metaquant/engel-landing/internal/carousel"
	"github.com/metaquant/engel-landing/internal/chart"
	"github.com/metaquant/engel-landing/internal/payment"
	"github.com/metaquant/engel-landing/internal/platform/config"
	"github.com/metaquant/engel-landing/internal/platform/logging"
	"github.com/metaquant/engel-landing/internal/platform/version"
	"github.com/metaquant/engel-landing/internal/reviews"
)

const shutdownTimeout = 10 * time.Second

func runGracefulShutdown(srv *httpserver.Server, views *app.ViewService, draining *atomic.Bool) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")
		draining.Store(true)

		// Open views hold hijacked connections that echo's Shutdown does not wait for;
		// from here on the view handler also refuses new upgrades.
		views.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func paymentConfig(cfg *config.Config) payment.Config {
	return payment.Config{
		Amount:          cfg.ProductPrice,
		CardCheckoutURL: cfg.PaymentCheckoutURL,
		BankName:        cfg.PaymentBankName,
		BankHolder:      cfg.PaymentBankHolder,
		BankCLABE:       cfg.PaymentBankCLABE,
		BTCAddress:      cfg.PaymentBTCAddress,
		ETHAddress:      cfg.PaymentETHAddress,
		USDTAddress:     cfg.PaymentUSDTAddress,
		NetellerEmail:   cfg.PaymentNetellerEmail,
		SkrillEmail:     cfg.PaymentSkrillEmail,
	}
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	info := version.Get()
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "version", info.Version, "commit", info.Commit)

	reg := metrics.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(reg)
	wsMetrics := metrics.NewWebSocketMetrics(reg)
	carouselMetrics := metrics.NewCarouselMetrics(reg)

	sampler, err := reviews.NewSampler(reviews.Catalog(), cfg.ReviewsMin, cfg.ReviewsMax, nil, clock)
	if err != nil {
		slog.Error("Failed to create review sampler", "error", err)
		os.Exit(1)
	}

	payments := payment.NewCatalog(paymentConfig(cfg))
	if len(payments.List()) == 0 {
		slog.Warn("No payment methods configured")
	}

	views := app.NewViewService(sampler, app.ViewOptions{
		Carousel: carousel.Options{
			VisibleCount: cfg.CarouselVisible,
			ItemWidth:    cfg.CarouselItemWidth,
			Interval:     cfg.CarouselInterval,
		},
		ChartInterval: cfg.ChartInterval,
	}, clock, carouselMetrics)

	limits := websocket.NewLimits(int64(cfg.MaxWebSocketConnections), cfg.MaxConnectionsPerIP, cfg.ConnectionRateLimit, cfg.ConnectionRateBurst, clock)
	checkOrigin := websocket.NewCheckOrigin(cfg.AppURL, !cfg.IsProduction())
	viewHandler := websocket.NewViewHandler(views, limits, checkOrigin, wsMetrics, clock)

	var draining atomic.Bool
	healthChecks := []httpserver.HealthCheck{
		{Name: "draining", Check: func(context.Context) error {
			if draining.Load() {
				return errors.New("shutting down")
			}
			return nil
		}},
	}

	srv, err := httpserver.NewServer(cfg, sampler, chart.NewGenerator(nil, clock), payments, viewHandler.Handle, httpMetrics, metrics.Handler(reg), healthChecks)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(srv, views, &draining)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("Shutdown complete")
}
