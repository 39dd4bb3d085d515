package httpserver

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/metaquant/engel-landing/internal/adapter/metrics"
	"github.com/metaquant/engel-landing/internal/domain"
	"github.com/metaquant/engel-landing/internal/platform/config"
	"github.com/metaquant/engel-landing/web"
)

type chartSource interface {
	Snapshot() domain.ChartFrame
}

type paymentCatalog interface {
	List() []domain.PaymentMethod
	Get(id string) (domain.PaymentMethod, error)
	CheckoutURL(id string) (string, error)
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	reviews  domain.ReviewSource
	charts   chartSource
	payments paymentCatalog

	viewHandler    echo.HandlerFunc
	metricsHandler http.Handler
	httpMetrics    *metrics.HTTPMetrics

	templates    *template.Template
	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, reviews domain.ReviewSource, charts chartSource, payments paymentCatalog, viewHandler echo.HandlerFunc, httpMetrics *metrics.HTTPMetrics, metricsHandler http.Handler, healthChecks []HealthCheck) (*Server, error) {
	templates, err := template.ParseFS(web.TemplateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:           e,
		config:         cfg,
		reviews:        reviews,
		charts:         charts,
		payments:       payments,
		viewHandler:    viewHandler,
		httpMetrics:    httpMetrics,
		metricsHandler: metricsHandler,
		templates:      templates,
		healthChecks:   healthChecks,
		startTime:      time.Now(),
	}

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// ServeHTTP exposes the router, mainly for tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) renderTemplate(c echo.Context, name string, data any) error {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(c.Request().Context(), "Template execution failed", "path", c.Request().URL.Path, "error", err)
		if err := c.String(http.StatusInternalServerError, "Failed to render page"); err != nil {
			return fmt.Errorf("failed to send error response: %w", err)
		}
		return nil
	}
	if err := c.HTMLBlob(http.StatusOK, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to send HTML response: %w", err)
	}
	return nil
}
