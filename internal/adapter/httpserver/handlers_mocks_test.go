package httpserver

import (
	"context"
	"errors"
	"html/template"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/metaquant/engel-landing/internal/domain"
	"github.com/metaquant/engel-landing/internal/payment"
	"github.com/metaquant/engel-landing/internal/platform/config"
	"github.com/metaquant/engel-landing/web"
	"github.com/stretchr/testify/require"
)

type mockReviews struct {
	reviews []domain.Review
	err     error
}

func (m *mockReviews) Reviews(context.Context) ([]domain.Review, error) {
	return m.reviews, m.err
}

type mockCharts struct{}

func (mockCharts) Snapshot() domain.ChartFrame {
	return domain.ChartFrame{
		Points:  []domain.ChartPoint{{Price: 1950, Volume: 100, Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}},
		Metrics: &domain.ChartMetrics{WinRate: 94.7, ProfitFactor: 2.34, MaxDrawdown: 8.2},
	}
}

type brokenPayments struct{}

func (brokenPayments) List() []domain.PaymentMethod { return nil }
func (brokenPayments) Get(string) (domain.PaymentMethod, error) {
	return domain.PaymentMethod{}, errors.New("catalog unavailable")
}
func (brokenPayments) CheckoutURL(string) (string, error) {
	return "", errors.New("catalog unavailable")
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:            "development",
		Port:              "8080",
		ProductPrice:      "$400 USD",
		CarouselVisible:   3,
		CarouselItemWidth: 320,
		APIRateLimit:      100,
		APIRateBurst:      100,
		ContactEmail:      "ventas@example.com",
	}
}

func testPayments() *payment.Catalog {
	return payment.NewCatalog(payment.Config{
		Amount:          "$400 USD",
		CardCheckoutURL: "https://checkout.example.com/p/engel",
		BankName:        "Banco Ejemplo",
		BankHolder:      "Ejemplo SA",
		BankCLABE:       "000000000000000000",
		BTCAddress:      "bc1-example",
	})
}

func newTestServer(t *testing.T, opts ...func(*Server)) *Server {
	t.Helper()

	tmpl, err := template.ParseFS(web.TemplateFiles, "templates/*.html")
	require.NoError(t, err)

	srv := &Server{
		echo:      echo.New(),
		config:    testConfig(),
		reviews:   &mockReviews{},
		charts:    mockCharts{},
		payments:  testPayments(),
		templates: tmpl,
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	srv.registerRoutes()
	return srv
}

func withReviews(r domain.ReviewSource) func(*Server) {
	return func(s *Server) {
		s.reviews = r
	}
}

func withPayments(p paymentCatalog) func(*Server) {
	return func(s *Server) {
		s.payments = p
	}
}

func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) {
		s.healthChecks = checks
	}
}

// doRequest runs a request through the full middleware chain.
func doRequest(srv *Server, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}
