package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/metaquant/engel-landing/internal/domain"
	apperrors "github.com/metaquant/engel-landing/internal/platform/errors"
)

func (s *Server) registerAPIRoutes() {
	api := s.echo.Group("/api", newRateLimiter(s.config.APIRateLimit, s.config.APIRateBurst))
	api.GET("/reviews", s.handleReviews)
	api.GET("/chart", s.handleChart)
	api.GET("/payment-methods", s.handleListPaymentMethods)
	api.GET("/payment-methods/:id", s.handleGetPaymentMethod)
}

func (s *Server) handleReviews(c echo.Context) error {
	reviews, err := s.reviews.Reviews(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to load reviews", err)
	}

	if err := c.JSON(http.StatusOK, reviews); err != nil {
		return fmt.Errorf("failed to write reviews response: %w", err)
	}
	return nil
}

func (s *Server) handleChart(c echo.Context) error {
	if err := c.JSON(http.StatusOK, s.charts.Snapshot()); err != nil {
		return fmt.Errorf("failed to write chart response: %w", err)
	}
	return nil
}

func (s *Server) handleListPaymentMethods(c echo.Context) error {
	response := map[string]any{
		"amount":  s.config.ProductPrice,
		"methods": s.payments.List(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write payment methods response: %w", err)
	}
	return nil
}

func (s *Server) handleGetPaymentMethod(c echo.Context) error {
	id := c.Param("id")

	method, err := s.payments.Get(id)
	if errors.Is(err, domain.ErrPaymentMethodNotFound) {
		return apperrors.NotFoundError("payment method not found", err).WithContext("payment_method", id)
	}
	if err != nil {
		return apperrors.InternalError("failed to load payment method", err).WithContext("payment_method", id)
	}

	if err := c.JSON(http.StatusOK, method); err != nil {
		return fmt.Errorf("failed to write payment method response: %w", err)
	}
	return nil
}

// handleCheckout redirects to the externally hosted checkout of a redirect method.
func (s *Server) handleCheckout(c echo.Context) error {
	id := c.Param("id")

	target, err := s.payments.CheckoutURL(id)
	switch {
	case errors.Is(err, domain.ErrPaymentMethodNotFound):
		return apperrors.NotFoundError("payment method not found", err).WithContext("payment_method", id)
	case errors.Is(err, domain.ErrPaymentMethodNoCheckout):
		return apperrors.ValidationError("payment method has no online checkout", err).WithContext("payment_method", id)
	case err != nil:
		return apperrors.InternalError("failed to resolve checkout", err).WithContext("payment_method", id)
	}

	if err := c.Redirect(http.StatusFound, target); err != nil {
		return fmt.Errorf("failed to redirect to checkout: %w", err)
	}
	return nil
}
