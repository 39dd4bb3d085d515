package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/metaquant/engel-landing/internal/guide"
)

func (s *Server) handleLanding(c echo.Context) error {
	data := map[string]any{
		"ProductPrice":  s.config.ProductPrice,
		"Payments":      s.payments.List(),
		"VisibleCount":  s.config.CarouselVisible,
		"ItemWidth":     s.config.CarouselItemWidth,
		"TelegramURL":   s.config.ContactTelegramURL,
		"WhatsAppURL":   s.config.ContactWhatsAppURL,
		"ContactEmail":  s.config.ContactEmail,
		"DownloadURL":   "/download",
		"ViewSocketURL": "/ws/view",
		"Year":          time.Now().Year(),
	}
	return s.renderTemplate(c, "index.html", data)
}

func (s *Server) handleDownload(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", guide.FileName))
	if err := c.Blob(http.StatusOK, guide.ContentType, guide.Content()); err != nil {
		return fmt.Errorf("failed to send guide: %w", err)
	}
	return nil
}
