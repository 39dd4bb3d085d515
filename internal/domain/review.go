package domain

import "context"

// Review is one testimonial card shown in the landing page carousel.
type Review struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	DaysAgo int    `json:"days_ago"`
	Date    string `json:"date"`
}

// ReviewSource provides the ordered review list a page view rotates through.
type ReviewSource interface {
	Reviews(ctx context.Context) ([]Review, error)
}
