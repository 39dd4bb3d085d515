package domain

import "context"

type FrameType string

const (
	FrameReviews  FrameType = "reviews"
	FrameCarousel FrameType = "carousel"
	FrameChart    FrameType = "chart"
	FrameError    FrameType = "error"
)

// Frame is the envelope pushed to a page view over its socket.
type Frame struct {
	Type     FrameType      `json:"type"`
	Reviews  []Review       `json:"reviews,omitempty"`
	Carousel *CarouselFrame `json:"carousel,omitempty"`
	Chart    *ChartFrame    `json:"chart,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// FrameSink delivers frames to one connected page view.
// Send returns ErrTargetDetached after the view has gone away.
type FrameSink interface {
	Send(ctx context.Context, frame Frame) error
}
