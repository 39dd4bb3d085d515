package domain

import "context"

// Trigger records what caused a carousel frame to be rendered.
type Trigger string

const (
	TriggerLoad   Trigger = "load"
	TriggerAuto   Trigger = "auto"
	TriggerManual Trigger = "manual"
)

// CarouselFrame is the render instruction for a carousel: shift the track by Offset pixels.
type CarouselFrame struct {
	Index    int     `json:"index"`
	MaxIndex int     `json:"max_index"`
	Count    int     `json:"count"`
	Offset   int     `json:"offset"`
	Trigger  Trigger `json:"trigger"`
}

// RenderTarget receives carousel frames. Implementations return ErrTargetDetached
// once the view they draw into has been torn down.
type RenderTarget interface {
	Render(ctx context.Context, frame CarouselFrame) error
}
