package domain

import "errors"

var (
	ErrInvalidDirection        = errors.New("direction must be +1 or -1")
	ErrUnknownMessage          = errors.New("unknown client message")
	ErrViewClosed              = errors.New("view closed")
	ErrShuttingDown            = errors.New("view service shutting down")
	ErrItemsAlreadyLoaded      = errors.New("carousel items already loaded")
	ErrRotatorStopped          = errors.New("carousel rotator stopped")
	ErrTargetDetached          = errors.New("render target detached")
	ErrPaymentMethodNotFound   = errors.New("payment method not found")
	ErrPaymentMethodNoCheckout = errors.New("payment method has no hosted checkout")
)
