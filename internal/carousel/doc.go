// Package carousel implements the review carousel rotation engine.
//
// State is an immutable value advanced by the pure Advance transition; Rotator owns one
// State per page view and serialises the auto-advance ticker and manual steps on a single
// goroutine. The index wraps hard at both ends: stepping past the last window jumps to the
// first and vice versa.
package carousel
