// Package domain defines the core domain types and interfaces.
//
// Concept-oriented files (review.go, carousel.go, chart.go, payment.go, frame.go) hold the
// shared types and the collaborator interfaces. No implementation code, just contracts.
package domain
