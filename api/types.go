// Package api - Wire types
package api

import (
	"rating-engine/core/output"
)

// RatingResponse is the body of a successful POST /rating-engine
type RatingResponse = output.QuoteDocument

// RatesResponse is the body of GET /rates
type RatesResponse = output.TableDocument

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Time    string `json:"time"`
}

// VersionResponse is the body of GET /version
type VersionResponse struct {
	Version    string `json:"version"`
	Engine     string `json:"engine"`
	APIVersion string `json:"api_version"`
}
