package types

import (
	"github.com/killallgit/podcast-gateway/pkg/errors"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ErrorResponse is the body of 500 and GraphQL transport errors
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ValidationErrorResponse is the body of a rejected query string
type ValidationErrorResponse struct {
	Errors  []errors.FieldError `json:"errors"`
	Message string              `json:"message"`
}

// NotFoundResponse is the body returned for unknown routes
type NotFoundResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// HealthResponse for the liveness endpoint
type HealthResponse struct {
	Message string `json:"message"`
}

// VersionResponse for the service root
type VersionResponse struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	BuildDate  string `json:"buildDate"`
	InstanceID string `json:"instanceId"`
	Status     string `json:"status"`
}
