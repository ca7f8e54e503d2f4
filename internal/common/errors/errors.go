// Package errors provides standardized error handling for the service
// boundary. The comparison engine itself never raises: missing data is
// represented as absence all the way through, so these codes only describe
// failures of the surrounding collaborators.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeBaseVehicleMissing   ErrorCode = "BASE_VEHICLE_MISSING"
	ErrCodeTooManyCompetitors   ErrorCode = "TOO_MANY_COMPETITORS"
	ErrCodeCatalogQueryFailed   ErrorCode = "CATALOG_QUERY_FAILED"
	ErrCodeCatalogTimeout       ErrorCode = "CATALOG_TIMEOUT"
	ErrCodeCacheUnavailable     ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeNarrativeUnavailable ErrorCode = "NARRATIVE_UNAVAILABLE"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// HTTPStatus maps the error code to the response status the API uses.
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeValidationFailed, ErrCodeTooManyCompetitors:
		return http.StatusBadRequest
	case ErrCodeBaseVehicleMissing:
		return http.StatusUnprocessableEntity
	case ErrCodeCatalogTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeCatalogQueryFailed, ErrCodeCacheUnavailable, ErrCodeNarrativeUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError reports a rejected request payload.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request payload failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBaseVehicleMissingError reports a comparison request without a usable
// own vehicle.
func NewBaseVehicleMissingError() *StandardError {
	return &StandardError{
		Code:      ErrCodeBaseVehicleMissing,
		Message:   "A base vehicle is required for comparison",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTooManyCompetitorsError reports a competitor list over the limit.
func NewTooManyCompetitorsError(got, limit int) *StandardError {
	return &StandardError{
		Code:      ErrCodeTooManyCompetitors,
		Message:   "Competitor list exceeds the allowed size",
		Details:   fmt.Sprintf("got %d competitors, limit is %d", got, limit),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogQueryError reports a failed catalog lookup.
func NewCatalogQueryError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogQueryFailed,
		Message:   "Catalog lookup failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogTimeoutError reports a catalog lookup deadline hit.
func NewCatalogTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogTimeout,
		Message:   "Catalog lookup timed out",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNarrativeUnavailableError reports a failed external narrative call;
// the caller is expected to fall back to the deterministic script.
func NewNarrativeUnavailableError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNarrativeUnavailable,
		Message:   "External narrative service unavailable",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
