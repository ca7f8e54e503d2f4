package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardError_Error(t *testing.T) {
	err := NewValidationError("own: required")
	assert.Equal(t, "StandardError[VALIDATION_FAILED]: Request payload failed validation", err.Error())
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err  *StandardError
		want int
	}{
		{NewValidationError(""), http.StatusBadRequest},
		{NewTooManyCompetitorsError(12, 10), http.StatusBadRequest},
		{NewBaseVehicleMissingError(), http.StatusUnprocessableEntity},
		{NewCatalogQueryError("connection refused"), http.StatusBadGateway},
		{NewCatalogTimeoutError(), http.StatusGatewayTimeout},
		{NewNarrativeUnavailableError("503"), http.StatusBadGateway},
		{NewInternalError(fmt.Errorf("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestRetryability(t *testing.T) {
	assert.False(t, NewValidationError("").Retryable)
	assert.True(t, NewCatalogQueryError("").Retryable)
	assert.True(t, NewNarrativeUnavailableError("").Retryable)
}
