// Package errors provides standardized error handling for the search core.
//
// Pure functions (normalization, combination, URL codec) never return these
// errors for data-shape problems — they degrade to defaults. Only I/O-bound
// operations (geolocation, reverse geocoding, listing sources) produce them.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Geolocation errors — closed set, each with a distinct user message.
	ErrCodeGeoPermissionDenied    ErrorCode = "GEO_PERMISSION_DENIED"
	ErrCodeGeoPositionUnavailable ErrorCode = "GEO_POSITION_UNAVAILABLE"
	ErrCodeGeoTimeout             ErrorCode = "GEO_TIMEOUT"
	ErrCodeGeoUnknown             ErrorCode = "GEO_UNKNOWN"

	// Reverse geocoding: only fatal once every provider in the chain failed.
	ErrCodeGeocodeFailed ErrorCode = "GEOCODE_FAILED"

	ErrCodeInvalidFilterFormat  ErrorCode = "INVALID_FILTER_FORMAT"
	ErrCodeInvalidLocationInput ErrorCode = "INVALID_LOCATION_INPUT"

	ErrCodeListingSourceFailed  ErrorCode = "LISTING_SOURCE_FAILED"
	ErrCodeListingSchemaInvalid ErrorCode = "LISTING_SCHEMA_INVALID"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed        ErrorCode = "SEARCH_QUERY_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code        ErrorCode              `json:"code"`
	Message     string                 `json:"message"`
	UserMessage string                 `json:"userMessage,omitempty"`
	Details     string                 `json:"details,omitempty"`
	Retryable   bool                   `json:"retryable"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// CodeOf extracts the ErrorCode carried by err, or empty when err is not a
// StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// UserMessageOf returns the user-facing message for err, falling back to a
// generic one for unexpected errors.
func UserMessageOf(err error) string {
	var stdErr *StandardError
	if errors.As(err, &stdErr) && stdErr.UserMessage != "" {
		return stdErr.UserMessage
	}
	return "Something went wrong. Please try again."
}

// ==========================
// 2. Error Constructors
// ==========================

// NewGeoPermissionDeniedError creates a non-retryable geolocation error.
func NewGeoPermissionDeniedError(details string) *StandardError {
	return &StandardError{
		Code:        ErrCodeGeoPermissionDenied,
		Message:     "Location access denied",
		UserMessage: "Location access was denied. Please allow location access or enter your location manually.",
		Details:     details,
		Retryable:   false,
		Timestamp:   time.Now().UTC(),
	}
}

// NewGeoPositionUnavailableError creates a retryable geolocation error.
func NewGeoPositionUnavailableError(details string) *StandardError {
	return &StandardError{
		Code:        ErrCodeGeoPositionUnavailable,
		Message:     "Position unavailable",
		UserMessage: "Your location could not be determined right now. Please try again or enter it manually.",
		Details:     details,
		Retryable:   true,
		Timestamp:   time.Now().UTC(),
	}
}

// NewGeoTimeoutError creates a retryable geolocation timeout error.
func NewGeoTimeoutError(details string) *StandardError {
	return &StandardError{
		Code:        ErrCodeGeoTimeout,
		Message:     "Location request timed out",
		UserMessage: "Looking up your location took too long. Please try again or enter it manually.",
		Details:     details,
		Retryable:   true,
		Timestamp:   time.Now().UTC(),
	}
}

// NewGeoUnknownError creates a non-retryable catch-all geolocation error.
func NewGeoUnknownError(err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:        ErrCodeGeoUnknown,
		Message:     "Unknown geolocation error",
		UserMessage: "Your location could not be determined. Please enter it manually.",
		Details:     details,
		Retryable:   false,
		Timestamp:   time.Now().UTC(),
	}
}

// NewGeocodeFailedError is produced only after the whole reverse-geocoding
// chain failed. Raw coordinates are deliberately not surfaced to the user.
func NewGeocodeFailedError(providers []string) *StandardError {
	return &StandardError{
		Code:        ErrCodeGeocodeFailed,
		Message:     "All reverse-geocoding providers failed",
		UserMessage: "We couldn't turn your position into a place name. Please enter your location manually.",
		Details:     fmt.Sprintf("providers tried: %v", providers),
		Retryable:   true,
		Timestamp:   time.Now().UTC(),
	}
}

// NewInvalidFilterFormatError creates a non-retryable filter format error.
func NewInvalidFilterFormatError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFilterFormat,
		Message:   "Invalid filter format",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidLocationInputError creates a non-retryable location input error.
func NewInvalidLocationInputError(details string) *StandardError {
	return &StandardError{
		Code:        ErrCodeInvalidLocationInput,
		Message:     "Invalid location input",
		UserMessage: details,
		Details:     details,
		Retryable:   false,
		Timestamp:   time.Now().UTC(),
	}
}

// NewListingSourceFailedError creates a retryable listing source error.
func NewListingSourceFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeListingSourceFailed,
		Message:   "Listing source fetch failed",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewListingSchemaInvalidError creates a non-retryable listing document error.
func NewListingSchemaInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeListingSchemaInvalid,
		Message:   "Listing document failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search backend error.
func NewSearchQueryFailedError(backend string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Search backend query error",
		Details:   fmt.Sprintf("backend: %s, error: %s", backend, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
