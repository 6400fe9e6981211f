package dto

import "net/http"

// General error codes used directly by the HTTP layer
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// domainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed fall back to 400 for validation-style codes and 500
// otherwise.
var domainCodeHTTPStatus = map[string]int{
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"DUPLICATE_MEMBERSHIP": http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"COMPANY_HAS_ADMIN":    http.StatusConflict,

	"PERMISSION_DENIED": http.StatusForbidden,

	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,

	"INSUFFICIENT_INVENTORY":  http.StatusUnprocessableEntity,
	"VEHICLE_QUOTA_EXCEEDED":  http.StatusUnprocessableEntity,
	"INVALID_ASSET_REFERENCE": http.StatusUnprocessableEntity,
	"NO_MATCHING_COMPANY":     http.StatusUnprocessableEntity,

	"BAD_REQUEST":      http.StatusBadRequest,
	"VALIDATION_ERROR": http.StatusBadRequest,
	"INVALID_INPUT":    http.StatusBadRequest,

	"TRANSIENT":      http.StatusServiceUnavailable,
	"INTERNAL_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	if len(code) > 8 && code[:8] == "INVALID_" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
