package dto

import "net/http"

// API error codes. Domain error codes map onto these directly.
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeUnknownReportType = "UNKNOWN_REPORT_TYPE"
	ErrCodeUpstreamFailure   = "UPSTREAM_FAILURE"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

var errorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeUnauthorized:      http.StatusUnauthorized,
	ErrCodeForbidden:         http.StatusForbidden,
	ErrCodeUnknownReportType: http.StatusBadRequest,
	ErrCodeUpstreamFailure:   http.StatusBadGateway,
	ErrCodeInternal:          http.StatusInternalServerError,
}

// HTTPStatus maps an error code to its HTTP status. Unknown codes map to 500.
func HTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
