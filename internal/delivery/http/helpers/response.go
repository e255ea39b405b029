package helpers

import (
	"encoding/json"
	"net/http"

	"eventsplatform/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest      = "bad_request"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeNotFound        = "not_found"
	ErrCodeTooManyRequests = "too_many_requests"
	ErrCodeInternalError   = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the envelope returned by writes and by every error.
// swagger:model APIResponse
type APIResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// CollectionResponse wraps list results. Pagination is omitted for unpaginated lists.
// swagger:model CollectionResponse
type CollectionResponse struct {
	Collection any                `json:"collection"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONSuccess writes a successful APIResponse. data may be nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	WriteJSON(w, statusCode, APIResponse{Success: true, Message: message, Data: data})
}

// WriteJSONError writes a failed APIResponse carrying the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, APIResponse{
		Success: false,
		Message: message,
		Error:   &APIError{Code: code, Message: message},
	})
}

// WriteCollection writes a list with optional pagination metadata.
func WriteCollection(w http.ResponseWriter, collection any, pagination *domain.Pagination) {
	WriteJSON(w, http.StatusOK, CollectionResponse{Collection: collection, Pagination: pagination})
}
