package dto

import "math"

// ===========================================================================
// Response DTOs
// Standard response envelope for the operational API endpoints.
// Webhooks answer in each platform's native shape instead.
// ===========================================================================

// Response is the standard envelope for all JSON API responses
type Response struct {
	// Success reports whether the request succeeded
	Success bool `json:"success"`

	// Data holds the payload on success
	Data interface{} `json:"data,omitempty"`

	// Error holds error details on failure
	Error *APIError `json:"error,omitempty"`

	// Meta holds pagination info for list endpoints
	Meta *Meta `json:"meta,omitempty"`
}

// APIError is the standard error shape
type APIError struct {
	// Code is a machine-readable error code (e.g. "NOT_FOUND")
	Code string `json:"code"`

	// Message is the human-readable error text
	Message string `json:"message"`
}

// Meta holds pagination info
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// NewMeta builds pagination metadata
func NewMeta(page, limit int, total int64) *Meta {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return &Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Success builds a success response
func Success(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// SuccessWithMeta builds a success response with pagination
func SuccessWithMeta(data interface{}, meta *Meta) Response {
	return Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	}
}

// Error builds an error response
func Error(code, message string) Response {
	return Response{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
	}
}

// ErrorFromErr builds an error response from an error value
func ErrorFromErr(err error) Response {
	return Response{
		Success: false,
		Error: &APIError{
			Code:    "ERROR",
			Message: err.Error(),
		},
	}
}
