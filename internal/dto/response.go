package dto

import "math"

// ===========================================================================
// Response DTOs
// Uniform response envelope for all API endpoints.
// ===========================================================================

// Response standard envelope
type Response struct {
	// Success whether the request succeeded
	Success bool `json:"success"`

	// Data payload on success
	Data interface{} `json:"data,omitempty"`

	// Error structured error on failure
	Error *APIError `json:"error,omitempty"`

	// Meta pagination info for list endpoints
	Meta *Meta `json:"meta,omitempty"`
}

// APIError structured error
type APIError struct {
	// Code machine-readable code (e.g. "NOT_FOUND", "SCOPE_DENIED")
	Code string `json:"code"`

	// Message human-readable detail
	Message string `json:"message"`
}

// Meta pagination info
type Meta struct {
	// Total total records
	Total int64 `json:"total"`

	// Page current page
	Page int `json:"page"`

	// Limit records per page
	Limit int `json:"limit"`

	// TotalPages total pages
	TotalPages int `json:"total_pages"`
}

// NewMeta builds Meta from pagination inputs
func NewMeta(page, limit int, total int64) *Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return &Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ===========================================================================
// Response Builders
// ===========================================================================

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
