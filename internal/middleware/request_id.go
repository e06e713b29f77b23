package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ===========================================================================
// Request ID Middleware
// Unique ID per request for tracing; echoed back in the response header.
// ===========================================================================

const (
	// RequestIDKey gin context key for the request ID
	RequestIDKey = "request_id"

	// RequestIDHeader header carrying the request ID
	RequestIDHeader = "X-Request-ID"
)

// RequestID tags every request with an ID. A client-supplied
// X-Request-ID is kept; otherwise a fresh UUID is generated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID returns the request ID from the gin context, or "".
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDKey); exists {
		return id.(string)
	}
	return ""
}
