package middleware

import "github.com/gin-gonic/gin"

// RequestIDHeader carries the request ID in and out of the service.
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the key used to store the request ID in the Gin context.
const requestIDKey = contextKey("requestID")

// GetRequestIDFromContext retrieves the request ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetRequestIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(requestIDKey))
	if !exists {
		// check in the request context as well
		if v, ok := c.Request.Context().Value(requestIDKey).(string); ok {
			return v, true
		}
		return "", false
	}

	requestID, ok := val.(string)
	if !ok {
		return "", false
	}

	return requestID, true
}
