package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type contextKey string

// RequestIDKey is the context key under which the request ID travels.
const RequestIDKey contextKey = "request_id"

// HeaderRequestID is the header used to propagate request IDs to and
// from collaborating services.
const HeaderRequestID = "X-Request-ID"

// RequestID assigns each request an ID, honoring one supplied by the
// caller, and stores it on the request context for downstream clients
// and event publishers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := context.WithValue(c.Request.Context(), RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)

		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// FromContext returns the request ID carried by ctx, if any.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
