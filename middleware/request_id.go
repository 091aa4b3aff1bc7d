package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jaylenwa/goblog/utils"
)

// RequestID tags each request with a unique id, echoed in the response
// headers and picked up by the access log.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(utils.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Writer.Header().Set(utils.RequestIDHeader, requestID)
		ctx.Next()
	}
}
