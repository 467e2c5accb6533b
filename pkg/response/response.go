package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the shape of every non-2xx response.
type ErrorBody struct {
	Message   string            `json:"message"`
	RequestID string            `json:"request_id,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// MessageBody acknowledges an operation that has no resource to return.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes data as the response body. Resources are returned bare, without an envelope.
func JSON(ctx *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}

func Message(ctx *gin.Context, status int, message string) {
	JSON(ctx, status, MessageBody{Message: message})
}

// Error aborts the chain and writes an ErrorBody carrying the request id.
func Error(ctx *gin.Context, status int, message string, details map[string]string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, ErrorBody{
		Message:   message,
		RequestID: ctx.GetString("request_id"),
		Errors:    details,
	})
}
