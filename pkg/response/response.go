package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the structured error every failing path returns.
// Kind is one of: validation, auth, authorization, upload, not_found,
// rate_limit, internal.
type ErrorBody struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type APIResponse[T any] struct {
	Status    int        `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	RequestID string     `json:"request_id"`
	Success   bool       `json:"success"`
	Message   string     `json:"message,omitempty"`
	Data      T          `json:"data"`
	Meta      any        `json:"meta,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
}

// Success writes the envelope with the given payload. Data may be nil; the
// profile endpoint relies on an explicit null body when no session exists.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	})
}

// Error writes a structured error envelope.
func Error(ctx *gin.Context, status int, kind, message string, details map[string]string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, errEnvelope(ctx, status, kind, message, details))
}

// AbortError is Error for middleware: it also stops the handler chain.
func AbortError(ctx *gin.Context, status int, kind, message string, details map[string]string) {
	ctx.AbortWithStatusJSON(status, errEnvelope(ctx, status, kind, message, details))
}

func errEnvelope(ctx *gin.Context, status int, kind, message string, details map[string]string) APIResponse[any] {
	return APIResponse[any]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Error:     &ErrorBody{Kind: kind, Message: message, Details: details},
	}
}
