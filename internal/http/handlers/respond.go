package handlers

import (
	"errors"
	"net/http"

	"github.com/geocoder89/fittrack/internal/http/middlewares"
	"github.com/geocoder89/fittrack/internal/service"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	if id := middlewares.RequestIDFromContext(ctx); id != "" {
		return id
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.JSON(status, gin.H{
		"error": APIError{
			Code:      code,
			Message:   message,
			RequestID: requestIDFrom(ctx),
			Details:   details,
		},
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondUnAuthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, "unauthorized", message, nil)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

// RespondInternal includes the raw error text so clients can report it.
func RespondInternal(ctx *gin.Context, message string, err error) {
	var details interface{}
	if err != nil {
		details = gin.H{"error": err.Error()}
	}
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, details)
}

// RespondServiceError maps a service failure onto the error envelope.
func RespondServiceError(ctx *gin.Context, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		_ = ctx.Error(err)
		RespondInternal(ctx, "Unexpected error", err)
		return
	}

	switch se.Kind {
	case service.KindValidation:
		var details interface{}
		if se.Field != "" {
			details = gin.H{"fields": []FieldError{{Field: se.Field, Rule: "invalid", Message: se.Message}}}
		}
		RespondBadRequest(ctx, se.Message, details)
	case service.KindConflict:
		RespondError(ctx, http.StatusBadRequest, codeOr(se.Code, "conflict"), se.Message, nil)
	case service.KindAuthentication:
		// bad login credentials are a client input problem, token failures are not
		if se.Code == service.CodeInvalidCredentials {
			RespondError(ctx, http.StatusBadRequest, se.Code, se.Message, nil)
			return
		}
		RespondError(ctx, http.StatusUnauthorized, codeOr(se.Code, "unauthorized"), se.Message, nil)
	case service.KindNotFound:
		RespondNotFound(ctx, se.Message)
	default:
		_ = ctx.Error(err)
		var cause error = se
		if se.Err != nil {
			cause = se.Err
		}
		RespondInternal(ctx, se.Message, cause)
	}
}

func codeOr(code, fallback string) string {
	if code == "" {
		return fallback
	}
	return code
}
