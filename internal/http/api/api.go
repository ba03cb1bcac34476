package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/ummah/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/ummah/internal/model"
)

type APIError struct {
	Code    int
	Message string
}

func BadRequest(msg string) *APIError   { return &APIError{Code: http.StatusBadRequest, Message: msg} }
func Internal(msg string) *APIError     { return &APIError{Code: http.StatusInternalServerError, Message: msg} }
func Unauthorized(msg string) *APIError { return &APIError{Code: http.StatusUnauthorized, Message: msg} }

type HandlerFuncWithAuth func(ctx *gin.Context, user *model.User) (any, *APIError)
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

// HandlerFuncOptionalAuth receives a nil user for anonymous callers.
type HandlerFuncOptionalAuth func(ctx *gin.Context, user *model.User) (any, *APIError)

func respond(ctx *gin.Context, result any, apiErr *APIError) {
	if apiErr != nil {
		ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func ResolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.GetCurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiErr := h(ctx, user)
		respond(ctx, result, apiErr)
	}
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		respond(ctx, result, apiErr)
	}
}

func ResolveEndpointOptionalAuth(h HandlerFuncOptionalAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, _ := middleware.GetCurrentUser(ctx)
		result, apiErr := h(ctx, user)
		respond(ctx, result, apiErr)
	}
}
