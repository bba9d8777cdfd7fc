// utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// StatusForKind maps an error kind to its HTTP status.
func StatusForKind(kind ErrorKind) int {
	switch kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindConfiguration:
		return http.StatusUnprocessableEntity
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithAppError writes err as a structured response. Internal failures are
// logged with their cause and surfaced without detail.
func RespondWithAppError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	status := StatusForKind(appErr.Kind)

	log := Logger(c)
	switch appErr.Kind {
	case KindInternal, KindTimeout:
		log.Error("request failed",
			zap.String("kind", string(appErr.Kind)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(appErr.Err))
	default:
		log.Warn("request rejected",
			zap.String("kind", string(appErr.Kind)),
			zap.String("message", appErr.Message),
			zap.String("field", appErr.Field))
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: appErr.Message, Field: appErr.Field})
}
