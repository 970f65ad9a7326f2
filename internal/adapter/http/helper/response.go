package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/response"
)

// StatusFor maps a use-case error kind to its HTTP status.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindAccountIDExists:
		return http.StatusConflict
	case domain.KindPasswordMismatch, domain.KindBadRequest:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func SendError(c *gin.Context, statusCode int, message string, details ...response.ValidationError) {
	c.AbortWithStatusJSON(statusCode, response.ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// SendUseCaseError writes err as {"error": message}. Only the public message
// of the error kind is exposed.
func SendUseCaseError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	message := domain.ErrInfrastructure.PublicMessage()

	var uc *domain.UseCaseError
	if errors.As(err, &uc) {
		message = uc.PublicMessage()
	}

	SendError(c, StatusFor(kind), message)
}

func SendValidationError(c *gin.Context, err error) {
	details := validation.FormatValidationErrors(err)

	message := "Invalid request body"
	if len(details) > 0 {
		message = details[0].Message
	}

	SendError(c, http.StatusBadRequest, message, details...)
}

func SendUnauthorizedError(c *gin.Context) {
	SendError(c, http.StatusUnauthorized, domain.ErrUnauthorized.PublicMessage())
}

func SendBadRequestError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}
