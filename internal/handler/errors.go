package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ourystd/kaherecode/internal/domain"
	"github.com/ourystd/kaherecode/internal/logger"
	"github.com/ourystd/kaherecode/internal/middleware"
)

// respondError maps domain errors to HTTP status codes. Unrecognized
// errors become opaque 500s; their detail is only logged.
func respondError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": validationErrs,
		})
		return
	}

	if precondition, ok := domain.IsPublishPrecondition(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          precondition.Error(),
			"missing_fields": precondition.Missing,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domain.ErrPublishedTutorialDelete):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAccountNotConfirmed):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrWrongPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrMediaUpload):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
