package controllers

import (
	"errors"
	"log"
	"net/http"

	"teamup/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError answers with the status code and user-visible message the
// error's kind resolves to. Validation errors answer with their per-field
// messages instead.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Kind == apperrors.Validation && len(appErr.Fields) > 0 {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"errors": appErr.Fields})
		return
	}

	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("Unhandled error: %v", err)
	}
	c.JSON(status, gin.H{"error": apperrors.UserMessage(err)})
}
