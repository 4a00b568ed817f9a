package handlers

import (
	"errors"
	"net/http"

	"aipirat/apperr"
	"aipirat/storage"

	"github.com/gin-gonic/gin"
)

// respondError writes err as a JSON error body with the matching status.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	if errors.Is(err, storage.ErrUnavailable) && !apperr.IsCode(err, apperr.CodeUnavailable) {
		err = apperr.Wrap(err, apperr.CodeUnavailable, "storage unavailable")
	}
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}
