package handler

import (
	"net/http"

	"github.com/blues/chainstats/internal/apperr"
	"github.com/blues/chainstats/internal/logger"
	"github.com/gin-gonic/gin"
)

// ErrorResponse writes err with its mapped status. Store and other uncoded
// failures are logged and answered generically.
func ErrorResponse(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		logger.Error("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		message = "internal server error"
	}

	c.JSON(status, gin.H{"error": message})
}
