package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/td0m/studyman/internal/apperrors"
)

// Envelope wraps error responses. Successful responses are bare JSON so
// that clients of the stub get exactly what they stored.
type Envelope struct {
	Error *apperrors.Error `json:"error"`
}

func JSON(c *gin.Context, status int, data any) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

func Created(c *gin.Context, data any) {
	JSON(c, http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, err error) {
	appErr := apperrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.AbortWithStatusJSON(appErr.Status, Envelope{Error: appErr})
}
