package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-cms/cmd/api/dto"
	"blog-cms/cmd/api/services"
	"blog-cms/uploads"
)

// respondError maps service errors onto status codes. Server-side failures get
// a fixed message; the cause is attached to the gin context for the access log.
func respondError(c *gin.Context, err error, serverMsg string) {
	status := http.StatusInternalServerError
	msg := serverMsg
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		status, msg = http.StatusNotFound, "post not found"
	case errors.Is(err, services.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, uploads.ErrNotImage),
		errors.Is(err, uploads.ErrFileTooLarge),
		errors.Is(err, uploads.ErrNoFile),
		errors.Is(err, services.ErrTooManyFiles):
		status, msg = http.StatusBadRequest, err.Error()
	}
	_ = c.Error(err)
	c.JSON(status, dto.Fail(msg))
}
