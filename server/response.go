package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/todoapi/errors"
)

// RespondWithError inspects err: if it is an *apperrors.AppError the status,
// headers and structured body are derived from it; otherwise a generic 500
// is sent. The error is attached to the gin context for request logging.
func RespondWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}
	for k, v := range appErr.Headers {
		c.Header(k, v)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 response with data as the body.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// RespondCreated sends a 201 response with data as the body.
func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// RespondNoContent sends a 204 with no body.
func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
