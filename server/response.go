package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/rxfetch/errors"
)

// RespondWithError derives the status and body from err when it is an
// *errors.AppError; anything else becomes a 500 INTERNAL_ERROR.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.Internal(err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 JSON response.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}
