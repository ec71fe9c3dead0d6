package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondError writes {"status": false, "error": message} with the status code of the error kind.
// Internal errors are logged with their cause and surfaced with a generic message.
func RespondError(c *gin.Context, err error) {
	code := StatusCode(err)
	if KindOf(err) == KindInternal {
		var appErr *AppError
		cause := err
		if errors.As(err, &appErr) && appErr.Err != nil {
			cause = appErr.Err
		}
		ErrorLogger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).WithError(cause).Error("request failed")
		err = Internal(cause)
	}
	c.JSON(code, JSONResponse{
		Status: false,
		Error:  err.Error(),
	})
}
