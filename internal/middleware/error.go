package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/thali/backend/internal/types"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler converts errors attached with c.Error into the JSON error
// envelope and recovers panics into a 500 response
func ErrorHandler(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.WithField("request_id", c.GetString(RequestIDKey)).Errorf("Panic: %v", rec)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "An internal server error occurred."})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, message := describe(err)

		entry := logger.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"status":     status,
		})
		if status >= http.StatusInternalServerError {
			entry.Errorf("Request failed: %v", err)
		} else {
			entry.Warnf("Request rejected: %v", err)
		}

		c.JSON(status, ErrorResponse{Error: message})
	}
}

// describe maps err to its status code and caller-facing message
func describe(err error) (int, string) {
	var appErr *types.Error
	if errors.As(err, &appErr) {
		return appErr.Kind.StatusCode(), appErr.Message
	}
	return http.StatusInternalServerError, "An internal server error occurred: " + err.Error()
}
