package console

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "backoffice-console/internal/common/errors"
	"backoffice-console/internal/common/logger"
	"backoffice-console/internal/console/middleware"
)

// NewHTTPErrorHandler writes every handler error as an Envelope carrying the
// toasts and redirect already queued by the resource layer.
func NewHTTPErrorHandler(log logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Internal server error"

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			message = fmt.Sprintf("%v", httpErr.Message)
		} else if stdErr, ok := apperrors.AsStandardError(err); ok {
			code = apperrors.StatusOf(stdErr)
			message = stdErr.Message
		}

		requestID := middleware.GetRequestID(c)
		if requestID == "" {
			requestID = "unknown"
		}

		fields := map[string]interface{}{
			"request_id": requestID,
			"status":     code,
			"path":       c.Path(),
			"error":      err.Error(),
		}
		if code >= 500 {
			log.Error("Console request failed", fields)
		} else {
			log.Warn("Console request rejected", fields)
		}

		env := envelope(c, nil)
		env.Error = message
		env.RequestID = requestID
		if code == http.StatusUnauthorized && env.Redirect == "" && apperrors.IsAuthError(err) {
			env.Redirect = "/login"
		}
		if err := c.JSON(code, env); err != nil {
			log.Error("Failed to write error response", map[string]interface{}{"error": err.Error()})
		}
	}
}
