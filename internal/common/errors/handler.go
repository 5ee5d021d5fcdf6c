package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"time"
)

// ErrorHandler normalizes failures raised at the resource boundary and logs
// them once with their category.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle normalizes err, logs it against op and returns the normalized error.
func (h *ErrorHandler) Handle(op string, err error) *StandardError {
	if err == nil {
		return nil
	}
	stdErr := Normalize(err)
	h.logError(op, stdErr)
	return stdErr
}

// Normalize maps arbitrary errors onto the taxonomy.
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	if IsAuthError(err) {
		return NewAuthenticationError(err.Error(), err)
	}

	var netErr net.Error
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.As(err, &netErr):
		return NewNetworkError(err)
	case stderrors.As(err, &syntaxErr), stderrors.As(err, &typeErr):
		return NewParseError(err)
	}

	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   GenericNetworkMessage,
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func (h *ErrorHandler) logError(op string, stdErr *StandardError) {
	if h.logger == nil {
		return
	}
	fields := map[string]interface{}{
		"operation":     op,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"status":        stdErr.Status,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	// validation never reaches the network, it is expected user input
	if stdErr.Code == ErrCodeValidationFailed {
		h.logger.Warn("Operation rejected", fields)
		return
	}
	h.logger.Error("Operation failed", fields)
}
