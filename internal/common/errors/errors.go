// Package errors provides the console's error taxonomy.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Expired or invalid credentials that survived the single refresh attempt.
	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	// Client side form validation, raised before any request is sent.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	// Backend answered with a non-2xx status.
	ErrCodeRequestFailed ErrorCode = "REQUEST_FAILED"
	// Transport failure, no response at all.
	ErrCodeNetworkError ErrorCode = "NETWORK_ERROR"
	// Response could not be decoded into the expected shape.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"

	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// GenericNetworkMessage is shown to users for transport and parse failures.
const GenericNetworkMessage = "network error, please try again"

// Sentinels wrapped with %w by the session and fetch layers.
var (
	ErrNotAuthenticated = stderrors.New("NOT_AUTHENTICATED")
	ErrRefreshFailed    = stderrors.New("REFRESH_FAILED")
	ErrNoRefreshToken   = stderrors.New("NO_REFRESH_TOKEN")
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Status    int                    `json:"status,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key to the error metadata and returns the error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

func NewAuthenticationError(details string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthenticationFailed,
		Message:   "session expired, please sign in again",
		Details:   details,
		Status:    http.StatusUnauthorized,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewValidationError carries the per-field messages in Metadata["fields"].
func NewValidationError(details string, fields []string) *StandardError {
	e := &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "validation failed",
		Details:   details,
		Status:    http.StatusUnprocessableEntity,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
	if len(fields) > 0 {
		e.Message = strings.Join(fields, "; ")
		e.WithMetadata("fields", fields)
	}
	return e
}

// NewRequestFailedError uses the server message when there is one.
func NewRequestFailedError(status int, serverMessage string) *StandardError {
	msg := serverMessage
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}
	return &StandardError{
		Code:      ErrCodeRequestFailed,
		Message:   msg,
		Status:    status,
		Retryable: status >= 500,
		Timestamp: time.Now().UTC(),
	}
}

func NewNetworkError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetworkError,
		Message:   GenericNetworkMessage,
		Details:   errString(err),
		Status:    http.StatusBadGateway,
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseError,
		Message:   GenericNetworkMessage,
		Details:   errString(err),
		Status:    http.StatusBadGateway,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewSessionStoreError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   fmt.Sprintf("session %s failed", op),
		Details:   errString(err),
		Status:    http.StatusInternalServerError,
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewNotFoundError(resource, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("%s %s not found", resource, id),
		Status:    http.StatusNotFound,
		Timestamp: time.Now().UTC(),
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError unwraps err to a *StandardError when there is one in the chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// IsAuthError reports whether err means the user has to sign in again.
func IsAuthError(err error) bool {
	if stderrors.Is(err, ErrNotAuthenticated) || stderrors.Is(err, ErrRefreshFailed) || stderrors.Is(err, ErrNoRefreshToken) {
		return true
	}
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr.Code == ErrCodeAuthenticationFailed
	}
	return false
}

// UserMessage turns any error into the text shown in an error toast.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr.Message
	}
	if IsAuthError(err) {
		return "session expired, please sign in again"
	}
	return GenericNetworkMessage
}

// StatusOf returns the HTTP status that best represents err.
func StatusOf(err error) int {
	if stdErr, ok := AsStandardError(err); ok && stdErr.Status != 0 {
		return stdErr.Status
	}
	if IsAuthError(err) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "AUTH"):
		return "AUTH"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "REQUEST") || strings.Contains(codeStr, "NOT_FOUND"):
		return "REQUEST"
	case strings.Contains(codeStr, "NETWORK") || strings.Contains(codeStr, "PARSE"):
		return "NETWORK"
	default:
		return "OTHER"
	}
}
