// Package notify carries user-visible toasts from the resource layer to
// whatever renders them.
package notify

import (
	"sync"

	"backoffice-console/internal/common/logger"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Toast struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives one call per finished user action.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Recorder buffers toasts until the console drains them into a response.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
	log    logger.Logger
}

func NewRecorder(log logger.Logger) *Recorder {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Recorder{log: log.WithFields(map[string]interface{}{"component": "notify"})}
}

func (r *Recorder) Success(message string) {
	r.push(Toast{Level: LevelSuccess, Message: message})
}

func (r *Recorder) Error(message string) {
	r.push(Toast{Level: LevelError, Message: message})
}

func (r *Recorder) push(t Toast) {
	r.mu.Lock()
	r.toasts = append(r.toasts, t)
	r.mu.Unlock()
	r.log.Debug("Toast", map[string]interface{}{"level": string(t.Level), "message": t.Message})
}

// Drain returns the pending toasts and empties the buffer. It never returns nil.
func (r *Recorder) Drain() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.toasts
	r.toasts = nil
	if out == nil {
		out = []Toast{}
	}
	return out
}

// Discard drops every toast.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
