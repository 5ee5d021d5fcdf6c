package resource

import (
	"context"

	"backoffice-console/internal/apiclient"
	apperrors "backoffice-console/internal/common/errors"
	"backoffice-console/internal/common/logger"
	"backoffice-console/internal/common/metrics"
	"backoffice-console/internal/notify"
	"backoffice-console/pkg/query"
)

// Runtime bundles what every resource client needs within one session.
type Runtime struct {
	API    *apiclient.Client
	Cache  *Cache
	Notify notify.Notifier
	Errors *apperrors.ErrorHandler
	Log    logger.Logger
}

func NewRuntime(api *apiclient.Client, cache *Cache, n notify.Notifier, log logger.Logger) *Runtime {
	if n == nil {
		n = notify.Discard{}
	}
	return &Runtime{
		API:    api,
		Cache:  cache,
		Notify: n,
		Errors: apperrors.NewErrorHandler(log),
		Log:    log,
	}
}

// Mutation describes one create/update/delete action.
type Mutation struct {
	// Op names the action in logs, e.g. "activities.create".
	Op string
	// Invalidates lists the namespaces dropped on success.
	Invalidates []string
	Success     string
	Failure     string
}

func (m Mutation) namespace() string {
	if len(m.Invalidates) == 0 {
		return "none"
	}
	return m.Invalidates[0]
}

// Mutate runs fn. On success the namespaces are invalidated and the success
// toast is emitted. On failure the cache is left alone and an error toast
// carrying the failure reason is emitted.
func Mutate[T any](ctx context.Context, rt *Runtime, m Mutation, fn func(context.Context) (T, error)) (T, error) {
	v, err := fn(ctx)
	if err != nil {
		metrics.Mutations.WithLabelValues(m.namespace(), "failure").Inc()
		stdErr := rt.Errors.Handle(m.Op, err)
		rt.Notify.Error(failureMessage(m.Failure, stdErr))
		return v, stdErr
	}

	metrics.Mutations.WithLabelValues(m.namespace(), "success").Inc()
	rt.Cache.Invalidate(m.Invalidates...)
	if m.Success != "" {
		rt.Notify.Success(m.Success)
	}
	return v, nil
}

// Reject reports a failure detected before any request, such as a form that
// did not validate. It is shaped like a failed Mutate.
func Reject(rt *Runtime, m Mutation, err error) error {
	stdErr := rt.Errors.Handle(m.Op, err)
	rt.Notify.Error(failureMessage(m.Failure, stdErr))
	return stdErr
}

// Fetch wraps Query with the error toast of a failed read.
func Fetch[T any](ctx context.Context, rt *Runtime, op, namespace string, params query.Object, fn func(context.Context) (T, error)) (T, error) {
	v, err := Query(ctx, rt.Cache, namespace, params, fn)
	if err != nil {
		stdErr := rt.Errors.Handle(op, err)
		rt.Notify.Error(stdErr.Message)
		return v, stdErr
	}
	return v, nil
}

func failureMessage(prefix string, err *apperrors.StandardError) string {
	if prefix == "" {
		return err.Message
	}
	return prefix + ": " + err.Message
}
