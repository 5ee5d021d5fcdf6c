// Package resourcetest wires a resource runtime against a fake backend.
package resourcetest

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/common/config"
	commonhttp "backoffice-console/internal/common/http"
	"backoffice-console/internal/common/logger"
	"backoffice-console/internal/models"
	"backoffice-console/internal/notify"
	"backoffice-console/internal/resource"
	"backoffice-console/internal/session"
)

// Request is what the fake backend received.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
	Form     *multipart.Form
}

// JSON decodes the request body into v.
func (r Request) JSON(t testing.TB, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v))
}

// Env is a signed-in runtime talking to an httptest server.
type Env struct {
	Runtime  *resource.Runtime
	Session  *session.Service
	Toasts   *notify.Recorder
	Server   *httptest.Server
	Redirect []string

	mu       sync.Mutex
	requests []Request
}

// Requests returns a copy of every request received so far.
func (e *Env) Requests() []Request {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Request(nil), e.requests...)
}

// Last returns the most recent request.
func (e *Env) Last(t testing.TB) Request {
	t.Helper()
	reqs := e.Requests()
	require.NotEmpty(t, reqs, "backend received no request")
	return reqs[len(reqs)-1]
}

// New starts a backend served by handler and signs a session in.
func New(t testing.TB, handler http.HandlerFunc) *Env {
	t.Helper()
	env := &Env{}

	env.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := Request{Method: r.Method, Path: r.URL.Path, RawQuery: r.URL.RawQuery, Header: r.Header.Clone()}
		if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); strings.HasPrefix(mt, "multipart/") {
			if err := r.ParseMultipartForm(32 << 20); err == nil {
				rec.Form = r.MultipartForm
			}
		} else {
			rec.Body, _ = io.ReadAll(r.Body)
		}
		env.mu.Lock()
		env.requests = append(env.requests, rec)
		env.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(env.Server.Close)

	log := logger.NewTestLogger(t)
	env.Session = session.New(session.NewMemoryStore(), log)
	ctx := context.Background()
	require.NoError(t, env.Session.SignInSuccess(ctx, models.Tokens{AccessToken: "test-token", RefreshToken: "test-refresh"}))
	require.NoError(t, env.Session.FetchUserSuccess(ctx, &models.User{ID: "admin-1", Email: "admin@example.com"}))

	api := config.APIConfig{
		BaseURL:     env.Server.URL,
		LoginPath:   "/accounts/admin/login",
		ProfilePath: "/accounts/profile",
		RefreshPath: "/api/refreshToken",
	}
	nav := apiclient.NavigatorFunc(func(path string) { env.Redirect = append(env.Redirect, path) })
	client := apiclient.New(api, commonhttp.NewClient(5*time.Second), env.Session, nav, log)

	env.Toasts = notify.NewRecorder(log)
	env.Runtime = resource.NewRuntime(client, resource.NewCache(0, log), env.Toasts, log)
	return env
}

// Respond writes v as JSON with status.
func Respond(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSON answers every request with status and v.
func JSON(status int, v interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		Respond(w, status, v)
	}
}
