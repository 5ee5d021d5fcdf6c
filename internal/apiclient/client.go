// Package apiclient is the authenticated fetch layer. Every backend call goes
// through Client, which attaches the bearer token, refreshes it once on 401
// and signs the session out when the refresh is refused.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync"

	"backoffice-console/internal/common/config"
	apperrors "backoffice-console/internal/common/errors"
	commonhttp "backoffice-console/internal/common/http"
	"backoffice-console/internal/common/logger"
	"backoffice-console/internal/common/metrics"
	"backoffice-console/internal/forms"
	"backoffice-console/internal/models"
	"backoffice-console/internal/session"
	"backoffice-console/pkg/query"
)

// LoginRoute is where the session is sent once it cannot be recovered.
const LoginRoute = "/login"

// Navigator moves the user to another client route.
type Navigator interface {
	Redirect(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Redirect(path string) { f(path) }

// Options of a single call. Body is either a JSON-encodable value or a
// *forms.Multipart.
type Options struct {
	Body    interface{}
	Query   query.Object
	Headers map[string]string
	// NoAuth sends the request without a bearer token and skips the
	// refresh on 401, used by login.
	NoAuth bool
}

// Blob is a downloaded file.
type Blob struct {
	Data        []byte
	ContentType string
	Filename    string
}

type Client struct {
	api     config.APIConfig
	http    *commonhttp.Client
	session *session.Service
	nav     Navigator
	log     logger.Logger

	refreshMu sync.Mutex
}

func New(api config.APIConfig, hc *commonhttp.Client, sess *session.Service, nav Navigator, log logger.Logger) *Client {
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	return &Client{
		api:     api,
		http:    hc,
		session: sess,
		nav:     nav,
		log:     log.WithFields(map[string]interface{}{"component": "apiclient"}),
	}
}

// Config returns the backend settings the client was built with.
func (c *Client) Config() config.APIConfig {
	return c.api
}

// Session returns the session the client reads tokens from.
func (c *Client) Session() *session.Service {
	return c.session
}

type response struct {
	status int
	header http.Header
	body   []byte
}

type payload struct {
	data        []byte
	contentType string
}

// Do performs the call and returns the JSON body, "{}" when the body is
// empty or not JSON.
func (c *Client) Do(ctx context.Context, method, path string, opts Options) (json.RawMessage, error) {
	resp, err := c.exchange(ctx, method, path, opts)
	if err != nil {
		return nil, err
	}
	body := bytes.TrimSpace(resp.body)
	if len(body) == 0 || !json.Valid(body) {
		return json.RawMessage("{}"), nil
	}
	return json.RawMessage(body), nil
}

// Download performs a GET and returns the raw body. fallbackName is used
// when the response carries no filename.
func (c *Client) Download(ctx context.Context, path, fallbackName string) (*Blob, error) {
	resp, err := c.exchange(ctx, http.MethodGet, path, Options{})
	if err != nil {
		return nil, err
	}
	blob := &Blob{
		Data:        resp.body,
		ContentType: resp.header.Get("Content-Type"),
		Filename:    fallbackName,
	}
	if _, params, err := mime.ParseMediaType(resp.header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		blob.Filename = params["filename"]
	}
	if blob.ContentType == "" {
		blob.ContentType = "application/octet-stream"
	}
	return blob, nil
}

func (c *Client) exchange(ctx context.Context, method, path string, opts Options) (*response, error) {
	body, err := encodeBody(opts.Body)
	if err != nil {
		return nil, err
	}
	target := c.api.URL(path)
	if len(opts.Query) > 0 {
		if qs := query.Serialize(opts.Query); qs != "" {
			target += "?" + qs
		}
	}

	token := ""
	if !opts.NoAuth {
		token = c.session.Tokens().AccessToken
	}
	resp, err := c.send(ctx, method, target, body, opts.Headers, token)
	if err != nil {
		return nil, err
	}

	if resp.status == http.StatusUnauthorized && !opts.NoAuth {
		fresh, err := c.refresh(ctx, token)
		if err != nil {
			return nil, err
		}
		resp, err = c.send(ctx, method, target, body, opts.Headers, fresh)
		if err != nil {
			return nil, err
		}
		if resp.status == http.StatusUnauthorized {
			c.log.Warn("Request still unauthorized after refresh", map[string]interface{}{"method": method, "path": path})
			return nil, apperrors.NewAuthenticationError("unauthorized after token refresh", apperrors.ErrNotAuthenticated)
		}
	}

	if resp.status < 200 || resp.status >= 300 {
		msg := serverMessage(resp.body)
		c.log.Warn("Request failed", map[string]interface{}{
			"method": method,
			"path":   path,
			"status": resp.status,
		})
		return nil, apperrors.NewRequestFailedError(resp.status, msg)
	}
	return resp, nil
}

func encodeBody(body interface{}) (*payload, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case *forms.Multipart:
		data, ct, err := b.Encode()
		if err != nil {
			return nil, fmt.Errorf("encode multipart body: %w", err)
		}
		return &payload{data: data, contentType: ct}, nil
	case json.RawMessage:
		return &payload{data: b, contentType: "application/json"}, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return &payload{data: data, contentType: "application/json"}, nil
}

func (c *Client) send(ctx context.Context, method, target string, body *payload, headers map[string]string, token string) (*response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body.data)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	contentType := "application/json"
	if body != nil {
		contentType = body.contentType
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return nil, apperrors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewNetworkError(err)
	}
	return &response{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

// refresh exchanges the refresh token for a new pair. Concurrent callers
// that observed the same stale token share one refresh call.
func (c *Client) refresh(ctx context.Context, stale string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	current := c.session.Tokens()
	if current.AccessToken != stale {
		if current.AccessToken == "" {
			// a concurrent refresh already failed and signed the session out
			return "", apperrors.NewAuthenticationError("session was signed out", apperrors.ErrRefreshFailed)
		}
		return current.AccessToken, nil
	}

	if current.RefreshToken == "" {
		return "", c.signOut(ctx, apperrors.ErrNoRefreshToken)
	}

	c.log.Info("Refreshing access token", map[string]interface{}{"path": c.api.RefreshPath})
	body, err := encodeBody(models.RefreshRequest{RefreshToken: current.RefreshToken})
	if err != nil {
		return "", c.signOut(ctx, err)
	}
	resp, err := c.send(ctx, http.MethodPost, c.api.URL(c.api.RefreshPath), body, nil, "")
	if err != nil {
		if ctx.Err() != nil {
			// the caller went away; the stored pair is still usable
			c.log.Warn("Token refresh abandoned", map[string]interface{}{"error": ctx.Err().Error()})
			return "", err
		}
		return "", c.signOut(ctx, fmt.Errorf("%w: %v", apperrors.ErrRefreshFailed, err))
	}
	if resp.status < 200 || resp.status >= 300 {
		return "", c.signOut(ctx, fmt.Errorf("%w: status %d", apperrors.ErrRefreshFailed, resp.status))
	}

	var rr models.RefreshResponse
	if err := json.Unmarshal(resp.body, &rr); err != nil {
		return "", c.signOut(ctx, fmt.Errorf("%w: %v", apperrors.ErrRefreshFailed, err))
	}
	pair := rr.Pair(current.RefreshToken)
	if pair.AccessToken == "" {
		return "", c.signOut(ctx, fmt.Errorf("%w: no access token in response", apperrors.ErrRefreshFailed))
	}

	if err := c.session.SignInSuccess(ctx, pair); err != nil {
		c.log.Warn("Refreshed tokens not persisted", map[string]interface{}{"error": err.Error()})
	}
	metrics.TokenRefreshes.WithLabelValues("success").Inc()
	return pair.AccessToken, nil
}

func (c *Client) signOut(ctx context.Context, cause error) error {
	metrics.TokenRefreshes.WithLabelValues("failure").Inc()
	c.log.Warn("Token refresh failed, signing out", map[string]interface{}{"error": cause.Error()})

	if err := c.session.ResetAuth(ctx); err != nil {
		c.log.Warn("Session reset not persisted", map[string]interface{}{"error": err.Error()})
	}
	if err := c.session.ResetUser(ctx); err != nil {
		c.log.Warn("Session reset not persisted", map[string]interface{}{"error": err.Error()})
	}
	c.nav.Redirect(LoginRoute)
	return apperrors.NewAuthenticationError(cause.Error(), cause)
}

// serverMessage extracts "message" from a JSON error body. Validation
// failures may send a list of messages.
func serverMessage(body []byte) string {
	var parsed struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if len(parsed.Message) > 0 {
		var s string
		if err := json.Unmarshal(parsed.Message, &s); err == nil && s != "" {
			return s
		}
		var list []string
		if err := json.Unmarshal(parsed.Message, &list); err == nil && len(list) > 0 {
			return strings.Join(list, ", ")
		}
	}
	return parsed.Error
}
