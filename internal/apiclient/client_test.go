package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"backoffice-console/internal/common/config"
	apperrors "backoffice-console/internal/common/errors"
	commonhttp "backoffice-console/internal/common/http"
	"backoffice-console/internal/common/logger"
	"backoffice-console/internal/forms"
	"backoffice-console/internal/models"
	"backoffice-console/internal/session"
	"backoffice-console/pkg/query"
)

// ==========================
// Mock Navigator
// ==========================

type MockNavigator struct {
	mock.Mock
}

func (m *MockNavigator) Redirect(path string) {
	m.Called(path)
}

// ==========================
// Test Helpers
// ==========================

type fakeBackend struct {
	server    *httptest.Server
	refreshes atomic.Int32
	calls     atomic.Int32

	mu       sync.Mutex
	lastAuth []string
}

// newFakeBackend serves /items, accepting only "fresh-token", and a refresh
// endpoint driven by refresh.
func newFakeBackend(t *testing.T, refresh http.HandlerFunc) *fakeBackend {
	fb := &fakeBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/refreshToken", func(w http.ResponseWriter, r *http.Request) {
		fb.refreshes.Add(1)
		refresh(w, r)
	})
	mux.HandleFunc("/items", func(w http.ResponseWriter, r *http.Request) {
		fb.calls.Add(1)
		fb.mu.Lock()
		fb.lastAuth = append(fb.lastAuth, r.Header.Get("Authorization"))
		fb.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"1"}],"meta":{"totalPages":1}}`))
	})
	fb.server = httptest.NewServer(mux)
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) auths() []string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]string(nil), fb.lastAuth...)
}

func newTestClient(t *testing.T, baseURL string, nav Navigator, tokens models.Tokens) (*Client, *session.Service) {
	t.Helper()
	sess := session.New(session.NewMemoryStore(), logger.NewTestLogger(t))
	if !tokens.IsZero() {
		require.NoError(t, sess.SignInSuccess(context.Background(), tokens))
		require.NoError(t, sess.FetchUserSuccess(context.Background(), &models.User{ID: "admin"}))
	}
	api := config.APIConfig{BaseURL: baseURL, RefreshPath: "/api/refreshToken"}
	return New(api, commonhttp.NewClient(5*time.Second), sess, nav, logger.NewTestLogger(t)), sess
}

// ==========================
// Tests
// ==========================

func TestDo_AttachesBearerAndParses(t *testing.T) {
	var gotQuery, gotAuth, gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, nil, models.Tokens{AccessToken: "tok", RefreshToken: "ref"})
	raw, err := client.Do(context.Background(), http.MethodGet, "/companies", Options{
		Query: query.Object{{Key: "page", Value: 1}, {Key: "query", Value: query.Object{{Key: "isVerified", Value: true}}}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(raw))
	assert.Equal(t, "page=1&query%5BisVerified%5D=true", gotQuery)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "application/json", gotType)
}

func TestDo_MultipartKeepsBoundary(t *testing.T) {
	var gotType string
	var gotName string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		gotName = r.FormValue("name")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, nil, models.Tokens{AccessToken: "tok"})
	raw, err := client.Do(context.Background(), http.MethodPost, "/activities", Options{Body: forms.New().Add("name", "Yoga")})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw), "empty body decodes to an empty object")
	assert.True(t, strings.HasPrefix(gotType, "multipart/form-data; boundary="))
	assert.Equal(t, "Yoga", gotName)
}

func TestDo_RefreshAndRetryOnce(t *testing.T) {
	nav := new(MockNavigator)
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"refreshToken":"old-refresh"}`, string(body))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"accessToken":"fresh-token","refreshToken":"new-refresh"}`))
	})

	client, sess := newTestClient(t, fb.server.URL, nav, models.Tokens{AccessToken: "expired", RefreshToken: "old-refresh"})
	raw, err := client.Do(context.Background(), http.MethodGet, "/items", Options{})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"id":"1"`)

	assert.Equal(t, int32(1), fb.refreshes.Load())
	assert.Equal(t, int32(2), fb.calls.Load(), "original request plus exactly one retry")
	assert.Equal(t, []string{"Bearer expired", "Bearer fresh-token"}, fb.auths())
	assert.Equal(t, models.Tokens{AccessToken: "fresh-token", RefreshToken: "new-refresh"}, sess.Tokens())
	nav.AssertNotCalled(t, "Redirect", mock.Anything)
}

func TestDo_RefreshKeepsRefreshTokenWhenOmitted(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"fresh-token"}`))
	})

	client, sess := newTestClient(t, fb.server.URL, nil, models.Tokens{AccessToken: "expired", RefreshToken: "keep-me"})
	_, err := client.Do(context.Background(), http.MethodGet, "/items", Options{})
	require.NoError(t, err)
	assert.Equal(t, models.Tokens{AccessToken: "fresh-token", RefreshToken: "keep-me"}, sess.Tokens())
}

func TestDo_RefreshFailureSignsOut(t *testing.T) {
	tests := []struct {
		name    string
		refresh http.HandlerFunc
		tokens  models.Tokens
		wantHit int32
	}{
		{
			name: "refresh rejected",
			refresh: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			tokens:  models.Tokens{AccessToken: "expired", RefreshToken: "revoked"},
			wantHit: 1,
		},
		{
			name: "no access token returned",
			refresh: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			},
			tokens:  models.Tokens{AccessToken: "expired", RefreshToken: "r"},
			wantHit: 1,
		},
		{
			name: "no refresh token stored",
			refresh: func(w http.ResponseWriter, r *http.Request) {
				t.Error("refresh endpoint must not be called")
			},
			tokens:  models.Tokens{AccessToken: "expired"},
			wantHit: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := new(MockNavigator)
			nav.On("Redirect", LoginRoute).Once()
			fb := newFakeBackend(t, tt.refresh)

			client, sess := newTestClient(t, fb.server.URL, nav, tt.tokens)
			_, err := client.Do(context.Background(), http.MethodGet, "/items", Options{})

			require.Error(t, err)
			assert.True(t, apperrors.IsAuthError(err))
			assert.Equal(t, tt.wantHit, fb.refreshes.Load())
			assert.Equal(t, int32(1), fb.calls.Load(), "no retried request")
			assert.True(t, sess.Tokens().IsZero())
			assert.Nil(t, sess.CurrentUser())
			nav.AssertExpectations(t)
		})
	}
}

func TestDo_AbandonedRefreshKeepsSession(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		_, _ = w.Write([]byte(`{"access_token":"fresh-token"}`))
	})

	nav := new(MockNavigator)
	client, sess := newTestClient(t, fb.server.URL, nav, models.Tokens{AccessToken: "expired", RefreshToken: "still-valid"})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.Do(ctx, http.MethodGet, "/items", Options{})

	require.Error(t, err)
	assert.False(t, apperrors.IsAuthError(err))
	assert.Equal(t, models.Tokens{AccessToken: "expired", RefreshToken: "still-valid"}, sess.Tokens())
	assert.NotNil(t, sess.CurrentUser())
	nav.AssertNotCalled(t, "Redirect", LoginRoute)
}

func TestDo_SecondUnauthorizedIsNotRefreshedAgain(t *testing.T) {
	var refreshes atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/refreshToken" {
			refreshes.Add(1)
			_, _ = w.Write([]byte(`{"accessToken":"still-bad"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, nil, models.Tokens{AccessToken: "expired", RefreshToken: "r"})
	_, err := client.Do(context.Background(), http.MethodGet, "/items", Options{})
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthError(err))
	assert.Equal(t, int32(1), refreshes.Load())
}

func TestDo_ConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
		_, _ = w.Write([]byte(`{"accessToken":"fresh-token","refreshToken":"r2"}`))
	})
	client, _ := newTestClient(t, fb.server.URL, nil, models.Tokens{AccessToken: "expired", RefreshToken: "r1"})

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Do(context.Background(), http.MethodGet, "/items", Options{})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), fb.refreshes.Load())
}

func TestDo_ServerErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "server message", status: http.StatusBadRequest, body: `{"message":"Plan name already used"}`, wantMsg: "Plan name already used"},
		{name: "message list", status: http.StatusBadRequest, body: `{"message":["name should not be empty","price must be a number"]}`, wantMsg: "name should not be empty, price must be a number"},
		{name: "no body", status: http.StatusInternalServerError, body: ``, wantMsg: "request failed with status 500"},
		{name: "not json", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantMsg: "request failed with status 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, _ := newTestClient(t, server.URL, nil, models.Tokens{AccessToken: "tok"})
			_, err := client.Do(context.Background(), http.MethodPost, "/plans", Options{Body: map[string]string{"name": "Gold"}})
			require.Error(t, err)

			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeRequestFailed, stdErr.Code)
			assert.Equal(t, tt.status, stdErr.Status)
			assert.Equal(t, tt.wantMsg, stdErr.Message)
		})
	}
}

func TestDo_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, _ := newTestClient(t, url, nil, models.Tokens{AccessToken: "tok"})
	_, err := client.Do(context.Background(), http.MethodGet, "/items", Options{})
	require.Error(t, err)
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNetworkError, stdErr.Code)
	assert.Equal(t, apperrors.GenericNetworkMessage, apperrors.UserMessage(err))
}

func TestDo_NoAuthSkipsRefresh(t *testing.T) {
	var refreshes atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/refreshToken" {
			refreshes.Add(1)
		}
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, nil, models.Tokens{AccessToken: "tok", RefreshToken: "r"})
	_, err := client.Do(context.Background(), http.MethodPost, "/accounts/admin/login", Options{NoAuth: true})
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", apperrors.UserMessage(err))
	assert.Zero(t, refreshes.Load())
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/named" {
			w.Header().Set("Content-Disposition", `attachment; filename="bundle.zip"`)
		}
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write([]byte("PK"))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, nil, models.Tokens{AccessToken: "tok"})

	blob, err := client.Download(context.Background(), "/plain", "support_7_attachments.zip")
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), blob.Data)
	assert.Equal(t, "application/zip", blob.ContentType)
	assert.Equal(t, "support_7_attachments.zip", blob.Filename)

	blob, err = client.Download(context.Background(), "/named", "fallback.zip")
	require.NoError(t, err)
	assert.Equal(t, "bundle.zip", blob.Filename)
}

func TestCall_Decodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.FAQ{ID: "f1", Question: "Q", Answer: "A"})
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, nil, models.Tokens{AccessToken: "tok"})
	faq, err := Call[models.FAQ](context.Background(), client, http.MethodGet, "/faq/f1", Options{})
	require.NoError(t, err)
	assert.Equal(t, "Q", faq.Question)

	_, err = Call[[]models.FAQ](context.Background(), client, http.MethodGet, "/faq", Options{})
	require.Error(t, err)
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeParseError, stdErr.Code)
}
