package console

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/common/config"
	"backoffice-console/internal/notify"
)

const sessionContextKey = "console_session"

// Envelope wraps every console response.
type Envelope struct {
	Data     interface{}    `json:"data,omitempty"`
	Error    string         `json:"error,omitempty"`
	Redirect string         `json:"redirect,omitempty"`
	Toasts   []notify.Toast `json:"toasts"`

	RequestID string `json:"request_id,omitempty"`
}

func sessionFrom(c echo.Context) *ConsoleSession {
	cs, _ := c.Get(sessionContextKey).(*ConsoleSession)
	return cs
}

// envelope drains the toasts and pending redirect of the current session.
func envelope(c echo.Context, data interface{}) Envelope {
	env := Envelope{Data: data, Toasts: []notify.Toast{}}
	if cs := sessionFrom(c); cs != nil {
		env.Toasts = cs.Toasts.Drain()
		env.Redirect = cs.TakeRedirect()
	}
	return env
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, envelope(c, data))
}

func ok(c echo.Context, data interface{}) error {
	return respond(c, http.StatusOK, data)
}

// redirectTo answers with a guard redirect.
func redirectTo(c echo.Context, status int, target string) error {
	env := envelope(c, nil)
	env.Redirect = target
	return c.JSON(status, env)
}

func loginRedirect(c echo.Context) error {
	return redirectTo(c, http.StatusUnauthorized, apiclient.LoginRoute)
}

func sendBlob(c echo.Context, blob *apiclient.Blob) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+blob.Filename+`"`)
	return c.Blob(http.StatusOK, blob.ContentType, blob.Data)
}

func cookie(cfg config.ServerConfig, id string) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
