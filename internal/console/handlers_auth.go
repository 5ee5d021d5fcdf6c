package console

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"backoffice-console/internal/models"
	"backoffice-console/internal/resources/analytics"
	"backoffice-console/internal/router"
	"backoffice-console/internal/session"
)

type sessionView struct {
	Authenticated bool            `json:"authenticated"`
	User          *models.User    `json:"user,omitempty"`
	Claims        *session.Claims `json:"claims,omitempty"`
}

type routeView struct {
	Route  string            `json:"route,omitempty"`
	Params map[string]string `json:"params,omitempty"`
	IsNew  bool              `json:"isNew"`
}

func (h *handlers) login(c echo.Context) error {
	cs := sessionFrom(c)
	var req models.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := cs.Account.Login(c.Request().Context(), req); err != nil {
		return err
	}
	h.log.Info("Admin signed in", map[string]interface{}{"session": cs.ID})
	return ok(c, sessionView{Authenticated: true, User: cs.Session.CurrentUser()})
}

func (h *handlers) logout(c echo.Context) error {
	cs := sessionFrom(c)
	if err := cs.Account.Logout(c.Request().Context()); err != nil {
		h.log.Warn("Logout not persisted", map[string]interface{}{"session": cs.ID, "error": err.Error()})
	}
	return ok(c, sessionView{})
}

func (h *handlers) sessionState(c echo.Context) error {
	cs := sessionFrom(c)
	view := sessionView{Authenticated: cs.Session.IsAuthenticated(), User: cs.Session.CurrentUser()}
	if view.Authenticated {
		if claims, err := cs.Session.Claims(); err == nil {
			view.Claims = claims
		}
	}
	return ok(c, view)
}

// route resolves a client path against the guard table.
func (h *handlers) route(c echo.Context) error {
	cs := sessionFrom(c)
	d := router.Resolve(c.QueryParam("path"), cs.Session.IsAuthenticated())
	if d.Redirect != "" {
		status := http.StatusOK
		if d.Redirect == router.LoginPath {
			status = http.StatusUnauthorized
		}
		return redirectTo(c, status, d.Redirect)
	}
	return ok(c, routeView{Route: d.Route.Name, Params: d.Params, IsNew: d.IsNew()})
}

func (h *handlers) account(c echo.Context) error {
	cs := sessionFrom(c)
	if err := cs.Account.FetchCurrentUser(c.Request().Context()); err != nil {
		return err
	}
	return ok(c, cs.Session.CurrentUser())
}

func (h *handlers) dashboard(c echo.Context) error {
	cs := sessionFrom(c)
	stats, err := analytics.New(cs.Runtime).Get(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, stats)
}
