// Package router resolves console client routes and applies the auth guard.
package router

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Route is one client route. Pattern segments starting with ':' capture.
type Route struct {
	Name    string
	Pattern string
	Public  bool
}

// Table lists every client route. Static segments win over parameters, so
// /blog/create-new wins over /blog/:articleId.
var Table = []Route{
	{Name: "login", Pattern: "/login", Public: true},
	{Name: "dashboard", Pattern: "/"},
	{Name: "clients", Pattern: "/clients"},
	{Name: "client", Pattern: "/clients/:companyId"},
	{Name: "activities", Pattern: "/activities"},
	{Name: "activity", Pattern: "/activities/:activityId"},
	{Name: "plans", Pattern: "/plans"},
	{Name: "plan", Pattern: "/plans/:planId"},
	{Name: "blog", Pattern: "/blog"},
	{Name: "articleCreate", Pattern: "/blog/create-new"},
	{Name: "article", Pattern: "/blog/:articleId"},
	{Name: "support", Pattern: "/support"},
	{Name: "supportTicket", Pattern: "/support/:supportId"},
	{Name: "settings", Pattern: "/settings"},
	{Name: "account", Pattern: "/account"},
}

// NewActivityID is the activity route id of the create form.
const NewActivityID = "new-activity"

// Decision is the outcome of resolving a path. Redirect is set when the
// caller must navigate elsewhere instead of rendering Route.
type Decision struct {
	Route    *Route            `json:"route,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

// IsNew reports whether the decision opens the activity create form.
func (d Decision) IsNew() bool {
	return d.Route != nil && d.Route.Name == "activity" && d.Params["activityId"] == NewActivityID
}

// Resolve matches path against Table and applies the guard: anonymous users
// go to /login, signed in users are sent away from it.
func Resolve(path string, authenticated bool) Decision {
	route, params, ok := match(path)
	if !ok {
		if authenticated {
			return Decision{Redirect: HomePath}
		}
		return Decision{Redirect: LoginPath}
	}
	if !route.Public && !authenticated {
		return Decision{Redirect: LoginPath}
	}
	if route.Pattern == LoginPath && authenticated {
		return Decision{Redirect: HomePath}
	}
	return Decision{Route: route, Params: params}
}

func match(path string) (*Route, map[string]string, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path = strings.TrimRight(path, "/"); path == "" {
		path = HomePath
	}
	ctx := tree.NewContext(nil, nil)
	tree.Router().Find(http.MethodGet, path, ctx)
	if h := ctx.Handler(); h == nil || h(ctx) != nil {
		return nil, nil, false
	}
	route, ok := ctx.Get(routeKey).(*Route)
	if !ok {
		return nil, nil, false
	}
	names := ctx.ParamNames()
	if len(names) == 0 {
		return route, nil, true
	}
	values := ctx.ParamValues()
	params := make(map[string]string, len(names))
	for i, name := range names {
		params[name] = values[i]
	}
	return route, params, true
}

const routeKey = "route"

var tree = newTree()

// newTree registers Table on an echo router. A matched handler stores its
// route on the context; unmatched paths land on echo's not found handler.
func newTree() *echo.Echo {
	e := echo.New()
	for i := range Table {
		route := &Table[i]
		e.Router().Add(http.MethodGet, route.Pattern, func(c echo.Context) error {
			c.Set(routeKey, route)
			return nil
		})
	}
	return e
}
