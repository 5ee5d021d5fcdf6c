package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		authenticated bool
		wantRoute     string
		wantParams    map[string]string
		wantRedirect  string
	}{
		{name: "anonymous dashboard", path: "/", wantRedirect: "/login"},
		{name: "anonymous login", path: "/login", wantRoute: "login"},
		{name: "signed in login", path: "/login", authenticated: true, wantRedirect: "/"},
		{name: "dashboard", path: "/", authenticated: true, wantRoute: "dashboard"},
		{name: "client detail", path: "/clients/c1", authenticated: true, wantRoute: "client", wantParams: map[string]string{"companyId": "c1"}},
		{name: "trailing slash", path: "/plans/", authenticated: true, wantRoute: "plans"},
		{name: "query dropped", path: "/support/s1?tab=answer", authenticated: true, wantRoute: "supportTicket", wantParams: map[string]string{"supportId": "s1"}},
		{name: "create article wins", path: "/blog/create-new", authenticated: true, wantRoute: "articleCreate"},
		{name: "article", path: "/blog/b1", authenticated: true, wantRoute: "article", wantParams: map[string]string{"articleId": "b1"}},
		{name: "unknown signed in", path: "/nope/deeper", authenticated: true, wantRedirect: "/"},
		{name: "extra segment under param route", path: "/clients/c1/contacts", authenticated: true, wantRedirect: "/"},
		{name: "double trailing slash", path: "/clients//", authenticated: true, wantRoute: "clients"},
		{name: "empty path", path: "", authenticated: true, wantRoute: "dashboard"},
		{name: "unknown anonymous", path: "/nope", wantRedirect: "/login"},
		{name: "anonymous protected", path: "/settings", wantRedirect: "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Resolve(tt.path, tt.authenticated)
			assert.Equal(t, tt.wantRedirect, d.Redirect)
			if tt.wantRoute == "" {
				assert.Nil(t, d.Route)
				return
			}
			require.NotNil(t, d.Route)
			assert.Equal(t, tt.wantRoute, d.Route.Name)
			assert.Equal(t, tt.wantParams, d.Params)
		})
	}
}

func TestDecision_IsNew(t *testing.T) {
	d := Resolve("/activities/new-activity", true)
	require.NotNil(t, d.Route)
	assert.Equal(t, map[string]string{"activityId": NewActivityID}, d.Params)
	assert.True(t, d.IsNew())

	assert.False(t, Resolve("/activities/a1", true).IsNew())
	assert.False(t, Resolve("/activities/new-activity", false).IsNew())
}

func TestResolve_ConcurrentCallsKeepTheirParams(t *testing.T) {
	done := make(chan map[string]string, 2)
	for _, id := range []string{"p1", "p2"} {
		go func(id string) { done <- Resolve("/plans/"+id, true).Params }(id)
	}
	got := []string{(<-done)["planId"], (<-done)["planId"]}
	assert.ElementsMatch(t, []string{"p1", "p2"}, got)
}
