// Package account drives login, the profile fetch and logout.
package account

import (
	"context"
	"net/http"

	"backoffice-console/internal/apiclient"
	apperrors "backoffice-console/internal/common/errors"
	"backoffice-console/internal/common/validation"
	"backoffice-console/internal/models"
	"backoffice-console/internal/resource"
)

// HomeRoute is where a successful login lands.
const HomeRoute = "/"

// LoginRecorder counts login attempts by outcome.
type LoginRecorder interface {
	RecordLogin(ctx context.Context, outcome string)
}

type noopRecorder struct{}

func (noopRecorder) RecordLogin(context.Context, string) {}

type Client struct {
	rt       *resource.Runtime
	nav      apiclient.Navigator
	recorder LoginRecorder
}

func New(rt *resource.Runtime, nav apiclient.Navigator, recorder LoginRecorder) *Client {
	if nav == nil {
		nav = apiclient.NavigatorFunc(func(string) {})
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Client{rt: rt, nav: nav, recorder: recorder}
}

// Login checks the form, exchanges the credentials for a token pair, loads
// the profile and navigates home. On failure nothing is stored.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) error {
	m := resource.Mutation{Op: "account.login"}
	if err := validation.ValidateLogin(req); err != nil {
		c.recorder.RecordLogin(ctx, "rejected")
		return resource.Reject(c.rt, m, err)
	}

	cfg := c.rt.API.Config()
	resp, err := apiclient.Call[models.LoginResponse](ctx, c.rt.API, http.MethodPost, cfg.LoginPath, apiclient.Options{
		Body:   req,
		NoAuth: true,
	})
	if err == nil && resp.AccessToken == "" {
		err = apperrors.NewAuthenticationError("login response carried no access token", apperrors.ErrNotAuthenticated)
	}
	if err != nil {
		c.recorder.RecordLogin(ctx, "failure")
		return resource.Reject(c.rt, m, err)
	}

	sess := c.rt.API.Session()
	if err := sess.SignInSuccess(ctx, models.Tokens{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}); err != nil {
		c.rt.Log.Warn("Login tokens not persisted", map[string]interface{}{"error": err.Error()})
	}
	c.recorder.RecordLogin(ctx, "success")
	c.rt.Notify.Success("Connecté")

	if err := c.FetchCurrentUser(ctx); err != nil {
		return err
	}
	c.nav.Redirect(HomeRoute)
	return nil
}

// FetchCurrentUser loads the profile into the session.
func (c *Client) FetchCurrentUser(ctx context.Context) error {
	sess := c.rt.API.Session()
	sess.FetchUserStart()

	user, err := apiclient.Call[models.User](ctx, c.rt.API, http.MethodGet, c.rt.API.Config().ProfilePath, apiclient.Options{})
	if err != nil {
		sess.FetchUserFailure(err)
		return resource.Reject(c.rt, resource.Mutation{Op: "account.profile", Failure: "Failed to fetch the current user"}, err)
	}
	return sess.FetchUserSuccess(ctx, &user)
}

// Logout clears the session and every cached query.
func (c *Client) Logout(ctx context.Context) error {
	c.rt.Cache.Clear()
	err := c.rt.API.Session().Reset(ctx)
	c.nav.Redirect(apiclient.LoginRoute)
	return err
}
