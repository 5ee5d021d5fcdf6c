// Package console is the backend-for-frontend HTTP server of the back
// office. Each browser session, identified by a cookie, drives its own
// session, API client and query cache through JSON endpoints.
package console

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"backoffice-console/internal/common/config"
	"backoffice-console/internal/common/logger"
	"backoffice-console/internal/console/middleware"
)

const (
	jsonKeyStatus = "status"
	statusOK      = "ok"
)

type ServerDependencies struct {
	Config   *config.Config
	Registry *Registry
	Log      logger.Logger
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	cfg := deps.Config
	e.Server.ReadTimeout = config.GetDuration(cfg.Server.ReadTimeout)
	e.Server.WriteTimeout = config.GetDuration(cfg.Server.WriteTimeout)

	e.Use(middleware.RequestID())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(cfg.Server.BodyLimit))
	e.Use(middleware.NewRateLimiter(cfg.RateLimit.GlobalRPS, cfg.RateLimit.GlobalBurst, nil).Middleware())

	loginLimiter := middleware.NewRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst, nil)

	e.GET("/health", healthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	h := &handlers{log: deps.Log.WithFields(map[string]interface{}{"component": "console"})}

	api := e.Group("/console")
	api.Use(sessionMiddleware(deps.Registry, cfg.Server))

	api.POST("/login", h.login, loginLimiter.Middleware())
	api.GET("/session", h.sessionState)
	api.GET("/route", h.route)

	auth := api.Group("")
	auth.Use(requireAuth)

	auth.POST("/logout", h.logout)
	auth.GET("/account", h.account)
	auth.GET("/dashboard", h.dashboard)

	auth.GET("/clients", h.listClients)
	auth.GET("/clients/:id", h.getClient)
	auth.PUT("/clients/:id", h.updateClient)
	auth.PUT("/clients/:id/verify", h.verifyClient)
	auth.GET("/clients/:id/schedules", h.listSchedules)
	auth.GET("/schedules/:id", h.getSchedule)
	auth.PUT("/schedules/:id", h.updateSchedule)

	auth.GET("/activities", h.listActivities)
	auth.POST("/activities", h.createActivity)
	auth.GET("/activities/:id", h.getActivity)
	auth.PUT("/activities/:id", h.updateActivity)
	auth.DELETE("/activities/:id", h.deleteActivity)
	auth.PUT("/activities/:id/images", h.updateActivityImages)
	auth.PUT("/activities/:id/main-image", h.updateMainImage)
	auth.DELETE("/activities/:id/images/:imageId", h.deleteActivityImage)

	auth.GET("/plans", h.listPlans)
	auth.POST("/plans", h.createPlan)
	auth.GET("/plans/:id", h.getPlan)
	auth.PUT("/plans/:id", h.updatePlan)
	auth.DELETE("/plans/:id", h.deletePlan)

	auth.GET("/blog", h.listArticles)
	auth.POST("/blog", h.createArticle)
	auth.GET("/blog/:id", h.getArticle)
	auth.PUT("/blog/:id", h.updateArticle)
	auth.DELETE("/blog/:id", h.deleteArticle)
	auth.POST("/blog/:id/paragraphs", h.createParagraph)
	auth.PUT("/blog/:id/paragraphs/:pid", h.updateParagraph)
	auth.DELETE("/blog/:id/paragraphs/:pid", h.deleteParagraph)

	auth.GET("/support", h.listSupport)
	auth.GET("/support/:id", h.getSupport)
	auth.PUT("/support/:id/answer", h.answerSupport)
	auth.GET("/support/:id/attachments/:type", h.downloadAttachments)

	auth.GET("/settings/pricing", h.getPricing)
	auth.PUT("/settings/pricing", h.updatePricing)
	auth.GET("/settings/faq", h.listFAQ)
	auth.POST("/settings/faq", h.createFAQ)
	auth.PUT("/settings/faq/:id", h.updateFAQ)
	auth.DELETE("/settings/faq/:id", h.deleteFAQ)

	return &Server{echo: e, deps: deps}
}

// Handler exposes the router, used by tests through httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}

// sessionMiddleware binds the request to its console session, issuing a
// cookie on first visit. The session stays locked for the whole request.
func sessionMiddleware(reg *Registry, cfg config.ServerConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(cfg.CookieName); err == nil {
				if _, err := uuid.Parse(ck.Value); err == nil {
					id = ck.Value
				}
			}
			if id == "" {
				id = uuid.New().String()
				c.SetCookie(cookie(cfg, id))
			}

			cs := reg.Acquire(c.Request().Context(), id)
			defer reg.Release(cs)
			c.Set(sessionContextKey, cs)

			err := next(c)
			if err != nil {
				// written here so the error envelope drains this session's toasts
				c.Error(err)
			}
			return nil
		}
	}
}

func requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cs := sessionFrom(c)
		if cs == nil || !cs.Session.IsAuthenticated() {
			return loginRedirect(c)
		}
		return next(c)
	}
}
