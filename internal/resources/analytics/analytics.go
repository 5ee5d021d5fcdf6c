package analytics

import (
	"context"
	"net/http"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/models"
	"backoffice-console/internal/resource"
)

const Namespace = "analytics"

type Client struct {
	rt *resource.Runtime
}

func New(rt *resource.Runtime) *Client {
	return &Client{rt: rt}
}

// Get returns the dashboard summary.
func (c *Client) Get(ctx context.Context) (models.Analytics, error) {
	return resource.Fetch(ctx, c.rt, "analytics.get", Namespace, nil, func(ctx context.Context) (models.Analytics, error) {
		return apiclient.Call[models.Analytics](ctx, c.rt.API, http.MethodGet, "/analytics", apiclient.Options{})
	})
}
