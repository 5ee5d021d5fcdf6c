package pricing

import (
	"context"
	"net/http"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/common/validation"
	"backoffice-console/internal/models"
	"backoffice-console/internal/resource"
)

const Namespace = "pricing"

type Client struct {
	rt *resource.Runtime
}

func New(rt *resource.Runtime) *Client {
	return &Client{rt: rt}
}

func (c *Client) Get(ctx context.Context) (models.Pricing, error) {
	return resource.Fetch(ctx, c.rt, "pricing.get", Namespace, nil, func(ctx context.Context) (models.Pricing, error) {
		return apiclient.Call[models.Pricing](ctx, c.rt.API, http.MethodGet, "/pricing", apiclient.Options{})
	})
}

func (c *Client) Update(ctx context.Context, p models.Pricing) (models.Pricing, error) {
	m := resource.Mutation{
		Op:          "pricing.update",
		Invalidates: []string{Namespace},
		Success:     "Pricing updated successfully",
		Failure:     "Failed to update pricing",
	}
	if err := validation.ValidatePricing(p); err != nil {
		return models.Pricing{}, resource.Reject(c.rt, m, err)
	}
	return resource.Mutate(ctx, c.rt, m, func(ctx context.Context) (models.Pricing, error) {
		return apiclient.Call[models.Pricing](ctx, c.rt.API, http.MethodPut, "/pricing", apiclient.Options{Body: p})
	})
}
