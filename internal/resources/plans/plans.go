package plans

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/common/validation"
	"backoffice-console/internal/models"
	"backoffice-console/internal/resource"
	"backoffice-console/pkg/query"
)

const (
	Namespace       = "plans"
	DetailNamespace = "plan"
)

type Client struct {
	rt *resource.Runtime
}

func New(rt *resource.Runtime) *Client {
	return &Client{rt: rt}
}

func path(id string) string {
	return "/plans/" + url.PathEscape(id)
}

func (c *Client) List(ctx context.Context) ([]models.Plan, error) {
	return resource.Fetch(ctx, c.rt, "plans.list", Namespace, nil, func(ctx context.Context) ([]models.Plan, error) {
		return apiclient.Call[[]models.Plan](ctx, c.rt.API, http.MethodGet, "/plans", apiclient.Options{})
	})
}

func (c *Client) Get(ctx context.Context, id string) (models.Plan, error) {
	return resource.Fetch(ctx, c.rt, "plans.get", DetailNamespace, query.Object{{Key: "id", Value: id}}, func(ctx context.Context) (models.Plan, error) {
		return apiclient.Call[models.Plan](ctx, c.rt.API, http.MethodGet, path(id), apiclient.Options{})
	})
}

func (c *Client) Create(ctx context.Context, in models.PlanInput) (models.Plan, error) {
	m := resource.Mutation{
		Op:          "plans.create",
		Invalidates: []string{Namespace},
		Success:     "Plan created successfully",
		Failure:     "Failed to create plan",
	}
	if err := validation.ValidatePlan(in); err != nil {
		return models.Plan{}, resource.Reject(c.rt, m, err)
	}
	return resource.Mutate(ctx, c.rt, m, func(ctx context.Context) (models.Plan, error) {
		return apiclient.Call[models.Plan](ctx, c.rt.API, http.MethodPost, "/plans", apiclient.Options{Body: in})
	})
}

func (c *Client) Update(ctx context.Context, id string, in models.PlanInput) (models.Plan, error) {
	m := resource.Mutation{
		Op:          "plans.update",
		Invalidates: []string{Namespace, DetailNamespace},
		Success:     "Plan updated successfully",
		Failure:     "Failed to update plan",
	}
	if err := validation.ValidatePlan(in); err != nil {
		return models.Plan{}, resource.Reject(c.rt, m, err)
	}
	return resource.Mutate(ctx, c.rt, m, func(ctx context.Context) (models.Plan, error) {
		return apiclient.Call[models.Plan](ctx, c.rt.API, http.MethodPut, path(id), apiclient.Options{Body: in})
	})
}

func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := resource.Mutate(ctx, c.rt, resource.Mutation{
		Op:          "plans.delete",
		Invalidates: []string{Namespace, DetailNamespace},
		Success:     "Plan deleted successfully",
		Failure:     "Failed to delete plan",
	}, func(ctx context.Context) (json.RawMessage, error) {
		return c.rt.API.Do(ctx, http.MethodDelete, path(id), apiclient.Options{})
	})
	return err
}
