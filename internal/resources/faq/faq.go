package faq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/common/validation"
	"backoffice-console/internal/models"
	"backoffice-console/internal/resource"
)

const Namespace = "faqs"

type Client struct {
	rt *resource.Runtime
}

func New(rt *resource.Runtime) *Client {
	return &Client{rt: rt}
}

func path(id string) string {
	return "/faq/" + url.PathEscape(id)
}

func (c *Client) List(ctx context.Context) ([]models.FAQ, error) {
	return resource.Fetch(ctx, c.rt, "faq.list", Namespace, nil, func(ctx context.Context) ([]models.FAQ, error) {
		return apiclient.Call[[]models.FAQ](ctx, c.rt.API, http.MethodGet, "/faq", apiclient.Options{})
	})
}

func (c *Client) Create(ctx context.Context, in models.FAQInput) (models.FAQ, error) {
	m := resource.Mutation{
		Op:          "faq.create",
		Invalidates: []string{Namespace},
		Success:     "FAQ created successfully",
		Failure:     "Failed to create FAQ",
	}
	if err := validation.ValidateFAQ(in); err != nil {
		return models.FAQ{}, resource.Reject(c.rt, m, err)
	}
	return resource.Mutate(ctx, c.rt, m, func(ctx context.Context) (models.FAQ, error) {
		return apiclient.Call[models.FAQ](ctx, c.rt.API, http.MethodPost, "/faq", apiclient.Options{Body: in})
	})
}

func (c *Client) Update(ctx context.Context, id string, in models.FAQInput) (models.FAQ, error) {
	m := resource.Mutation{
		Op:          "faq.update",
		Invalidates: []string{Namespace},
		Success:     "FAQ updated successfully",
		Failure:     "Failed to update FAQ",
	}
	if err := validation.ValidateFAQ(in); err != nil {
		return models.FAQ{}, resource.Reject(c.rt, m, err)
	}
	return resource.Mutate(ctx, c.rt, m, func(ctx context.Context) (models.FAQ, error) {
		return apiclient.Call[models.FAQ](ctx, c.rt.API, http.MethodPut, path(id), apiclient.Options{Body: in})
	})
}

func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := resource.Mutate(ctx, c.rt, resource.Mutation{
		Op:          "faq.delete",
		Invalidates: []string{Namespace},
		Success:     "FAQ deleted successfully",
		Failure:     "Failed to delete FAQ",
	}, func(ctx context.Context) (json.RawMessage, error) {
		return c.rt.API.Do(ctx, http.MethodDelete, path(id), apiclient.Options{})
	})
	return err
}
