package companies

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/models"
	"backoffice-console/internal/resource"
	"backoffice-console/pkg/query"
)

const (
	Namespace       = "companies"
	DetailNamespace = "company"
)

type Client struct {
	rt *resource.Runtime
}

func New(rt *resource.Runtime) *Client {
	return &Client{rt: rt}
}

func path(id string) string {
	return "/admin/companies/" + url.PathEscape(id)
}

// FilterQuery converts the company filter panel into the list query object.
func FilterQuery(f models.CompanyFilter) query.Object {
	obj := query.Object{}
	if f.Name != "" {
		obj = append(obj, query.Param{Key: "name", Value: f.Name})
	}
	if f.IsVerified != nil {
		obj = append(obj, query.Param{Key: "isVerified", Value: *f.IsVerified})
	}
	return obj
}

func (c *Client) List(ctx context.Context, opts resource.ListOptions) (models.Page[models.Company], error) {
	params := opts.Params()
	return resource.Fetch(ctx, c.rt, "companies.list", Namespace, params, func(ctx context.Context) (models.Page[models.Company], error) {
		return apiclient.Call[models.Page[models.Company]](ctx, c.rt.API, http.MethodGet, "/admin/companies", apiclient.Options{Query: params})
	})
}

func (c *Client) Get(ctx context.Context, id string) (models.Company, error) {
	return resource.Fetch(ctx, c.rt, "companies.get", DetailNamespace, query.Object{{Key: "id", Value: id}}, func(ctx context.Context) (models.Company, error) {
		return apiclient.Call[models.Company](ctx, c.rt.API, http.MethodGet, path(id), apiclient.Options{})
	})
}

func (c *Client) Verify(ctx context.Context, id string) error {
	_, err := resource.Mutate(ctx, c.rt, resource.Mutation{
		Op:          "companies.verify",
		Invalidates: []string{Namespace, DetailNamespace},
		Success:     "Company verified successfully",
		Failure:     "Failed to verify company",
	}, func(ctx context.Context) (json.RawMessage, error) {
		return c.rt.API.Do(ctx, http.MethodPut, path(id)+"/verify", apiclient.Options{})
	})
	return err
}

func (c *Client) Update(ctx context.Context, id string, update models.CompanyUpdate) (models.Company, error) {
	return resource.Mutate(ctx, c.rt, resource.Mutation{
		Op:          "companies.update",
		Invalidates: []string{Namespace, DetailNamespace},
		Success:     "Company updated successfully",
		Failure:     "Failed to update company",
	}, func(ctx context.Context) (models.Company, error) {
		return apiclient.Call[models.Company](ctx, c.rt.API, http.MethodPut, path(id), apiclient.Options{Body: update})
	})
}
