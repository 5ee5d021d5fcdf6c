// Package activities is the activity resource: paginated list, detail,
// create and update with images, main image selection and deletion.
package activities

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/forms"
	"backoffice-console/internal/models"
	"backoffice-console/internal/resource"
	"backoffice-console/pkg/query"
)

const (
	Namespace       = "activities"
	DetailNamespace = "activity"
)

type Client struct {
	rt *resource.Runtime
}

func New(rt *resource.Runtime) *Client {
	return &Client{rt: rt}
}

func path(id string, rest ...string) string {
	p := "/activities/" + url.PathEscape(id)
	for _, r := range rest {
		p += "/" + url.PathEscape(r)
	}
	return p
}

func (c *Client) List(ctx context.Context, opts resource.ListOptions) (models.Page[models.Activity], error) {
	params := opts.Params()
	return resource.Fetch(ctx, c.rt, "activities.list", Namespace, params, func(ctx context.Context) (models.Page[models.Activity], error) {
		return apiclient.Call[models.Page[models.Activity]](ctx, c.rt.API, http.MethodGet, "/activities", apiclient.Options{Query: params})
	})
}

func (c *Client) Get(ctx context.Context, id string) (models.Activity, error) {
	return resource.Fetch(ctx, c.rt, "activities.get", DetailNamespace, query.Object{{Key: "id", Value: id}}, func(ctx context.Context) (models.Activity, error) {
		return apiclient.Call[models.Activity](ctx, c.rt.API, http.MethodGet, path(id), apiclient.Options{})
	})
}

// Create posts the multipart create form.
func (c *Client) Create(ctx context.Context, form *forms.Multipart) (models.Activity, error) {
	return resource.Mutate(ctx, c.rt, resource.Mutation{
		Op:          "activities.create",
		Invalidates: []string{Namespace},
		Success:     "Activity created successfully",
		Failure:     "Failed to create activity",
	}, func(ctx context.Context) (models.Activity, error) {
		return apiclient.Call[models.Activity](ctx, c.rt.API, http.MethodPost, "/activities", apiclient.Options{Body: form})
	})
}

// Update sends either a models.ActivityInput as JSON or a multipart form.
func (c *Client) Update(ctx context.Context, id string, body interface{}) (models.Activity, error) {
	return resource.Mutate(ctx, c.rt, resource.Mutation{
		Op:          "activities.update",
		Invalidates: []string{Namespace, DetailNamespace},
		Success:     "Activity updated successfully",
		Failure:     "Failed to update activity",
	}, func(ctx context.Context) (models.Activity, error) {
		return apiclient.Call[models.Activity](ctx, c.rt.API, http.MethodPut, path(id), apiclient.Options{Body: body})
	})
}

func (c *Client) UpdateMainImage(ctx context.Context, id, imageID string) (json.RawMessage, error) {
	return resource.Mutate(ctx, c.rt, resource.Mutation{
		Op:          "activities.mainImage",
		Invalidates: []string{DetailNamespace, Namespace},
		Success:     "Main image updated successfully",
		Failure:     "Failed to update main image",
	}, func(ctx context.Context) (json.RawMessage, error) {
		return c.rt.API.Do(ctx, http.MethodPut, path(id, "main-image"), apiclient.Options{Body: models.UpdateMainImageRequest{ImageID: imageID}})
	})
}

// UpdateImages replaces the image set: retained ids, new files and the main index.
func (c *Client) UpdateImages(ctx context.Context, id string, form *forms.Multipart) (json.RawMessage, error) {
	return resource.Mutate(ctx, c.rt, resource.Mutation{
		Op:          "activities.images",
		Invalidates: []string{DetailNamespace, Namespace},
		Success:     "Images updated successfully",
		Failure:     "Failed to update images",
	}, func(ctx context.Context) (json.RawMessage, error) {
		return c.rt.API.Do(ctx, http.MethodPut, path(id, "images"), apiclient.Options{Body: form})
	})
}

func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := resource.Mutate(ctx, c.rt, resource.Mutation{
		Op:          "activities.delete",
		Invalidates: []string{Namespace, DetailNamespace},
		Success:     "Activity deleted successfully",
		Failure:     "Failed to delete activity",
	}, func(ctx context.Context) (json.RawMessage, error) {
		return c.rt.API.Do(ctx, http.MethodDelete, path(id), apiclient.Options{})
	})
	return err
}

func (c *Client) DeleteImage(ctx context.Context, id, imageID string) error {
	_, err := resource.Mutate(ctx, c.rt, resource.Mutation{
		Op:          "activities.deleteImage",
		Invalidates: []string{DetailNamespace, Namespace},
		Success:     "Image deleted successfully",
		Failure:     "Failed to delete image",
	}, func(ctx context.Context) (json.RawMessage, error) {
		return c.rt.API.Do(ctx, http.MethodDelete, path(id, imageID), apiclient.Options{})
	})
	return err
}
