// Package blog is the article resource and its nested paragraphs.
package blog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/common/validation"
	"backoffice-console/internal/forms"
	"backoffice-console/internal/models"
	"backoffice-console/internal/resource"
	"backoffice-console/pkg/query"
)

const (
	Namespace       = "articles"
	DetailNamespace = "article"
)

type Client struct {
	rt *resource.Runtime
}

func New(rt *resource.Runtime) *Client {
	return &Client{rt: rt}
}

func path(id string) string {
	return "/articles/" + url.PathEscape(id)
}

func paragraphPath(articleID, paragraphID string) string {
	p := path(articleID) + "/paragraphs"
	if paragraphID != "" {
		p += "/" + url.PathEscape(paragraphID)
	}
	return p
}

// ParagraphInput is one paragraph create or update. A nil Image keeps the
// current image.
type ParagraphInput struct {
	Title    string
	Subtitle string
	Content  string
	Image    *forms.File
}

func (p ParagraphInput) form() *forms.Multipart {
	m := forms.New().
		Add("title", p.Title).
		Add("content", p.Content).
		Add("subtitle", p.Subtitle)
	if p.Image != nil {
		img := *p.Image
		img.Field = "image"
		m.AddFile(img)
	}
	return m
}

func (p ParagraphInput) validate() error {
	return validation.ValidateParagraph(models.Paragraph{Title: p.Title, Subtitle: p.Subtitle, Content: p.Content})
}

// List unwraps the {data} envelope of the article list.
func (c *Client) List(ctx context.Context) ([]models.Article, error) {
	return resource.Fetch(ctx, c.rt, "blog.list", Namespace, nil, func(ctx context.Context) ([]models.Article, error) {
		env, err := apiclient.Call[apiclient.DataEnvelope[[]models.Article]](ctx, c.rt.API, http.MethodGet, "/articles", apiclient.Options{})
		return env.Data, err
	})
}

func (c *Client) Get(ctx context.Context, id string) (models.Article, error) {
	return resource.Fetch(ctx, c.rt, "blog.get", DetailNamespace, query.Object{{Key: "id", Value: id}}, func(ctx context.Context) (models.Article, error) {
		return apiclient.Call[models.Article](ctx, c.rt.API, http.MethodGet, path(id), apiclient.Options{})
	})
}

func (c *Client) Create(ctx context.Context, form *forms.Multipart) (models.Article, error) {
	return resource.Mutate(ctx, c.rt, resource.Mutation{
		Op:          "blog.create",
		Invalidates: []string{Namespace},
		Success:     "Article created successfully",
		Failure:     "Failed to create article",
	}, func(ctx context.Context) (models.Article, error) {
		return apiclient.Call[models.Article](ctx, c.rt.API, http.MethodPost, "/articles", apiclient.Options{Body: form})
	})
}

func (c *Client) Update(ctx context.Context, id string, form *forms.Multipart) (models.Article, error) {
	return resource.Mutate(ctx, c.rt, resource.Mutation{
		Op:          "blog.update",
		Invalidates: []string{Namespace, DetailNamespace},
		Success:     "Article updated successfully",
		Failure:     "Failed to update article",
	}, func(ctx context.Context) (models.Article, error) {
		return apiclient.Call[models.Article](ctx, c.rt.API, http.MethodPut, path(id), apiclient.Options{Body: form})
	})
}

func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := resource.Mutate(ctx, c.rt, resource.Mutation{
		Op:          "blog.delete",
		Invalidates: []string{Namespace, DetailNamespace},
		Success:     "Article deleted successfully",
		Failure:     "Failed to delete article",
	}, func(ctx context.Context) (json.RawMessage, error) {
		return c.rt.API.Do(ctx, http.MethodDelete, path(id), apiclient.Options{})
	})
	return err
}

func (c *Client) CreateParagraph(ctx context.Context, articleID string, in ParagraphInput) (models.Paragraph, error) {
	m := resource.Mutation{
		Op:          "blog.paragraph.create",
		Invalidates: []string{Namespace, DetailNamespace},
		Success:     "Paragraph created successfully",
		Failure:     "Failed to create paragraph",
	}
	if err := in.validate(); err != nil {
		return models.Paragraph{}, resource.Reject(c.rt, m, err)
	}
	return resource.Mutate(ctx, c.rt, m, func(ctx context.Context) (models.Paragraph, error) {
		return apiclient.Call[models.Paragraph](ctx, c.rt.API, http.MethodPost, paragraphPath(articleID, ""), apiclient.Options{Body: in.form()})
	})
}

func (c *Client) UpdateParagraph(ctx context.Context, articleID, paragraphID string, in ParagraphInput) (models.Paragraph, error) {
	m := resource.Mutation{
		Op:          "blog.paragraph.update",
		Invalidates: []string{Namespace, DetailNamespace},
		Success:     "Paragraph updated successfully",
		Failure:     "Failed to update paragraph",
	}
	if err := in.validate(); err != nil {
		return models.Paragraph{}, resource.Reject(c.rt, m, err)
	}
	return resource.Mutate(ctx, c.rt, m, func(ctx context.Context) (models.Paragraph, error) {
		return apiclient.Call[models.Paragraph](ctx, c.rt.API, http.MethodPut, paragraphPath(articleID, paragraphID), apiclient.Options{Body: in.form()})
	})
}

func (c *Client) DeleteParagraph(ctx context.Context, articleID, paragraphID string) error {
	_, err := resource.Mutate(ctx, c.rt, resource.Mutation{
		Op:          "blog.paragraph.delete",
		Invalidates: []string{Namespace, DetailNamespace},
		Success:     "Paragraph deleted successfully",
		Failure:     "Failed to delete paragraph",
	}, func(ctx context.Context) (json.RawMessage, error) {
		return c.rt.API.Do(ctx, http.MethodDelete, paragraphPath(articleID, paragraphID), apiclient.Options{})
	})
	return err
}
