// Package support is the support ticket resource: filtered list, detail,
// answers with attachments and attachment downloads.
package support

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"backoffice-console/internal/apiclient"
	apperrors "backoffice-console/internal/common/errors"
	"backoffice-console/internal/common/validation"
	"backoffice-console/internal/forms"
	"backoffice-console/internal/models"
	"backoffice-console/internal/resource"
	"backoffice-console/pkg/query"
)

const (
	Namespace       = "supports"
	DetailNamespace = "support"
)

type Client struct {
	rt *resource.Runtime
}

func New(rt *resource.Runtime) *Client {
	return &Client{rt: rt}
}

func path(id string) string {
	return "/admin/support/" + url.PathEscape(id)
}

// FilterQuery converts the support filter panel into the list query object.
func FilterQuery(f models.SupportFilter) query.Object {
	obj := query.Object{}
	if f.Name != "" {
		obj = append(obj, query.Param{Key: "name", Value: f.Name})
	}
	if f.Email != "" {
		obj = append(obj, query.Param{Key: "email", Value: f.Email})
	}
	if len(f.Category) > 0 {
		cats := make([]string, len(f.Category))
		for i, c := range f.Category {
			cats[i] = string(c)
		}
		obj = append(obj, query.Param{Key: "category", Value: cats})
	}
	if f.AnsweredByID != "" {
		obj = append(obj, query.Param{Key: "answeredById", Value: f.AnsweredByID})
	}
	if f.IsSeen != nil {
		obj = append(obj, query.Param{Key: "isSeen", Value: *f.IsSeen})
	}
	if f.IsAnswered != nil {
		obj = append(obj, query.Param{Key: "isAnswered", Value: *f.IsAnswered})
	}
	return obj
}

func (c *Client) List(ctx context.Context, opts resource.ListOptions) (models.Page[models.SupportTicket], error) {
	params := opts.Params()
	return resource.Fetch(ctx, c.rt, "support.list", Namespace, params, func(ctx context.Context) (models.Page[models.SupportTicket], error) {
		return apiclient.Call[models.Page[models.SupportTicket]](ctx, c.rt.API, http.MethodGet, "/admin/support", apiclient.Options{Query: params})
	})
}

func (c *Client) Get(ctx context.Context, id string) (models.SupportTicket, error) {
	return resource.Fetch(ctx, c.rt, "support.get", DetailNamespace, query.Object{{Key: "id", Value: id}}, func(ctx context.Context) (models.SupportTicket, error) {
		return apiclient.Call[models.SupportTicket](ctx, c.rt.API, http.MethodGet, path(id), apiclient.Options{})
	})
}

// Answer sends adminAnswer with the attachment files.
func (c *Client) Answer(ctx context.Context, id, answer string, attachments []forms.File) (models.SupportTicket, error) {
	m := resource.Mutation{
		Op:          "support.answer",
		Invalidates: []string{Namespace, DetailNamespace},
		Success:     "Support question answered successfully",
		Failure:     "Failed to answer support question",
	}
	if err := validation.ValidateSupportAnswer(answer); err != nil {
		return models.SupportTicket{}, resource.Reject(c.rt, m, err)
	}

	form := forms.New().Add("adminAnswer", answer)
	for _, f := range attachments {
		f.Field = "attachments"
		form.AddFile(f)
	}
	return resource.Mutate(ctx, c.rt, m, func(ctx context.Context) (models.SupportTicket, error) {
		return apiclient.Call[models.SupportTicket](ctx, c.rt.API, http.MethodPut, path(id)+"/answer", apiclient.Options{Body: form})
	})
}

// DownloadAttachments fetches the zip bundle of one attachment set.
func (c *Client) DownloadAttachments(ctx context.Context, id string, set models.AttachmentSet) (*apiclient.Blob, error) {
	m := resource.Mutation{
		Op:      "support.download",
		Success: "Download complete",
		Failure: "Download failed",
	}
	if !set.Valid() {
		return nil, resource.Reject(c.rt, m, apperrors.NewValidationError("unknown attachment set", []string{fmt.Sprintf("attachmentType: %q is not one of question, answer, all", set)}))
	}
	return resource.Mutate(ctx, c.rt, m, func(ctx context.Context) (*apiclient.Blob, error) {
		return c.rt.API.Download(ctx, path(id)+"/"+string(set), fmt.Sprintf("support_%s_attachments.zip", id))
	})
}
