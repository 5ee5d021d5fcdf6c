package schedules

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"backoffice-console/internal/apiclient"
	apperrors "backoffice-console/internal/common/errors"
	"backoffice-console/internal/models"
	"backoffice-console/internal/resource"
	"backoffice-console/pkg/query"
)

const (
	Namespace       = "companySchedules"
	DetailNamespace = "schedule"
)

type Client struct {
	rt *resource.Runtime
}

func New(rt *resource.Runtime) *Client {
	return &Client{rt: rt}
}

func (c *Client) ListByCompany(ctx context.Context, companyID string) ([]models.Schedule, error) {
	return resource.Fetch(ctx, c.rt, "schedules.list", Namespace, query.Object{{Key: "companyId", Value: companyID}}, func(ctx context.Context) ([]models.Schedule, error) {
		return apiclient.Call[[]models.Schedule](ctx, c.rt.API, http.MethodGet, "/schedule/admin/company/"+url.PathEscape(companyID), apiclient.Options{})
	})
}

func (c *Client) Get(ctx context.Context, id string) (models.Schedule, error) {
	return resource.Fetch(ctx, c.rt, "schedules.get", DetailNamespace, query.Object{{Key: "id", Value: id}}, func(ctx context.Context) (models.Schedule, error) {
		return apiclient.Call[models.Schedule](ctx, c.rt.API, http.MethodGet, "/schedule/admin/"+url.PathEscape(id), apiclient.Options{})
	})
}

func (c *Client) Update(ctx context.Context, id string, update models.ScheduleUpdate) (models.Schedule, error) {
	m := resource.Mutation{
		Op:          "schedules.update",
		Invalidates: []string{Namespace, DetailNamespace},
		Success:     "Schedule updated successfully",
		Failure:     "Failed to update schedule",
	}
	if update.Status != "" && !update.Status.Valid() {
		return models.Schedule{}, resource.Reject(c.rt, m, apperrors.NewValidationError("unknown schedule status",
			[]string{fmt.Sprintf("status: %q is not one of PENDING, ONGOING, COMPLETED, CANCELED", update.Status)}))
	}
	if update.Participants != nil && *update.Participants < 0 {
		return models.Schedule{}, resource.Reject(c.rt, m, apperrors.NewValidationError("negative participants",
			[]string{"participants: must be greater than or equal to 0"}))
	}
	return resource.Mutate(ctx, c.rt, m, func(ctx context.Context) (models.Schedule, error) {
		return apiclient.Call[models.Schedule](ctx, c.rt.API, http.MethodPut, "/schedule/admin/"+url.PathEscape(id), apiclient.Options{Body: update})
	})
}
