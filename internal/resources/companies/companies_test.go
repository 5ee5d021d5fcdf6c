package companies

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice-console/internal/models"
	"backoffice-console/internal/resource"
	"backoffice-console/internal/resource/resourcetest"
)

func TestFilterQuery(t *testing.T) {
	verified := false
	tests := []struct {
		name   string
		filter models.CompanyFilter
		want   int
	}{
		{name: "empty", filter: models.CompanyFilter{}, want: 0},
		{name: "name", filter: models.CompanyFilter{Name: "Acme"}, want: 1},
		{name: "false is kept", filter: models.CompanyFilter{IsVerified: &verified}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, FilterQuery(tt.filter), tt.want)
		})
	}
}

func TestList_FilterInQueryString(t *testing.T) {
	env := resourcetest.New(t, resourcetest.JSON(http.StatusOK, models.Page[models.Company]{}))
	client := New(env.Runtime)

	verified := true
	_, err := client.List(context.Background(), resource.ListOptions{Page: 1, Take: 10, Query: FilterQuery(models.CompanyFilter{IsVerified: &verified})})
	require.NoError(t, err)

	req := env.Last(t)
	assert.Equal(t, "/admin/companies", req.Path)
	assert.Equal(t, "page=1&take=10&query%5BisVerified%5D=true", req.RawQuery)
}

func TestVerifyAndUpdate(t *testing.T) {
	env := resourcetest.New(t, resourcetest.JSON(http.StatusOK, models.Company{ID: "c1", IsVerified: true}))
	client := New(env.Runtime)
	ctx := context.Background()

	require.NoError(t, client.Verify(ctx, "c1"))
	req := env.Last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/admin/companies/c1/verify", req.Path)

	credit := 50
	_, err := client.Update(ctx, "c1", models.CompanyUpdate{Credit: &credit})
	require.NoError(t, err)
	assert.JSONEq(t, `{"credit":50}`, string(env.Last(t).Body))

	toasts := env.Toasts.Drain()
	require.Len(t, toasts, 2)
	assert.Equal(t, "Company verified successfully", toasts[0].Message)
	assert.Equal(t, "Company updated successfully", toasts[1].Message)
}
