package pages

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice-console/internal/models"
	"backoffice-console/internal/resource/resourcetest"
	"backoffice-console/internal/resources/companies"
)

func TestPager_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		meta     models.PageMeta
		rows     int
		wantNext bool
		wantPrev bool
	}{
		{name: "first of many", page: 1, meta: models.PageMeta{HasNextPage: true}, rows: 10, wantNext: true},
		{name: "middle", page: 2, meta: models.PageMeta{HasNextPage: true, HasPreviousPage: true}, rows: 10, wantNext: true, wantPrev: true},
		{name: "last", page: 3, meta: models.PageMeta{HasPreviousPage: true}, rows: 4, wantPrev: true},
		{name: "emptied last page", page: 3, meta: models.PageMeta{HasNextPage: true}, rows: 0, wantPrev: true},
		{name: "empty first page", page: 1, meta: models.PageMeta{}, rows: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPager()
			p.Page = tt.page
			p.Observe(tt.meta, tt.rows)
			assert.Equal(t, tt.wantNext, p.CanNext())
			assert.Equal(t, tt.wantPrev, p.CanPrevious())
		})
	}
}

func TestPager_Navigation(t *testing.T) {
	p := NewPager()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Take)
	assert.False(t, p.Next(), "no metadata yet")

	p.Observe(models.PageMeta{HasNextPage: true}, 10)
	assert.True(t, p.Next())
	assert.Equal(t, 2, p.Page)
	assert.False(t, p.CanNext(), "gated until the new page is observed")

	p.Observe(models.PageMeta{HasPreviousPage: true}, 3)
	assert.False(t, p.Next())
	assert.True(t, p.Previous())
	assert.Equal(t, 1, p.Page)
	assert.False(t, p.Previous())

	p.Page = 4
	p.SetTake(25)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 25, p.Take)
	p.SetTake(0)
	assert.Equal(t, 10, p.Take)
}

func TestFilterPanel_ApplyAndClear(t *testing.T) {
	pager := NewPager()
	pager.Page = 3
	panel := NewFilterPanel[models.CompanyFilter](pager)

	panel.Draft.Name = "Acme"
	assert.Empty(t, panel.Applied.Name, "draft is not applied until Apply")
	panel.Apply()
	assert.Equal(t, "Acme", panel.Applied.Name)
	assert.Equal(t, 1, pager.Page)

	pager.Page = 2
	panel.Clear()
	assert.Equal(t, models.CompanyFilter{}, panel.Draft)
	assert.Equal(t, models.CompanyFilter{}, panel.Applied)
	assert.Equal(t, 1, pager.Page)
}

func TestListPage_CompanyFilterFlow(t *testing.T) {
	env := resourcetest.New(t, resourcetest.JSON(http.StatusOK, models.Page[models.Company]{
		Data: []models.Company{{ID: "c1"}},
		Meta: models.PageMeta{Page: 1, TotalPages: 2, HasNextPage: true},
	}))
	client := companies.New(env.Runtime)
	list := NewListPage[models.CompanyFilter, models.Company](client.List, companies.FilterQuery)
	ctx := context.Background()

	list.Pager.Page = 2
	verified := true
	list.Filters.Draft.IsVerified = &verified
	list.Filters.Apply()
	page, err := list.Load(ctx)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "page=1&take=10&query%5BisVerified%5D=true", env.Last(t).RawQuery)
	assert.True(t, list.Pager.CanNext())

	list.Filters.Clear()
	_, err = list.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "page=1&take=10", env.Last(t).RawQuery)
}
