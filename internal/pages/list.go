// Package pages holds the state behind each console page: list filters and
// pagination, and the detail editors that turn local edits into resource
// calls.
package pages

import (
	"context"

	"backoffice-console/internal/models"
	"backoffice-console/internal/resource"
	"backoffice-console/pkg/query"
)

// Pager tracks the page and page size of a list and gates navigation on the
// pagination metadata of the last response.
type Pager struct {
	Page int
	Take int

	meta     models.PageMeta
	observed bool
	empty    bool
}

func NewPager() *Pager {
	return &Pager{Page: 1, Take: resource.DefaultTake}
}

// Observe records the metadata and row count of the page just loaded.
func (p *Pager) Observe(meta models.PageMeta, rows int) {
	p.meta = meta
	p.observed = true
	p.empty = rows == 0
}

func (p *Pager) Meta() models.PageMeta {
	return p.meta
}

func (p *Pager) CanNext() bool {
	return p.observed && !p.empty && p.meta.HasNextPage
}

// CanPrevious stays true on an empty page past the first, which happens when
// the last row of the last page was deleted.
func (p *Pager) CanPrevious() bool {
	if p.Page <= 1 {
		return false
	}
	if !p.observed || p.empty {
		return true
	}
	return p.meta.HasPreviousPage
}

func (p *Pager) Next() bool {
	if !p.CanNext() {
		return false
	}
	p.goTo(p.Page + 1)
	return true
}

func (p *Pager) Previous() bool {
	if !p.CanPrevious() {
		return false
	}
	p.goTo(p.Page - 1)
	return true
}

// SetTake changes the page size and goes back to the first page.
func (p *Pager) SetTake(n int) {
	if n < 1 {
		n = resource.DefaultTake
	}
	p.Take = n
	p.Reset()
}

func (p *Pager) Reset() {
	p.goTo(1)
}

func (p *Pager) goTo(page int) {
	p.Page = page
	p.observed = false
	p.empty = false
}

// FilterPanel keeps the filter being edited apart from the one the list is
// loaded with.
type FilterPanel[F any] struct {
	Draft   F
	Applied F

	pager *Pager
}

// NewFilterPanel resets pager whenever the applied filter changes. pager may be nil.
func NewFilterPanel[F any](pager *Pager) *FilterPanel[F] {
	return &FilterPanel[F]{pager: pager}
}

func (f *FilterPanel[F]) Apply() {
	f.Applied = f.Draft
	if f.pager != nil {
		f.pager.Reset()
	}
}

func (f *FilterPanel[F]) Clear() {
	var zero F
	f.Draft = zero
	f.Applied = zero
	if f.pager != nil {
		f.pager.Reset()
	}
}

// Lister is the List method of a paginated resource client.
type Lister[T any] func(ctx context.Context, opts resource.ListOptions) (models.Page[T], error)

// ListPage is a filtered, paginated and sorted table.
type ListPage[F any, T any] struct {
	Filters *FilterPanel[F]
	Pager   *Pager
	Sort    []resource.SortField

	list    Lister[T]
	toQuery func(F) query.Object
}

func NewListPage[F any, T any](list Lister[T], toQuery func(F) query.Object) *ListPage[F, T] {
	pager := NewPager()
	return &ListPage[F, T]{
		Filters: NewFilterPanel[F](pager),
		Pager:   pager,
		list:    list,
		toQuery: toQuery,
	}
}

// Options is the query key of the current state.
func (l *ListPage[F, T]) Options() resource.ListOptions {
	var filter query.Object
	if l.toQuery != nil {
		filter = query.Compact(l.toQuery(l.Filters.Applied))
	}
	return resource.ListOptions{
		Page:  l.Pager.Page,
		Take:  l.Pager.Take,
		Query: filter,
		Sort:  l.Sort,
	}
}

// Load fetches the current page and updates the pager.
func (l *ListPage[F, T]) Load(ctx context.Context) (models.Page[T], error) {
	page, err := l.list(ctx, l.Options())
	if err != nil {
		return page, err
	}
	l.Pager.Observe(page.Meta, len(page.Data))
	return page, nil
}
