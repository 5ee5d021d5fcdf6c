package resource

import (
	"backoffice-console/internal/models"
	"backoffice-console/pkg/query"
)

// DefaultTake is the page size of every list.
const DefaultTake = 10

// SortField orders a list by one field.
type SortField struct {
	Field string
	Order models.SortOrder
}

// ListOptions is the {page, take, query, sort} object of list endpoints.
type ListOptions struct {
	Page  int
	Take  int
	Query query.Object
	Sort  []SortField
}

// Params builds the query object. Empty filter values are dropped, page and
// take are always sent.
func (o ListOptions) Params() query.Object {
	page := o.Page
	if page < 1 {
		page = 1
	}
	take := o.Take
	if take < 1 {
		take = DefaultTake
	}

	params := query.Object{
		{Key: "page", Value: page},
		{Key: "take", Value: take},
	}
	if filter := query.Compact(o.Query); len(filter) > 0 {
		params = append(params, query.Param{Key: "query", Value: filter})
	}
	if len(o.Sort) > 0 {
		sort := make(query.Object, 0, len(o.Sort))
		for _, s := range o.Sort {
			order := s.Order
			if order == "" {
				order = models.SortASC
			}
			sort = append(sort, query.Param{Key: s.Field, Value: string(order)})
		}
		params = append(params, query.Param{Key: "sort", Value: sort})
	}
	return params
}

// FilterObject converts a filter struct to its query object, see query.FromStruct.
func FilterObject(filter interface{}) (query.Object, error) {
	obj, err := query.FromStruct(filter)
	if err != nil {
		return nil, err
	}
	return query.Compact(obj), nil
}
