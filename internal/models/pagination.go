package models

// SortOrder is the direction accepted by list endpoints.
type SortOrder string

const (
	SortASC  SortOrder = "ASC"
	SortDESC SortOrder = "DESC"
)

// PageMeta is the pagination envelope returned with every list.
type PageMeta struct {
	Page            int  `json:"page,omitempty"`
	Take            int  `json:"take,omitempty"`
	TotalItems      int  `json:"totalItems"`
	TotalPages      int  `json:"totalPages"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// Page is a paginated list response.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

// Media is an uploaded file as stored by the backend.
type Media struct {
	ID           string `json:"id"`
	FullURL      string `json:"fullUrl"`
	Name         string `json:"name,omitempty"`
	OriginalName string `json:"originalName,omitempty"`
	ResourceType string `json:"resourceType,omitempty"`
}

// Person is the compact identity embedded in several resources.
type Person struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
}
