// Package pagination windows a collection into 1-indexed pages and builds
// the navigation links for collection responses.
package pagination

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	// DefaultPerPage is used when the client does not ask for a page size.
	DefaultPerPage = 10
	// MaxPerPage caps the page size regardless of what the client asks for.
	MaxPerPage = 100
)

// Params are the sanitized paging parameters of one request.
type Params struct {
	Page    int
	PerPage int
}

// ParseQuery reads page and per_page from a query string, applying
// defaults and clamping per_page to MaxPerPage.
func ParseQuery(query url.Values) Params {
	p := Params{Page: 1, PerPage: DefaultPerPage}

	if raw := query.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			p.Page = page
		}
	}
	if raw := query.Get("per_page"); raw != "" {
		if perPage, err := strconv.Atoi(raw); err == nil && perPage > 0 {
			p.PerPage = perPage
		}
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Limit returns the page size.
func (p Params) Limit() int {
	return p.PerPage
}

// Offset returns the number of items preceding the requested page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Meta describes the position of one page within the whole collection.
type Meta struct {
	TotalItems int `json:"total_items"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
	Page       int `json:"page"`
}

// Links are the navigation links of one page. Next and Prev are null at
// the respective boundary; Last is null when there are zero pages.
type Links struct {
	Self  string  `json:"self"`
	Next  *string `json:"next"`
	Prev  *string `json:"prev"`
	First string  `json:"first"`
	Last  *string `json:"last"`
}

// Page is the envelope of a paginated collection response.
type Page struct {
	Items any   `json:"items"`
	Meta  Meta  `json:"_meta"`
	Links Links `json:"_links"`
}

// New assembles a paginated response for the given window.
func New(items any, path string, p Params, totalItems int) Page {
	totalPages := (totalItems + p.PerPage - 1) / p.PerPage

	links := Links{
		Self:  link(path, p.PerPage, p.Page),
		First: link(path, p.PerPage, 1),
	}
	if p.Page < totalPages {
		links.Next = ptr(link(path, p.PerPage, p.Page+1))
	}
	if p.Page > 1 {
		links.Prev = ptr(link(path, p.PerPage, p.Page-1))
	}
	if totalPages > 0 {
		links.Last = ptr(link(path, p.PerPage, totalPages))
	}

	return Page{
		Items: items,
		Meta: Meta{
			TotalItems: totalItems,
			PerPage:    p.PerPage,
			TotalPages: totalPages,
			Page:       p.Page,
		},
		Links: links,
	}
}

// link renders a navigation URL. The parameter order is part of the wire
// contract.
func link(path string, perPage, page int) string {
	return fmt.Sprintf("%s?per_page=%d&page=%d", path, perPage, page)
}

func ptr(s string) *string {
	return &s
}
