package crm

import (
	"net/url"
	"strconv"
	"strings"
)

// Pagination defaults shared by every list endpoint.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
)

// ListOptions carries pagination and filter parameters for list endpoints.
// Zero values for Page and PerPage fall back to the defaults.
type ListOptions struct {
	Page    int
	PerPage int

	// Status filters by entity status where the endpoint supports it.
	Status string
	// Search is a free-text filter (customers).
	Search string
	// PipelineID filters opportunities by pipeline.
	PipelineID string

	// Filters holds additional endpoint-specific query parameters.
	Filters map[string][]string
}

// NewListOptions returns options with the default page and page size.
func NewListOptions() *ListOptions {
	return &ListOptions{Page: DefaultPage, PerPage: DefaultPerPage}
}

// Normalized returns a copy with defaults applied. A nil receiver yields
// the default options.
func (o *ListOptions) Normalized() *ListOptions {
	out := ListOptions{}
	if o != nil {
		out = *o
	}

	if out.Page < 1 {
		out.Page = DefaultPage
	}

	if out.PerPage < 1 {
		out.PerPage = DefaultPerPage
	}

	return &out
}

// ToValues converts the options to URL query values.
func (o *ListOptions) ToValues() url.Values {
	opts := o.Normalized()
	values := url.Values{}

	values.Set("page", strconv.Itoa(opts.Page))
	values.Set("per_page", strconv.Itoa(opts.PerPage))

	if opts.Status != "" {
		values.Set("status", opts.Status)
	}

	if opts.Search != "" {
		values.Set("search", opts.Search)
	}

	if opts.PipelineID != "" {
		values.Set("pipeline_id", opts.PipelineID)
	}

	for key, filterValues := range opts.Filters {
		values.Set(key, strings.Join(filterValues, ","))
	}

	return values
}
