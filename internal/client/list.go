package client

import (
	"encoding/json"
	"fmt"

	"github.com/crmplatform-io/crm/pkg/crm"
)

// decodeListResponse parses a paginated envelope and applies the local
// pagination contract: page and per_page echo what was requested, and a
// missing total_pages counts as a single page.
func decodeListResponse[T any](body []byte, opts *crm.ListOptions, what string) (*crm.ListResponse[T], error) {
	var result crm.ListResponse[T]
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", what, err)
	}

	result.Page = opts.Page
	result.PerPage = opts.PerPage

	if result.TotalPages == 0 {
		result.TotalPages = 1
	}

	return &result, nil
}

// decodeDataArray parses a bare {"data": [...]} envelope.
func decodeDataArray[T any](body []byte, what string) ([]T, error) {
	var result struct {
		Data []T `json:"data"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", what, err)
	}

	return result.Data, nil
}
