package crm

import (
	"context"
	"errors"
	"fmt"
)

// ListPageFunc fetches one page of a paginated listing. Every resource
// client's List method satisfies this shape.
type ListPageFunc[T any] func(ctx context.Context, opts *ListOptions) (*ListResponse[T], error)

// PaginationOptions tunes the page-walking helpers.
type PaginationOptions struct {
	// PageSize overrides the per-page size. Zero keeps the default.
	PageSize int
	// MaxPages caps how many pages are fetched. Zero means no cap.
	MaxPages int
}

// PageIterator walks a paginated listing item by item, fetching pages
// lazily as they are consumed.
type PageIterator[T any] struct {
	ctx     context.Context
	list    ListPageFunc[T]
	opts    *ListOptions
	buffer  []T
	index   int
	page    int
	fetched bool
	done    bool
}

// NewPageIterator creates an iterator over a list endpoint. The opts filters
// are preserved across pages; the page number is managed by the iterator.
func NewPageIterator[T any](ctx context.Context, list ListPageFunc[T], opts *ListOptions) *PageIterator[T] {
	normalized := opts.Normalized()

	return &PageIterator[T]{
		ctx:  ctx,
		list: list,
		opts: normalized,
		page: normalized.Page,
	}
}

// HasNext reports whether another item is available. Before the first fetch
// it optimistically returns true; Next reports ErrNoMoreItems on an empty
// listing.
func (it *PageIterator[T]) HasNext() bool {
	if it.index < len(it.buffer) {
		return true
	}

	if !it.fetched {
		return true
	}

	return !it.done
}

// Next returns the next item, fetching the following page when the current
// one is exhausted. It returns ErrNoMoreItems past the end.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	if it.index >= len(it.buffer) {
		if it.fetched && it.done {
			return zero, ErrNoMoreItems
		}

		err := it.fetchPage()
		if err != nil {
			return zero, err
		}

		if len(it.buffer) == 0 {
			return zero, ErrNoMoreItems
		}
	}

	item := it.buffer[it.index]
	it.index++

	return item, nil
}

// All drains the iterator and returns every remaining item.
func (it *PageIterator[T]) All() ([]T, error) {
	var items []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			if errors.Is(err, ErrNoMoreItems) {
				break
			}

			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

// ForEach applies fn to every remaining item, stopping on the first error.
func (it *PageIterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			if errors.Is(err, ErrNoMoreItems) {
				return nil
			}

			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

func (it *PageIterator[T]) fetchPage() error {
	opts := *it.opts
	opts.Page = it.page

	resp, err := it.list(it.ctx, &opts)
	if err != nil {
		return fmt.Errorf("fetching page %d: %w", it.page, err)
	}

	it.buffer = resp.Data
	it.index = 0
	it.fetched = true
	it.done = !resp.HasNext() || len(resp.Data) == 0
	it.page++

	return nil
}

// FetchAllPages collects every item of a listing, page by page.
func FetchAllPages[T any](ctx context.Context, list ListPageFunc[T], opts *ListOptions, pagination *PaginationOptions) ([]T, error) {
	var items []T

	err := walkPages(ctx, list, opts, pagination, func(resp *ListResponse[T]) error {
		items = append(items, resp.Data...)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// PageResult is one page of results delivered by StreamPages.
type PageResult[T any] struct {
	Items []T
	Page  int
	Err   error
}

// StreamPages fetches pages sequentially and delivers each one on the
// returned channel. The channel is closed after the last page, on error,
// or when ctx is cancelled.
func StreamPages[T any](ctx context.Context, list ListPageFunc[T], opts *ListOptions, pagination *PaginationOptions) <-chan PageResult[T] {
	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		err := walkPages(ctx, list, opts, pagination, func(resp *ListResponse[T]) error {
			select {
			case results <- PageResult[T]{Items: resp.Data, Page: resp.Page}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil && ctx.Err() == nil {
			select {
			case results <- PageResult[T]{Err: err}:
			case <-ctx.Done():
			}
		}
	}()

	return results
}

// walkPages fetches pages sequentially, applying fn to each, until the
// server reports no further pages or the MaxPages cap is reached.
func walkPages[T any](ctx context.Context, list ListPageFunc[T], opts *ListOptions, pagination *PaginationOptions, fn func(*ListResponse[T]) error) error {
	normalized := opts.Normalized()

	maxPages := 0
	if pagination != nil {
		maxPages = pagination.MaxPages

		if pagination.PageSize > 0 {
			normalized.PerPage = pagination.PageSize
		}
	}

	fetched := 0

	for {
		resp, err := list(ctx, normalized)
		if err != nil {
			return fmt.Errorf("fetching page %d: %w", normalized.Page, err)
		}

		err = fn(resp)
		if err != nil {
			return err
		}

		fetched++

		if !resp.HasNext() || len(resp.Data) == 0 {
			return nil
		}

		if maxPages > 0 && fetched >= maxPages {
			return nil
		}

		next := *normalized
		next.Page++
		normalized = &next
	}
}
