//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "strings"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageOptions controls keyword filtering and paging for listing endpoints.
// Page is 1-based; Size is clamped to maxPageSize.
type PageOptions struct {
	Keyword string
	Page    int
	Size    int
}

// Normalized returns a copy with defaults applied and out-of-range values clamped.
func (o PageOptions) Normalized() PageOptions {
	out := o
	out.Keyword = strings.TrimSpace(out.Keyword)
	if out.Page < 1 {
		out.Page = 1
	}
	if out.Size < 1 {
		out.Size = defaultPageSize
	}
	if out.Size > maxPageSize {
		out.Size = maxPageSize
	}
	return out
}

// Offset returns the row offset for the current page.
func (o PageOptions) Offset() int {
	return (o.Page - 1) * o.Size
}

// PageResult is the page envelope returned by /page endpoints.
type PageResult[T any] struct {
	Records []T   `json:"records"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Size    int   `json:"size"`
}

// NewPageResult assembles a PageResult, substituting an empty slice for nil
// so the JSON records field is always an array.
func NewPageResult[T any](records []T, total int64, opts PageOptions) PageResult[T] {
	if records == nil {
		records = []T{}
	}
	return PageResult[T]{Records: records, Total: total, Page: opts.Page, Size: opts.Size}
}
