// Package pagination turns a page/limit/total triple into a query window and
// the metadata list endpoints hand back to clients. Everything here is pure.
package pagination

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument marks a page, limit or total outside its allowed range.
var ErrInvalidArgument = errors.New("invalid pagination argument")

// ArgumentError names the offending argument. It unwraps to ErrInvalidArgument.
type ArgumentError struct {
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidArgument, e.Field, e.Reason)
}

func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }

// Meta describes where the current page sits within the full result set.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Window is the offset/limit pair handed to the query layer.
type Window struct {
	Skip int
	Take int
}

// Request is a 1-based page number and a page size.
type Request struct {
	Page  int
	Limit int
}

// Window returns the slice of rows the request addresses.
func (r Request) Window() (Window, error) {
	if r.Limit < 1 {
		return Window{}, &ArgumentError{Field: "limit", Reason: "must be >= 1"}
	}
	if r.Page < 1 {
		return Window{}, &ArgumentError{Field: "page", Reason: "must be >= 1"}
	}
	if r.Page-1 > math.MaxInt/r.Limit {
		return Window{}, &ArgumentError{Field: "page", Reason: "is out of range"}
	}
	return Window{Skip: (r.Page - 1) * r.Limit, Take: r.Limit}, nil
}

// Compute derives pagination metadata and the query window for page, limit
// and total. total is trusted to be the row count at call time.
func Compute(page, limit, total int) (Meta, Window, error) {
	w, err := Request{Page: page, Limit: limit}.Window()
	if err != nil {
		return Meta{}, Window{}, err
	}
	if total < 0 {
		return Meta{}, Window{}, &ArgumentError{Field: "total", Reason: "must be >= 0"}
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, w, nil
}
