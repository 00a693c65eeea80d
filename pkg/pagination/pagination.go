// Package pagination parses and validates the standard paging query
// parameters: page, limit, order, and sort.
package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// Parse errors surfaced to clients as HTTP 400 responses.
var (
	ErrInvalidPage  = errors.New("page must be a positive integer")
	ErrInvalidLimit = errors.New("limit must be a positive integer")
	ErrInvalidOrder = errors.New("order must be asc or desc")
)

// Order is the requested sort direction.
type Order string

// Sort direction constants.
const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Validate checks that the order is a recognized sort direction.
func (o Order) Validate() error {
	switch o {
	case OrderAsc, OrderDesc:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrder, string(o))
	}
}

// PageRequest represents a validated client request for a page of data.
type PageRequest struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order Order  `json:"order"`
	Sort  string `json:"sort,omitempty"`
}

// Offset calculates the number of records to skip.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// FromQuery parses the page, limit, order, and sort parameters from URL
// query values. Absent parameters take their defaults (page 1, the
// configured default limit, ascending order). Malformed or non-positive
// page and limit values are errors; a well-formed limit above the
// configured maximum is clamped rather than rejected.
func FromQuery(values url.Values, cfg Config) (PageRequest, error) {
	req := PageRequest{
		Page:  1,
		Limit: cfg.DefaultLimit,
		Order: OrderAsc,
		Sort:  values.Get("sort"),
	}

	if v := values.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return PageRequest{}, fmt.Errorf("%w: %q", ErrInvalidPage, v)
		}
		req.Page = page
	}

	if v := values.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return PageRequest{}, fmt.Errorf("%w: %q", ErrInvalidLimit, v)
		}
		if limit > cfg.MaxLimit {
			limit = cfg.MaxLimit
		}
		req.Limit = limit
	}

	if v := values.Get("order"); v != "" {
		order := Order(v)
		if err := order.Validate(); err != nil {
			return PageRequest{}, err
		}
		req.Order = order
	}

	return req, nil
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult creates a PageResult with calculated total pages.
func NewPageResult[T any](data []T, total, page, limit int) PageResult[T] {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}

	if data == nil {
		data = []T{}
	}

	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
