// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Pagination describes the page a listing returned.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int64 `json:"pages"`
}

// ListResponse is the envelope for paginated listings.
type ListResponse[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// MessageResponse is returned by endpoints that have nothing else to report.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrNotWholeNumber is returned for fractional or exponent amounts.
var ErrNotWholeNumber = errors.New("must be a whole number")

// WholeNumber parses n as an integer. "10.5", "1e3" and "" are rejected so
// that no fractional amount is ever rounded into the ledger.
func WholeNumber(n json.Number) (int64, error) {
	s := strings.TrimSpace(n.String())
	if s == "" || strings.ContainsAny(s, ".eE") {
		return 0, ErrNotWholeNumber
	}
	v, err := n.Int64()
	if err != nil {
		return 0, ErrNotWholeNumber
	}
	return v, nil
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}
