package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/fundhive/fundhive/internal/model"
	"github.com/fundhive/fundhive/internal/store"
)

// CategoryCache stores the category aggregate between project mutations.
type CategoryCache interface {
	GetCategoryCounts(ctx context.Context) ([]model.CategoryCount, error)
	SetCategoryCounts(ctx context.Context, counts []model.CategoryCount, ttl time.Duration) error
	InvalidateCategoryCounts(ctx context.Context) error
}

// Paging bounds applied to public listings.
type Paging struct {
	DefaultSize int
	MaxSize     int
}

// DefaultPaging is used when a service is built without explicit bounds.
var DefaultPaging = Paging{DefaultSize: 12, MaxSize: 100}

// normalize clamps a requested page to the configured bounds.
func (p Paging) normalize(number, size int) model.Page {
	if number < 1 {
		number = 1
	}
	if size <= 0 {
		size = p.DefaultSize
	}
	if p.MaxSize > 0 && size > p.MaxSize {
		size = p.MaxSize
	}
	return model.Page{Number: number, Size: size}
}

// List is one page of a listing.
type List[T any] struct {
	Items []T
	Total int64
	Page  int
	Pages int64
}

func newList[T any](items []T, total int64, page model.Page) *List[T] {
	if items == nil {
		items = []T{}
	}
	number := page.Number
	if number < 1 {
		number = 1
	}
	pages := model.PageCount(total, page.Size)
	if page.Size <= 0 && total > 0 {
		pages = 1
	}
	return &List[T]{Items: items, Total: total, Page: number, Pages: pages}
}

// generateID returns a new lexically sortable ID.
func generateID() string {
	return ulid.Make().String()
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// notFound maps store.ErrNotFound to the given domain error.
func notFound(err, domain error) error {
	if errors.Is(err, store.ErrNotFound) {
		return domain
	}
	return err
}
