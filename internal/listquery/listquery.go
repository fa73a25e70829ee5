// Package listquery answers list requests over an in-memory record set:
// case-insensitive search across a record's text fields, a stable sort on
// one named field, and fixed-size pagination.
package listquery

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

type Params struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

type Result[T any] struct {
	Items      []T
	TotalCount int
	Page       int
	PageSize   int
}

// TotalPages is ceil(TotalCount / PageSize).
func (r Result[T]) TotalPages() int {
	if r.PageSize <= 0 {
		return 0
	}
	return (r.TotalCount + r.PageSize - 1) / r.PageSize
}

// CompareFunc orders two records by one field, returning <0, 0 or >0.
type CompareFunc[T any] func(a, b T) int

// Schema describes which fields of T take part in search and sort.
type Schema[T any] struct {
	// Searchable returns the text of every field a search term may match.
	Searchable func(T) []string
	Sortable   map[string]CompareFunc[T]
}

// SortFields lists the sortable field names in a stable order.
func (s Schema[T]) SortFields() []string {
	names := make([]string, 0, len(s.Sortable))
	for name := range s.Sortable {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Run filters, sorts and paginates records. The input slice is not modified.
// A page past the end yields an empty Items slice, never an error.
func Run[T any](records []T, schema Schema[T], p Params) (Result[T], error) {
	if err := Validate(p, schema); err != nil {
		return Result[T]{}, err
	}

	arranged, err := Arrange(records, schema, p.Search, p.SortBy, p.SortOrder)
	if err != nil {
		return Result[T]{}, err
	}

	return Result[T]{
		Items:      Paginate(arranged, p.Page, p.PageSize),
		TotalCount: len(arranged),
		Page:       p.Page,
		PageSize:   p.PageSize,
	}, nil
}

// Arrange filters and sorts without paginating. An empty sortBy keeps the
// input order.
func Arrange[T any](records []T, schema Schema[T], search, sortBy, sortOrder string) ([]T, error) {
	filtered := Filter(records, schema, search)
	if sortBy == "" {
		return filtered, nil
	}

	cmp, ok := schema.Sortable[sortBy]
	if !ok {
		return nil, unknownSortField(schema, sortBy)
	}

	order, err := normalizeOrder(sortOrder)
	if err != nil {
		return nil, apperror.NewValidationError(apperror.Violation{
			Field: "sortOrder", Rule: "oneof", Message: err.Error(),
		})
	}

	if order == OrderDesc {
		slices.SortStableFunc(filtered, func(a, b T) int { return cmp(b, a) })
	} else {
		slices.SortStableFunc(filtered, cmp)
	}
	return filtered, nil
}

// Filter keeps records where any searchable field contains search,
// ignoring case. An empty search keeps everything. The result is always a
// fresh slice.
func Filter[T any](records []T, schema Schema[T], search string) []T {
	out := make([]T, 0, len(records))
	if search == "" || schema.Searchable == nil {
		return append(out, records...)
	}

	needle := strings.ToLower(search)
	for _, r := range records {
		for _, field := range schema.Searchable(r) {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Paginate returns the 1-based page of size pageSize. Out of range pages
// are empty.
func Paginate[T any](records []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return []T{}
	}
	if page-1 > len(records)/pageSize {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(records) {
		return []T{}
	}
	end := min(start+pageSize, len(records))
	return slices.Clone(records[start:end])
}

// Validate rejects a page or page size below 1, an unknown sort field and
// a sort order other than asc or desc. Violations are reported together.
func Validate[T any](p Params, schema Schema[T]) error {
	verr := apperror.NewValidationError()
	if p.Page < 1 {
		verr.Add("page", "min", "page must be at least 1")
	}
	if p.PageSize < 1 {
		verr.Add("pageSize", "min", "pageSize must be at least 1")
	}
	if p.SortBy != "" {
		if _, ok := schema.Sortable[p.SortBy]; !ok {
			verr.Violations = append(verr.Violations, unknownSortField(schema, p.SortBy).Violations...)
		}
	}
	if _, err := normalizeOrder(p.SortOrder); err != nil {
		verr.Add("sortOrder", "oneof", err.Error())
	}
	return verr.OrNil()
}

func normalizeOrder(order string) (string, error) {
	switch order {
	case "", OrderAsc:
		return OrderAsc, nil
	case OrderDesc:
		return OrderDesc, nil
	default:
		return "", fmt.Errorf("sortOrder must be %q or %q, got %q", OrderAsc, OrderDesc, order)
	}
}

func unknownSortField[T any](schema Schema[T], field string) *apperror.ValidationError {
	msg := fmt.Sprintf("cannot sort by %q, expected one of: %s", field, strings.Join(schema.SortFields(), ", "))
	return apperror.NewValidationError(apperror.Violation{Field: "sortBy", Rule: "oneof", Message: msg})
}
