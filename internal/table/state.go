// internal/table/state.go
//
// Table state and its mutators.
//
// Context
// -------
// State is a value.  Each mutator returns a new State and never touches
// the receiver, so a Controller can swap snapshots atomically and persist
// every one.  The rules:
//
//   - SetSort on the active column toggles asc/desc; on another column it
//     switches to that column ascending.
//   - SetFilter and SetColumnFilter replace one filter value.
//   - Every mutator except SetPage resets Page to 1.
//
// Reduce maps an Action onto the matching mutator.
package table

import (
	"maps"

	"github.com/go-playground/validator/v10"
)

// SortOrder is the sort direction.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Default values used when no valid state is persisted.
const (
	DefaultSortBy   = FieldID
	DefaultPageSize = 20
)

// State drives the visible rows.
type State struct {
	SortBy        string            `json:"sortBy"        validate:"required"`
	SortOrder     SortOrder         `json:"sortOrder"     validate:"oneof=asc desc"`
	Page          int               `json:"page"          validate:"gte=1"`
	PageSize      int               `json:"pageSize"      validate:"gte=1,lte=1000"`
	GlobalFilter  string            `json:"globalFilter"`
	ColumnFilters map[string]string `json:"columnFilters"`
}

var validate = validator.New()

// Validate returns the first rule violation, or nil.
func (s State) Validate() error { return validate.Struct(s) }

// DefaultState sorts by id ascending, first page of DefaultPageSize rows.
func DefaultState() State {
	return DefaultStateWithPageSize(DefaultPageSize)
}

// DefaultStateWithPageSize is DefaultState with a configured page size.
// Non-positive sizes fall back to DefaultPageSize.
func DefaultStateWithPageSize(size int) State {
	if size < 1 {
		size = DefaultPageSize
	}
	return State{
		SortBy:        DefaultSortBy,
		SortOrder:     Asc,
		Page:          1,
		PageSize:      size,
		ColumnFilters: map[string]string{},
	}
}

// SetSort sorts by field, toggling direction when field is already active.
func (s State) SetSort(field string) State {
	next := s.clone()
	if s.SortBy == field && s.SortOrder == Asc {
		next.SortOrder = Desc
	} else {
		next.SortOrder = Asc
	}
	next.SortBy = field
	next.Page = 1
	return next
}

// SetFilter replaces the global filter.
func (s State) SetFilter(v string) State {
	next := s.clone()
	next.GlobalFilter = v
	next.Page = 1
	return next
}

// SetColumnFilter replaces the filter on one column.  An empty value keeps
// the key, which filtering treats as "no filter".
func (s State) SetColumnFilter(field, v string) State {
	next := s.clone()
	next.ColumnFilters[field] = v
	next.Page = 1
	return next
}

// SetPage moves to page p.  Pages below 1 become 1; there is no upper
// clamp, so a page past the end yields no rows.
func (s State) SetPage(p int) State {
	next := s.clone()
	if p < 1 {
		p = 1
	}
	next.Page = p
	return next
}

func (s State) clone() State {
	next := s
	next.ColumnFilters = make(map[string]string, len(s.ColumnFilters)+1)
	maps.Copy(next.ColumnFilters, s.ColumnFilters)
	return next
}

// Action is one table-state transition.
type Action interface{ apply(State) State }

// Sort toggles or switches the sort column.
type Sort struct{ Field string }

// Filter sets the global filter.
type Filter struct{ Value string }

// ColumnFilter sets one column filter.
type ColumnFilter struct{ Field, Value string }

// Page jumps to a page.
type Page struct{ Page int }

func (a Sort) apply(s State) State         { return s.SetSort(a.Field) }
func (a Filter) apply(s State) State       { return s.SetFilter(a.Value) }
func (a ColumnFilter) apply(s State) State { return s.SetColumnFilter(a.Field, a.Value) }
func (a Page) apply(s State) State         { return s.SetPage(a.Page) }

// Reduce applies a to s.
func Reduce(s State, a Action) State { return a.apply(s) }
