// internal/table/engine.go
//
// Derives the visible page of rows from a record list and a State.
//
// Pipeline (strict order)
// -----------------------
//  1. Global filter  – any field contains the text, case-insensitive.
//  2. Column filters – per field; createdAt also matches date forms.
//  3. Sort           – stable; equal keys keep their relative order.
//  4. Paginate       – [(page-1)*size, page*size); past the end is empty.
//
// Total is counted after step 2 and before step 4.
package table

import (
	"slices"
	"strings"
	"time"

	"github.com/yanizio/console/internal/user"
)

// View is the engine output.
type View struct {
	Rows  []user.Record
	Total int
}

// Pages returns ceil(Total/pageSize).
func (v View) Pages(pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return (v.Total + pageSize - 1) / pageSize
}

// Engine derives views.  Location decides the calendar date used by the
// createdAt filter; nil means time.Local.
type Engine struct {
	Location *time.Location
}

// Derive runs the pipeline with time.Local.
func Derive(records []user.Record, s State) View {
	return Engine{}.Derive(records, s)
}

// Derive runs the pipeline.  records is never modified.
func (e Engine) Derive(records []user.Record, s State) View {
	rows := slices.Clone(records)

	if s.GlobalFilter != "" {
		needle := strings.ToLower(s.GlobalFilter)
		rows = slices.DeleteFunc(rows, func(r user.Record) bool {
			return !matchesAny(r, needle)
		})
	}

	for _, col := range sortedKeys(s.ColumnFilters) {
		val := s.ColumnFilters[col]
		if val == "" || !KnownField(col) {
			continue
		}
		needle := strings.ToLower(val)
		rows = slices.DeleteFunc(rows, func(r user.Record) bool {
			return !e.matchesColumn(r, col, needle)
		})
	}

	if f, ok := fields[s.SortBy]; ok {
		desc := s.SortOrder == Desc
		slices.SortStableFunc(rows, func(a, b user.Record) int {
			c := f.compare(a, b)
			if desc {
				return -c
			}
			return c
		})
	}

	return View{Rows: paginate(rows, s.Page, s.PageSize), Total: len(rows)}
}

func matchesAny(r user.Record, needle string) bool {
	for _, name := range Columns {
		if strings.Contains(strings.ToLower(fields[name].text(r)), needle) {
			return true
		}
	}
	return false
}

func (e Engine) matchesColumn(r user.Record, col, needle string) bool {
	if col != FieldCreatedAt {
		return strings.Contains(strings.ToLower(fields[col].text(r)), needle)
	}
	if r.CreatedAt.IsZero() {
		return false
	}
	loc := e.Location
	if loc == nil {
		loc = time.Local
	}
	for _, form := range dateForms(r.CreatedAt.In(loc)) {
		if strings.Contains(form, needle) {
			return true
		}
	}
	return false
}

func paginate(rows []user.Record, page, size int) []user.Record {
	if page < 1 || size < 1 || page-1 > len(rows)/size {
		return []user.Record{}
	}
	start := (page - 1) * size
	if start >= len(rows) {
		return []user.Record{}
	}
	end := min(start+size, len(rows))
	return rows[start:end]
}

// sortedKeys gives column filters a deterministic order.  Filters are
// conjunctive, so order affects only work done, never the result.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
