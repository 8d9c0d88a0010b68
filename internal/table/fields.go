// internal/table/fields.go
//
// Per-field accessor table for user.Record.
//
// Context
// -------
// Filtering and sorting never reflect over Record.  Every column the
// console exposes has one entry below: a text extractor (used by the
// global and column filters) and a comparator (used by the sort pass).
// Field names match the JSON keys so persisted state stays readable.
//
// Notes
// -----
// • A field missing from the table is "unknown": filters on it are
//   ignored and sorting on it keeps the input order.
package table

import (
	"cmp"
	"strconv"
	"strings"
	"time"

	"github.com/yanizio/console/internal/user"
)

// Column names.
const (
	FieldID        = "id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldRole      = "role"
	FieldCreatedAt = "createdAt"
)

// field describes how to read and compare one column.
type field struct {
	text    func(user.Record) string
	compare func(a, b user.Record) int
}

var fields = map[string]field{
	FieldID: {
		text:    func(r user.Record) string { return strconv.FormatInt(r.ID, 10) },
		compare: func(a, b user.Record) int { return cmp.Compare(a.ID, b.ID) },
	},
	FieldName: {
		text:    func(r user.Record) string { return r.Name },
		compare: func(a, b user.Record) int { return strings.Compare(a.Name, b.Name) },
	},
	FieldEmail: {
		text:    func(r user.Record) string { return r.Email },
		compare: func(a, b user.Record) int { return strings.Compare(a.Email, b.Email) },
	},
	FieldRole: {
		text:    func(r user.Record) string { return string(r.Role) },
		compare: func(a, b user.Record) int { return strings.Compare(string(a.Role), string(b.Role)) },
	},
	FieldCreatedAt: {
		text:    func(r user.Record) string { return r.CreatedAt.UTC().Format(user.ISOLayout) },
		compare: func(a, b user.Record) int { return a.CreatedAt.Compare(b.CreatedAt) },
	},
}

// Columns lists the fields in display order.
var Columns = []string{FieldID, FieldName, FieldEmail, FieldRole, FieldCreatedAt}

// KnownField reports whether name has an accessor.
func KnownField(name string) bool {
	_, ok := fields[name]
	return ok
}

// frenchMonths backs the long localized date form ("1 janvier 2025").
var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// dateForms returns the three lower-case representations a createdAt
// column filter is matched against: long French, d/m/yyyy, dd/mm/yyyy.
func dateForms(t time.Time) [3]string {
	d, m, y := t.Day(), int(t.Month()), t.Year()
	return [3]string{
		strconv.Itoa(d) + " " + frenchMonths[m-1] + " " + strconv.Itoa(y),
		strconv.Itoa(d) + "/" + strconv.Itoa(m) + "/" + strconv.Itoa(y),
		pad2(d) + "/" + pad2(m) + "/" + strconv.Itoa(y),
	}
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// DisplayDate formats t the way the table renders it ("January 2, 2006").
func DisplayDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("January 2, 2006")
}
