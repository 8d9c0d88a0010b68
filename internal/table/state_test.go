package table

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/yanizio/console/internal/clientstore"
)

func TestSetSortToggles(t *testing.T) {
	s := DefaultState()

	s = s.SetSort(FieldName)
	if s.SortBy != FieldName || s.SortOrder != Asc {
		t.Fatalf("first sort = %s %s, want name asc", s.SortBy, s.SortOrder)
	}
	s = s.SetSort(FieldName)
	if s.SortOrder != Desc {
		t.Fatalf("second sort order = %s, want desc", s.SortOrder)
	}
	s = s.SetSort(FieldEmail)
	if s.SortBy != FieldEmail || s.SortOrder != Asc {
		t.Fatalf("switch sort = %s %s, want email asc", s.SortBy, s.SortOrder)
	}
}

func TestMutatorsResetPage(t *testing.T) {
	base := DefaultState().SetPage(4)
	if base.Page != 4 {
		t.Fatalf("SetPage = %d, want 4", base.Page)
	}

	cases := map[string]State{
		"sort":         base.SetSort(FieldRole),
		"filter":       base.SetFilter("x"),
		"columnFilter": base.SetColumnFilter(FieldName, "x"),
	}
	for name, s := range cases {
		if s.Page != 1 {
			t.Errorf("%s: page = %d, want 1", name, s.Page)
		}
	}
	if p := base.SetPage(0).Page; p != 1 {
		t.Errorf("SetPage(0) = %d, want 1", p)
	}
}

func TestMutatorsDoNotAlias(t *testing.T) {
	a := DefaultState().SetColumnFilter(FieldName, "ann")
	b := a.SetColumnFilter(FieldName, "bob")
	if a.ColumnFilters[FieldName] != "ann" {
		t.Fatalf("receiver mutated: %q", a.ColumnFilters[FieldName])
	}
	if b.ColumnFilters[FieldName] != "bob" {
		t.Fatalf("result = %q", b.ColumnFilters[FieldName])
	}
}

func TestReduce(t *testing.T) {
	s := DefaultState()
	for _, a := range []Action{
		Sort{Field: FieldName},
		Filter{Value: "user"},
		ColumnFilter{Field: FieldRole, Value: "Admin"},
		Page{Page: 2},
	} {
		s = Reduce(s, a)
	}
	if s.SortBy != FieldName || s.GlobalFilter != "user" ||
		s.ColumnFilters[FieldRole] != "Admin" || s.Page != 2 {
		t.Fatalf("reduced state = %+v", s)
	}
}

func TestControllerPersistsEveryChange(t *testing.T) {
	store := clientstore.NewMemory()
	c := NewController(store, DefaultState(), nil)

	c.Dispatch(Sort{Field: FieldEmail})
	c.Dispatch(Page{Page: 3})

	raw, ok, _ := store.GetItem(StorageKey)
	if !ok {
		t.Fatal("state not persisted")
	}
	var got State
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("persisted JSON: %v", err)
	}
	if got.SortBy != FieldEmail || got.Page != 3 {
		t.Fatalf("persisted = %+v", got)
	}

	// A fresh controller rehydrates the same state.
	again := NewController(store, DefaultState(), nil)
	if s := again.State(); s.SortBy != FieldEmail || s.Page != 3 {
		t.Fatalf("rehydrated = %+v", s)
	}
}

func TestControllerFallsBackToDefaults(t *testing.T) {
	cases := map[string]string{
		"garbage":      `{not json`,
		"zeroPageSize": `{"sortBy":"id","sortOrder":"asc","page":1,"pageSize":0}`,
		"badOrder":     `{"sortBy":"id","sortOrder":"up","page":1,"pageSize":20}`,
		"zeroPage":     `{"sortBy":"id","sortOrder":"asc","page":0,"pageSize":20}`,
	}
	for name, raw := range cases {
		store := clientstore.NewMemory()
		_ = store.SetItem(StorageKey, raw)

		s := NewController(store, DefaultStateWithPageSize(10), nil).State()
		if s.PageSize != 10 || s.SortBy != DefaultSortBy || s.Page != 1 {
			t.Errorf("%s: state = %+v, want defaults", name, s)
		}
	}
}

type failingStore struct{}

func (failingStore) GetItem(string) (string, bool, error) { return "", true, errors.New("boom") }
func (failingStore) SetItem(string, string) error         { return errors.New("boom") }

func TestControllerStorageFailuresAreNonFatal(t *testing.T) {
	c := NewController(failingStore{}, DefaultState(), nil)
	if c.State().SortBy != DefaultSortBy {
		t.Fatalf("state = %+v, want defaults", c.State())
	}
	if s := c.Dispatch(Filter{Value: "x"}); s.GlobalFilter != "x" {
		t.Fatalf("dispatch lost update: %+v", s)
	}
}

func TestDateFilterConversions(t *testing.T) {
	if got := DateFilterFromISO("2020-05-01"); got != "1/05/2020" {
		t.Errorf("FromISO = %q", got)
	}
	if got := DateFilterFromISO("05/01/2020"); got != "" {
		t.Errorf("FromISO(bad) = %q", got)
	}

	cases := map[string]string{
		"1/05/2020":            "2020-05-01",
		"01/05/2020":           "2020-05-01",
		"1/5/2020":             "2020-05-01",
		"2020-05-01":           "2020-05-01",
		"2020-05-01T10:00:00Z": "2020-05-01",
		"mai":                  "",
		"":                     "",
	}
	for in, want := range cases {
		if got := DateFilterToISO(in); got != want {
			t.Errorf("ToISO(%q) = %q, want %q", in, got, want)
		}
	}
}
