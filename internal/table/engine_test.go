package table

import (
	"fmt"
	"testing"
	"time"

	"github.com/yanizio/console/internal/user"
)

func records(n int) []user.Record {
	out := make([]user.Record, n)
	for i := range out {
		out[i] = user.Record{
			ID:        int64(i + 1),
			Name:      fmt.Sprintf("User %d", i+1),
			Email:     fmt.Sprintf("user%d@example.com", i+1),
			Role:      user.RoleUser,
			CreatedAt: time.Date(2024, 1, 1+i%28, 12, 0, 0, 0, time.UTC),
		}
	}
	return out
}

func ids(rows []user.Record) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDeriveNoFiltersSortsAndPaginates(t *testing.T) {
	in := records(5)
	in[0], in[4] = in[4], in[0] // 5,2,3,4,1

	s := DefaultState()
	s.PageSize = 3

	v := Derive(in, s)
	if v.Total != 5 {
		t.Fatalf("total = %d, want 5", v.Total)
	}
	if got := ids(v.Rows); !equalIDs(got, []int64{1, 2, 3}) {
		t.Fatalf("page 1 ids = %v", got)
	}

	v = Derive(in, s.SetPage(2))
	if got := ids(v.Rows); !equalIDs(got, []int64{4, 5}) {
		t.Fatalf("page 2 ids = %v", got)
	}
	if in[0].ID != 5 {
		t.Fatal("Derive modified its input")
	}
}

func TestDerivePagination(t *testing.T) {
	in := records(45)
	s := DefaultState() // page size 20

	cases := []struct {
		page, want int
	}{
		{1, 20},
		{2, 20},
		{3, 5},
		{4, 0},
		{1 << 40, 0},
	}
	for _, tc := range cases {
		v := Derive(in, s.SetPage(tc.page))
		if len(v.Rows) != tc.want {
			t.Errorf("page %d: %d rows, want %d", tc.page, len(v.Rows), tc.want)
		}
		if v.Total != 45 {
			t.Errorf("page %d: total = %d, want 45", tc.page, v.Total)
		}
	}
	if p := (View{Total: 45}).Pages(20); p != 3 {
		t.Fatalf("pages = %d, want 3", p)
	}
}

func TestDeriveGlobalFilter(t *testing.T) {
	in := records(20)
	in[3].Role = user.RoleAdmin

	v := Derive(in, DefaultState().SetFilter("ADMIN"))
	if got := ids(v.Rows); !equalIDs(got, []int64{4}) {
		t.Fatalf("ids = %v, want [4]", got)
	}

	// "user1" hits ids 1 and 10-19 through the email column.
	v = Derive(in, DefaultState().SetFilter("user1"))
	if v.Total != 11 {
		t.Fatalf("total = %d, want 11", v.Total)
	}

	// The ISO timestamp takes part in the global match.
	v = Derive(in, DefaultState().SetFilter("2024-01-05"))
	if got := ids(v.Rows); !equalIDs(got, []int64{5}) {
		t.Fatalf("ids = %v, want [5]", got)
	}
}

func TestDeriveFilterIdempotent(t *testing.T) {
	in := records(30)
	s := DefaultState().SetFilter("user2").SetColumnFilter(FieldEmail, "example")

	once := Derive(in, s)
	all := once.Rows
	twice := Derive(all, s)
	if !equalIDs(ids(once.Rows), ids(twice.Rows)) {
		t.Fatalf("filter not idempotent: %v vs %v", ids(once.Rows), ids(twice.Rows))
	}
}

func TestDeriveColumnFilters(t *testing.T) {
	in := records(12)
	in[2].Role = user.RoleGuest
	in[7].Role = user.RoleGuest

	s := DefaultState().SetColumnFilter(FieldRole, "guest")
	if got := ids(Derive(in, s).Rows); !equalIDs(got, []int64{3, 8}) {
		t.Fatalf("role filter ids = %v", got)
	}

	s = s.SetColumnFilter(FieldID, "8")
	if got := ids(Derive(in, s).Rows); !equalIDs(got, []int64{8}) {
		t.Fatalf("role+id filter ids = %v", got)
	}

	// Empty values and unknown keys are ignored.
	s = DefaultState().SetColumnFilter(FieldName, "").SetColumnFilter("nickname", "zzz")
	if v := Derive(in, s); v.Total != 12 {
		t.Fatalf("total = %d, want 12", v.Total)
	}
}

func TestDeriveCreatedAtFilter(t *testing.T) {
	loc := time.FixedZone("CEST", 2*3600)
	in := []user.Record{
		{ID: 1, Name: "a", CreatedAt: time.Date(2020, 5, 1, 9, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "b", CreatedAt: time.Date(2020, 5, 2, 9, 0, 0, 0, time.UTC)},
		// 23:30 UTC on April 30 is already May 1 in CEST.
		{ID: 3, Name: "c", CreatedAt: time.Date(2020, 4, 30, 23, 30, 0, 0, time.UTC)},
		{ID: 4, Name: "d"},
	}
	e := Engine{Location: loc}

	cases := []struct {
		filter string
		want   []int64
	}{
		{"01/05/2020", []int64{1, 3}},
		{"1/5/2020", []int64{1, 3}},
		{"1/05/2020", []int64{1, 3}}, // picker form, found inside dd/mm/yyyy
		{"1 mai 2020", []int64{1, 3}},
		{"MAI 2020", []int64{1, 2, 3}},
		{"02/05", []int64{2}},
	}
	for _, tc := range cases {
		v := e.Derive(in, DefaultState().SetColumnFilter(FieldCreatedAt, tc.filter))
		if got := ids(v.Rows); !equalIDs(got, tc.want) {
			t.Errorf("filter %q: ids = %v, want %v", tc.filter, got, tc.want)
		}
	}
}

func TestDeriveSortStable(t *testing.T) {
	in := []user.Record{
		{ID: 1, Name: "b", Role: user.RoleUser},
		{ID: 2, Name: "a", Role: user.RoleAdmin},
		{ID: 3, Name: "c", Role: user.RoleUser},
		{ID: 4, Name: "d", Role: user.RoleAdmin},
		{ID: 5, Name: "e", Role: user.RoleUser},
	}

	asc := Derive(in, DefaultState().SetSort(FieldRole))
	if got := ids(asc.Rows); !equalIDs(got, []int64{2, 4, 1, 3, 5}) {
		t.Fatalf("asc ids = %v", got)
	}

	desc := Derive(in, DefaultState().SetSort(FieldRole).SetSort(FieldRole))
	if got := ids(desc.Rows); !equalIDs(got, []int64{1, 3, 5, 2, 4}) {
		t.Fatalf("desc ids = %v", got)
	}

	byName := Derive(in, DefaultState().SetSort(FieldName))
	if got := ids(byName.Rows); !equalIDs(got, []int64{2, 1, 3, 4, 5}) {
		t.Fatalf("name ids = %v", got)
	}

	// Unknown sort column keeps the input order.
	s := DefaultState()
	s.SortBy = "nickname"
	if got := ids(Derive(in, s).Rows); !equalIDs(got, []int64{1, 2, 3, 4, 5}) {
		t.Fatalf("unknown sort ids = %v", got)
	}
}

func TestDeriveSortCreatedAt(t *testing.T) {
	in := records(3)
	in[0].CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	v := Derive(in, DefaultState().SetSort(FieldCreatedAt))
	if got := ids(v.Rows); !equalIDs(got, []int64{2, 3, 1}) {
		t.Fatalf("ids = %v", got)
	}
}

func TestDeriveStalePageAfterFilter(t *testing.T) {
	in := records(45)
	s := DefaultState().SetPage(3)
	s.GlobalFilter = "user4" // bypass the page reset on purpose

	v := Derive(in, s)
	if len(v.Rows) != 0 || v.Total != 7 {
		t.Fatalf("rows = %d total = %d, want 0 and 7", len(v.Rows), v.Total)
	}
}
