// internal/user/sql_test.go
//
// Unit-tests for SQLStore using sqlmock.
//
// Run: go test ./internal/user -v

package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLStore(sqlx.NewDb(db, "sqlmock")), mock
}

func TestSQLStoreList(t *testing.T) {
	s, mock := newMockStore(t)
	ts := time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "created_at"}).
			AddRow(1, "User 1", "user1@example.com", "Admin", ts).
			AddRow(2, "User 2", "user2@example.com", "User", ts))

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].Role != RoleAdmin || got[1].Email != "user2@example.com" {
		t.Fatalf("unexpected result: %#v", got)
	}
	if !got[0].CreatedAt.Equal(ts) {
		t.Fatalf("created_at = %v, want %v", got[0].CreatedAt, ts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSQLStoreSeedsWhenEmpty(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return now }

	cols := []string{"id", "name", "email", "role", "created_at"}
	empty := sqlmock.NewRows(cols)

	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).WillReturnRows(empty)
	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).WillReturnRows(sqlmock.NewRows(cols))
	mock.ExpectBegin()
	for i := 0; i < SeedCount; i++ {
		mock.ExpectExec(regexp.QuoteMeta(insertQuery)).
			WithArgs(int64(i+1), sqlmock.AnyArg(), sqlmock.AnyArg(), string(mockRole(i)), now).
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}
	mock.ExpectCommit()

	seeded := sqlmock.NewRows(cols)
	for _, u := range mockUsers(SeedCount, now, nil) {
		seeded.AddRow(u.ID, u.Name, u.Email, string(u.Role), u.CreatedAt)
	}
	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).WillReturnRows(seeded)

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != SeedCount {
		t.Fatalf("len = %d, want %d", len(got), SeedCount)
	}
	if got[0].Name != "User 1" || got[0].Role != RoleAdmin {
		t.Fatalf("first user = %#v", got[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSQLStoreSeedRollsBackOnError(t *testing.T) {
	s, mock := newMockStore(t)
	cols := []string{"id", "name", "email", "role", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).WillReturnRows(sqlmock.NewRows(cols))
	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).WillReturnRows(sqlmock.NewRows(cols))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertQuery)).WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	if _, err := s.List(context.Background()); err == nil {
		t.Fatal("expected seed error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
