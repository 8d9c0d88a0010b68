package userapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGetUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != UsersPath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"User 1","email":"user1@example.com","role":"Admin","createdAt":"2024-03-01T10:00:00.000Z"},
			{"id":2,"name":"User 2","email":"user2@example.com","role":"User","createdAt":"2024-03-02T10:00:00.000Z"}
		]`))
	}))
	defer srv.Close()

	users, err := New(srv.URL+"/", time.Second).GetUsers(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 || users[1].Email != "user2@example.com" {
		t.Fatalf("users = %+v", users)
	}
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if !users[0].CreatedAt.Equal(want) {
		t.Fatalf("createdAt = %v, want %v", users[0].CreatedAt, want)
	}
}

func TestGetUsersErrors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"serverError": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"Server error"}`))
		},
		"badBody": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"not":"an array"}`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			_, err := New(srv.URL, time.Second).GetUsers(context.Background())
			if !errors.Is(err, ErrFetch) {
				t.Fatalf("err = %v, want ErrFetch", err)
			}
		})
	}
}

func TestGetUsersStatusInMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).GetUsers(context.Background())
	if err == nil || !strings.Contains(err.Error(), "HTTP Error: 502") {
		t.Fatalf("err = %v", err)
	}
}

func TestGetUsersUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := New(url, time.Second).GetUsers(context.Background()); !errors.Is(err, ErrFetch) {
		t.Fatalf("err = %v, want ErrFetch", err)
	}
}
