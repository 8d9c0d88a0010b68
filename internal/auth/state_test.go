package auth

import (
	"context"
	"testing"
)

func TestLogin(t *testing.T) {
	cases := []struct {
		name, user, pass string
		ok               bool
		role             Role
	}{
		{"admin", "admin", "admin123", true, RoleAdmin},
		{"user", "john.doe", "user123", true, RoleUser},
		{"guest", "guest", "guest123", true, RoleGuest},
		{"wrongPassword", "admin", "wrong", false, RoleNone},
		{"unknownUser", "root", "admin123", false, RoleNone},
		{"caseSensitive", "Admin", "admin123", false, RoleNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, ok := State{}.Login(DefaultCredentials, tc.user, tc.pass)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if st.Role != tc.role || st.IsAuthenticated != tc.ok {
				t.Fatalf("state = %+v", st)
			}
			if tc.ok && st.Username != tc.user {
				t.Fatalf("username = %q, want %q", st.Username, tc.user)
			}
		})
	}
}

func TestFailedLoginKeepsState(t *testing.T) {
	signedIn, _ := State{}.Login(DefaultCredentials, "guest", "guest123")

	st, ok := signedIn.Login(DefaultCredentials, "admin", "wrong")
	if ok {
		t.Fatal("login succeeded with a bad password")
	}
	if st != signedIn {
		t.Fatalf("state changed on failure: %+v", st)
	}
}

func TestLogout(t *testing.T) {
	st, _ := State{}.Login(DefaultCredentials, "admin", "admin123")
	if out := st.Logout(); out != (State{}) {
		t.Fatalf("logout = %+v, want zero state", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	if st := FromContext(context.Background()); st.IsAuthenticated {
		t.Fatal("empty context reported authenticated")
	}
	want := State{IsAuthenticated: true, Role: RoleUser, Username: "jane.smith"}
	if got := FromContext(WithState(context.Background(), want)); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
