// internal/auth/state.go
//
// Console authentication state.
//
// Context
// -------
// State answers three questions for the views: is anyone signed in, as
// which role, and under which username.  It is a plain value.  Login and
// Logout return new snapshots rather than mutating the receiver, so the
// HTTP layer can decide where the snapshot lives (see internal/session).
//
// Notes
// -----
// • State is never written to server storage.
// • A failed Login returns the receiver unchanged.
package auth

// Role is a console role.  The empty Role means "none".
type Role string

const (
	RoleNone  Role = ""
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// ParseRole maps a stored role name onto Role.  Unknown names yield
// RoleNone, false.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleAdmin, RoleUser, RoleGuest:
		return r, true
	}
	return RoleNone, false
}

// State is the current authentication snapshot.  The zero value is the
// signed-out state.
type State struct {
	IsAuthenticated bool
	Role            Role
	Username        string
}

// Login checks username/password against creds.  On success it returns
// the signed-in state and true; on failure it returns s and false.
func (s State) Login(creds Credentials, username, password string) (State, bool) {
	c, ok := creds.Lookup(username, password)
	if !ok {
		return s, false
	}
	return State{IsAuthenticated: true, Role: c.Role, Username: c.Username}, true
}

// Logout returns the signed-out state.
func (s State) Logout() State { return State{} }
