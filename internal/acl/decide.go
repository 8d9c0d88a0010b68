// internal/acl/decide.go
//
// Role gate for console views.
//
// Context
// -------
// Every protected view asks one question before rendering: given the
// current auth.State and the roles the view accepts, may it render, or
// must the visitor be sent elsewhere?  Decide is the pure answer; the view
// layer turns a redirect Decision into a Redirect pseudo-view, and
// RequireRole turns it into an HTTP 303 for action endpoints.
//
// Notes
// -----
// • An empty required set means "any signed-in user".
// • Oxford commas, two spaces after periods.
package acl

import (
	"slices"

	"github.com/yanizio/console/internal/auth"
)

// Decision is the outcome of a gate check.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectForbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectForbidden:
		return "redirect-forbidden"
	}
	return "unknown"
}

// Default redirect targets.
const (
	LoginPath     = "/login"
	ForbiddenPath = "/forbidden"
)

// Target returns the path a redirect Decision points to, or "" for Allow.
func (d Decision) Target() string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectForbidden:
		return ForbiddenPath
	}
	return ""
}

// Decide gates st against required.
func Decide(st auth.State, required []auth.Role) Decision {
	if !st.IsAuthenticated {
		return RedirectLogin
	}
	if len(required) > 0 && !slices.Contains(required, st.Role) {
		return RedirectForbidden
	}
	return Allow
}
