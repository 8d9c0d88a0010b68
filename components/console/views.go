// components/console/views.go
//
// Routable views and the two pseudo-views (Redirect, Guard).
//
// Context
// -------
// Every GET is resolved the same way: a router.Router is built over a
// router.RequestHistory positioned at the request path, the ordered route
// table is matched against the current path, and the winning View is
// served.  A View either writes a page or calls Navigate; a navigation
// recorded on the history becomes a 303 once the View returns.
//
// Notes
// -----
// • Redirect and Guard never write a body.
// • Oxford commas, two spaces after periods.

package console

import (
	"net/http"

	"github.com/yanizio/console/internal/acl"
	"github.com/yanizio/console/internal/auth"
	"github.com/yanizio/console/internal/router"
)

// View is one screen of the console.
type View interface {
	Serve(w http.ResponseWriter, r *http.Request, rt *router.Router)
}

// ViewFunc adapts a function to View.
type ViewFunc func(w http.ResponseWriter, r *http.Request, rt *router.Router)

func (f ViewFunc) Serve(w http.ResponseWriter, r *http.Request, rt *router.Router) { f(w, r, rt) }

// Redirect navigates to To on render.
type Redirect struct {
	To      string
	Replace bool
}

func (v Redirect) Serve(_ http.ResponseWriter, _ *http.Request, rt *router.Router) {
	rt.Navigate(v.To, v.Replace)
}

// Guard serves View only when the request's auth.State passes the role
// gate; otherwise it redirects (replace) to login or forbidden.
type Guard struct {
	Roles []auth.Role
	View  View
}

func (g Guard) Serve(w http.ResponseWriter, r *http.Request, rt *router.Router) {
	d := acl.Decide(auth.FromContext(r.Context()), g.Roles)
	if d != acl.Allow {
		Redirect{To: d.Target(), Replace: true}.Serve(w, r, rt)
		return
	}
	g.View.Serve(w, r, rt)
}

// staff may open the user table.
var staff = []auth.Role{auth.RoleAdmin, auth.RoleUser}

// routes is the console's ordered route table.
func (c *Component) routes() []router.Route[View] {
	return []router.Route[View]{
		{Pattern: "/", View: Redirect{To: acl.LoginPath}},
		{Pattern: acl.LoginPath, View: ViewFunc(c.viewLogin)},
		{Pattern: usersPath, View: Guard{Roles: staff, View: ViewFunc(c.viewUsers)}},
		{Pattern: acl.ForbiddenPath, View: ViewFunc(c.viewForbidden)},
		{Pattern: router.Wildcard, View: Redirect{To: acl.LoginPath}},
	}
}

// dispatch resolves a GET through the router.
func (c *Component) dispatch(w http.ResponseWriter, r *http.Request) {
	hist := router.NewRequestHistory(r.URL.Path)
	rt := router.New(hist)
	rt.Mount()
	defer rt.Close()

	v, ok := router.Match(c.table, rt.CurrentPath())
	if !ok {
		http.NotFound(w, r)
		return
	}
	v.Serve(w, r, rt)

	if to, _, ok := hist.Redirect(); ok {
		http.Redirect(w, r, to, http.StatusSeeOther)
	}
}
