// components/console/console.go
//
// Admin console component: login, user table, and forbidden pages plus
// the POST actions that drive them.
//
// Routes
// ------
//   GET  /*                    → router dispatch (see views.go)
//   POST /login                → credential check, session cookie, 303
//   POST /logout               → clear session, 303 /login
//   POST /theme                → toggle light/dark, 303 back
//   POST /users/sort           → table.Sort         ┐
//   POST /users/filter         → table.Filter       │ staff only,
//   POST /users/column-filter  → table.ColumnFilter │ 303 /users
//   POST /users/page           → table.Page         ┘
//
// Every POST carries a csrf_token and passes form.CSRF.Protect.
//
//------------------------------------------------------------------------------

package console

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/console/internal/acl"
	"github.com/yanizio/console/internal/auth"
	"github.com/yanizio/console/internal/component"
	"github.com/yanizio/console/internal/form"
	"github.com/yanizio/console/internal/requestinfo"
	"github.com/yanizio/console/internal/router"
	"github.com/yanizio/console/internal/session"
	"github.com/yanizio/console/internal/table"
	"github.com/yanizio/console/internal/userapi"
	"github.com/yanizio/console/internal/view"
)

// Name is the component and template key.
const Name = "console"

const usersPath = "/users"

//go:embed templates/*.html
var templatesFS embed.FS

// Compile-time assertions.
var (
	_ component.Component   = (*Component)(nil)
	_ component.Initializer = (*Component)(nil)
)

var (
	errNoFetcher = errors.New("console: env has no user fetcher")
	errNoViews   = errors.New("console: env has no view engine")
	errNoConfig  = errors.New("console: env has no config")
)

// Component holds the console's wiring.  Zero value is unusable until
// Init.
type Component struct {
	log      *zap.SugaredLogger
	creds    auth.Credentials
	sessions *session.Manager
	csrf     *form.CSRF
	users    userapi.Fetcher
	views    *view.Engine
	requests *requestinfo.Enricher
	defaults table.State
	engine   table.Engine

	table []router.Route[View]
}

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return Name }

// Init builds the session manager and CSRF signer from config and
// registers the embedded templates.
func (c *Component) Init(env component.Env) error {
	switch {
	case env.Config == nil:
		return errNoConfig
	case env.Users == nil:
		return errNoFetcher
	case env.Views == nil:
		return errNoViews
	}

	sm, err := session.NewManager(env.Config.Session.Secret)
	if err != nil {
		return err
	}
	csrf, err := form.NewCSRF(env.Config.Session.CSRFKey)
	if err != nil {
		return err
	}
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return err
	}
	env.Views.Register(Name, sub)

	c.log = env.Log
	if c.log == nil {
		c.log = zap.S()
	}
	c.requests = env.Requests
	if c.requests == nil {
		c.requests, _ = requestinfo.NewEnricher("")
	}
	c.creds = auth.DefaultCredentials
	c.sessions = sm
	c.csrf = csrf
	c.users = env.Users
	c.views = env.Views
	c.defaults = table.DefaultStateWithPageSize(env.Config.Table.PageSize)
	c.table = c.routes()
	return nil
}

// Routes builds and returns the router mounted at “/”.
func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(c.requests.Enrich)
	r.Use(c.sessions.Middleware)

	// Every route-table pattern is registered for GET so chi never
	// answers 405 on a path that also carries a POST action.
	for _, rt := range c.table {
		if rt.Pattern == router.Wildcard {
			r.Get("/*", c.dispatch)
			continue
		}
		r.Get(rt.Pattern, c.dispatch)
	}
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			c.dispatch(w, r)
			return
		}
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	r.Group(func(r chi.Router) {
		r.Use(c.csrf.Protect)
		r.Post(acl.LoginPath, c.handleLogin)
		r.Post("/logout", c.handleLogout)
		r.Post("/theme", c.handleTheme)

		staffOnly := r.With(acl.RequireRole(staff...))
		staffOnly.Post(usersPath+"/sort", c.handleSort)
		staffOnly.Post(usersPath+"/filter", c.handleFilter)
		staffOnly.Post(usersPath+"/column-filter", c.handleColumnFilter)
		staffOnly.Post(usersPath+"/page", c.handlePage)
	})
	return r
}

// Register component at program start.
func init() { component.Register(&Component{}) }
