// components/console/pages.go
//
// GET views: login, user table, and forbidden.

package console

import (
	"errors"
	"net/http"

	"github.com/yanizio/console/internal/auth"
	"github.com/yanizio/console/internal/clientstore"
	"github.com/yanizio/console/internal/form"
	"github.com/yanizio/console/internal/requestinfo"
	"github.com/yanizio/console/internal/router"
	"github.com/yanizio/console/internal/table"
	"github.com/yanizio/console/internal/user"
)

// Messages shown to the visitor.
const (
	msgFillAll   = "Please fill in all fields"
	msgBadLogin  = "Invalid username or password"
	msgLoadError = "Unable to load data. Please verify that the backend server is running."
)

/*──────────────────────────── page data ────────────────────────────────────*/

// page is the data every template receives.
type page struct {
	Title     string
	Path      string
	Auth      auth.State
	CSRF      string
	CSRFField string
	Theme     string
	Info      *requestinfo.Info
}

type loginPage struct {
	page
	Username    string
	Error       string
	Credentials auth.Credentials
}

type column struct {
	Field  string
	Label  string
	Order  string // "asc", "desc", or "" when not the sort column
	Filter string
}

// row is one rendered table line.
type row struct {
	user.Record
	Created string
}

type usersPage struct {
	page
	State      table.State
	Rows       []row
	Total      int
	TotalPages int
	Pages      []int
	Prev, Next int
	Columns    []column
	DateISO    string
	Roles      []user.Role
	Error      string
}

type forbiddenPage struct {
	page
}

var columnLabels = map[string]string{
	table.FieldID:        "ID",
	table.FieldName:      "Name",
	table.FieldEmail:     "Email",
	table.FieldRole:      "Role",
	table.FieldCreatedAt: "Creation Date",
}

func (c *Component) newPage(w http.ResponseWriter, r *http.Request, title string) page {
	tok, err := c.csrf.Token()
	if err != nil {
		c.log.Errorw("csrf token generation failed", "err", err)
	}
	return page{
		Title:     title,
		Path:      r.URL.Path,
		Auth:      auth.FromContext(r.Context()),
		CSRF:      tok,
		CSRFField: form.FieldName,
		Theme:     currentTheme(clientstore.NewCookie(w, r)),
		Info:      requestinfo.FromContext(r.Context()),
	}
}

func (c *Component) render(w http.ResponseWriter, status int, name string, data any) {
	if err := c.views.Render(w, status, Name, name, data); err != nil {
		c.log.Errorw("render failed", "template", name, "err", err)
	}
}

/*──────────────────────────── views ────────────────────────────────────────*/

func (c *Component) viewLogin(w http.ResponseWriter, r *http.Request, _ *router.Router) {
	c.renderLogin(w, r, http.StatusOK, "", "")
}

func (c *Component) renderLogin(w http.ResponseWriter, r *http.Request, status int, username, msg string) {
	c.render(w, status, "login", loginPage{
		page:        c.newPage(w, r, "Sign in"),
		Username:    username,
		Error:       msg,
		Credentials: c.creds,
	})
}

func (c *Component) viewForbidden(w http.ResponseWriter, r *http.Request, _ *router.Router) {
	c.render(w, http.StatusForbidden, "forbidden", forbiddenPage{page: c.newPage(w, r, "Access Denied")})
}

// viewUsers fetches the list once, rehydrates the table state, derives the
// visible page, and renders it.  A fetch failure renders the error panel.
func (c *Component) viewUsers(w http.ResponseWriter, r *http.Request, _ *router.Router) {
	data := usersPage{
		page:  c.newPage(w, r, "Users"),
		Roles: []user.Role{user.RoleAdmin, user.RoleUser, user.RoleGuest},
	}

	records, err := c.users.GetUsers(r.Context())
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, r.Context().Err()) {
			status = http.StatusServiceUnavailable
		}
		data.Error = msgLoadError
		c.render(w, status, "users", data)
		return
	}

	ctrl := table.NewController(clientstore.NewCookie(w, r), c.defaults, c.log)
	st := ctrl.State()
	v := c.engine.Derive(records, st)

	data.State = st
	for _, rec := range v.Rows {
		data.Rows = append(data.Rows, row{Record: rec, Created: table.DisplayDate(rec.CreatedAt, c.engine.Location)})
	}
	data.Total = v.Total
	data.TotalPages = v.Pages(st.PageSize)
	data.Pages = pageNumbers(data.TotalPages)
	data.Prev, data.Next = st.Page-1, st.Page+1
	data.DateISO = table.DateFilterToISO(st.ColumnFilters[table.FieldCreatedAt])
	for _, f := range table.Columns {
		col := column{Field: f, Label: columnLabels[f], Filter: st.ColumnFilters[f]}
		if st.SortBy == f {
			col.Order = string(st.SortOrder)
		}
		data.Columns = append(data.Columns, col)
	}
	c.render(w, http.StatusOK, "users", data)
}

func pageNumbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
