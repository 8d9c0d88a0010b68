// components/console/actions.go
//
// POST actions.  Each one mutates exactly one piece of client-held state
// (session cookie, table state, theme) and answers 303 so a reload never
// resubmits the form.

package console

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/yanizio/console/internal/acl"
	"github.com/yanizio/console/internal/auth"
	"github.com/yanizio/console/internal/clientstore"
	"github.com/yanizio/console/internal/metrics"
	"github.com/yanizio/console/internal/requestinfo"
	"github.com/yanizio/console/internal/session"
	"github.com/yanizio/console/internal/table"
)

/*──────────────────────────── auth ─────────────────────────────────────────*/

func (c *Component) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	info := requestinfo.FromContext(r.Context())

	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("incomplete").Inc()
		c.renderLogin(w, r, http.StatusBadRequest, username, msgFillAll)
		return
	}

	st, ok := auth.FromContext(r.Context()).Login(c.creds, username, password)
	if !ok {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		c.logAttempt("login failed", username, info)
		c.renderLogin(w, r, http.StatusUnauthorized, username, msgBadLogin)
		return
	}

	if err := c.sessions.Save(w, r, st); err != nil {
		c.log.Errorw("session save failed", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	c.logAttempt("login succeeded", username, info)
	http.Redirect(w, r, usersPath, http.StatusSeeOther)
}

func (c *Component) logAttempt(msg, username string, info *requestinfo.Info) {
	if info == nil {
		c.log.Infow(msg, "user", username)
		return
	}
	c.log.Infow(msg,
		"user", username,
		"ip", info.Geo.IP,
		"country", info.Geo.CountryISO,
		"browser", info.UA.Browser,
		"os", info.UA.OS,
		"bot", info.UA.IsBot,
	)
}

func (c *Component) handleLogout(w http.ResponseWriter, r *http.Request) {
	st := auth.FromContext(r.Context())
	if err := c.sessions.Save(w, r, st.Logout()); err != nil {
		session.Clear(w)
	}
	c.log.Infow("logout", "user", st.Username)
	http.Redirect(w, r, acl.LoginPath, http.StatusSeeOther)
}

/*──────────────────────────── theme ────────────────────────────────────────*/

// ThemeKey is the client-storage key for the light/dark preference.
const ThemeKey = "theme"

func currentTheme(s clientstore.Storage) string {
	if v, ok, err := s.GetItem(ThemeKey); err == nil && ok && v == "dark" {
		return "dark"
	}
	return "light"
}

func (c *Component) handleTheme(w http.ResponseWriter, r *http.Request) {
	store := clientstore.NewCookie(w, r)
	next := "dark"
	if currentTheme(store) == "dark" {
		next = "light"
	}
	if err := store.SetItem(ThemeKey, next); err != nil {
		c.log.Warnw("theme save failed", "err", err)
	}
	http.Redirect(w, r, localPath(r.PostFormValue("return"), acl.LoginPath), http.StatusSeeOther)
}

// localPath accepts only same-site absolute paths.
func localPath(p, fallback string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, `\`) {
		return fallback
	}
	return p
}

/*──────────────────────────── table ────────────────────────────────────────*/

func (c *Component) dispatchTable(w http.ResponseWriter, r *http.Request, a table.Action) {
	ctrl := table.NewController(clientstore.NewCookie(w, r), c.defaults, c.log)
	ctrl.Dispatch(a)
	http.Redirect(w, r, usersPath, http.StatusSeeOther)
}

func (c *Component) handleSort(w http.ResponseWriter, r *http.Request) {
	c.dispatchTable(w, r, table.Sort{Field: r.PostFormValue("field")})
}

func (c *Component) handleFilter(w http.ResponseWriter, r *http.Request) {
	c.dispatchTable(w, r, table.Filter{Value: r.PostFormValue("value")})
}

// handleColumnFilter takes field and value.  A createdAt value posted from
// the date input (yyyy-mm-dd) is stored in d/mm/yyyy form.
func (c *Component) handleColumnFilter(w http.ResponseWriter, r *http.Request) {
	field, value := r.PostFormValue("field"), r.PostFormValue("value")
	if field == table.FieldCreatedAt && value != "" {
		if v := table.DateFilterFromISO(value); v != "" {
			value = v
		}
	}
	c.dispatchTable(w, r, table.ColumnFilter{Field: field, Value: value})
}

func (c *Component) handlePage(w http.ResponseWriter, r *http.Request) {
	p, err := strconv.Atoi(r.PostFormValue("page"))
	if err != nil {
		http.Redirect(w, r, usersPath, http.StatusSeeOther)
		return
	}
	c.dispatchTable(w, r, table.Page{Page: p})
}
