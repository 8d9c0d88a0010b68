// components/users/users.go
//
// User backend component: the mock REST API behind the console.
//
// Routes
// ------
//   GET /           → "API is running... (Mode: <store mode>)"
//   GET /api/users  → 200 JSON array of user.Record ordered by id, or
//                     500 {"message":"Server error"} on store failure.
//
// CORS is open to every origin with GET only.
//
//------------------------------------------------------------------------------

package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/yanizio/console/internal/component"
	"github.com/yanizio/console/internal/user"
)

// Compile-time assertions.
var (
	_ component.Component   = (*Component)(nil)
	_ component.Initializer = (*Component)(nil)
)

var errNoStore = errors.New("users: env has no user store")

// Component serves the user list.
type Component struct {
	store user.Store
	log   *zap.SugaredLogger
}

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "users" }

// Init grabs the store chosen by store.driver.
func (c *Component) Init(env component.Env) error {
	if env.Store == nil {
		return errNoStore
	}
	c.store = env.Store
	c.log = env.Log
	if c.log == nil {
		c.log = zap.S()
	}
	return nil
}

// Routes builds and returns the router mounted at “/”.
func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Get("/", c.handleBanner)
	r.Get("/api/users", c.handleList)
	return r
}

// Register component at program start.
func init() { component.Register(&Component{}) }

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handleBanner(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "API is running... (Mode: %s)", c.store.Mode())
}

func (c *Component) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := c.store.List(r.Context())
	if err != nil {
		c.log.Errorw("user list failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if list == nil {
		list = []user.Record{}
	}
	writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("json encode failed", zap.Error(err))
	}
}
