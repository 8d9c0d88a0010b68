// internal/table/controller.go
//
// Stateful holder that rehydrates, mutates, and persists table state.
//
// Context
// -------
// A Controller is built once per console interaction.  It reads the last
// persisted State from client storage (falling back to defaults when the
// value is absent, unparsable, or invalid), applies Actions through
// Reduce, and writes every resulting State back.  Storage failures are
// logged and counted, never returned: the table keeps working on the
// in-memory State.
package table

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/yanizio/console/internal/clientstore"
	"github.com/yanizio/console/internal/metrics"
)

// StorageKey is the fixed client-storage key for table state.
const StorageKey = "tableStatePersistence"

// Controller owns the current State for one table.
type Controller struct {
	storage  clientstore.Storage
	log      *zap.SugaredLogger
	defaults State
	state    State
}

// NewController rehydrates from storage.  log may be nil.
func NewController(storage clientstore.Storage, defaults State, log *zap.SugaredLogger) *Controller {
	if log == nil {
		log = zap.S()
	}
	c := &Controller{storage: storage, log: log, defaults: defaults}
	c.state = c.load()
	return c
}

// State returns the current snapshot.
func (c *Controller) State() State { return c.state }

// Dispatch applies a and persists the result.
func (c *Controller) Dispatch(a Action) State {
	c.state = Reduce(c.state, a)
	c.save()
	return c.state
}

func (c *Controller) load() State {
	raw, ok, err := c.storage.GetItem(StorageKey)
	if err != nil {
		c.readFailed("unable to read persisted table state", err)
		return c.defaults.clone()
	}
	if !ok {
		return c.defaults.clone()
	}

	var s State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		c.readFailed("unable to parse persisted table state", err)
		return c.defaults.clone()
	}
	if err := s.Validate(); err != nil {
		c.readFailed("persisted table state invalid", err)
		return c.defaults.clone()
	}
	if s.ColumnFilters == nil {
		s.ColumnFilters = map[string]string{}
	}
	return s
}

func (c *Controller) save() {
	b, err := json.Marshal(c.state)
	if err == nil {
		err = c.storage.SetItem(StorageKey, string(b))
	}
	if err != nil {
		metrics.TableStatePersistErrorsTotal.WithLabelValues("write").Inc()
		c.log.Warnw("unable to save persisted table state", "err", err)
	}
}

func (c *Controller) readFailed(msg string, err error) {
	metrics.TableStatePersistErrorsTotal.WithLabelValues("read").Inc()
	c.log.Warnw(msg, "err", err)
}
