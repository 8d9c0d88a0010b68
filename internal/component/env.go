package component

import (
	"go.uber.org/zap"

	"github.com/yanizio/console/internal/config"
	"github.com/yanizio/console/internal/requestinfo"
	"github.com/yanizio/console/internal/user"
	"github.com/yanizio/console/internal/userapi"
	"github.com/yanizio/console/internal/view"
)

// Env exposes process-wide resources to Components during Init.  A binary
// fills only what its components need; the rest stay nil.
type Env struct {
	Config   *config.Config
	Log      *zap.SugaredLogger
	Store    user.Store
	Users    userapi.Fetcher
	Views    *view.Engine
	Requests *requestinfo.Enricher
}
