// internal/config/model.go
//
// Typed configuration model for the console and its user backend.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                           – dotenv values,
//   • `conf/console.yaml`                       – primary static file,
//   • `CONSOLE_`-prefixed environment overrides – highest precedence.
//
// Secret-bearing fields (store DSN, session secret, CSRF key) may hold a
// `vault:<mount/path>#<key>` reference.  The loader swaps those for the
// Vault value before validation, so the model never keeps Vault URIs.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • `Paths.Root` is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import "time"

//
// HTTP section
//

// HTTP holds console web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// API section
//

// API configures both ends of the user backend: where cmd/api listens and
// where the console reaches it.
type API struct {
	ListenAddr string        `koanf:"listen_addr" validate:"required,hostname_port"`
	BaseURL    string        `koanf:"base_url"    validate:"required,url"`
	Timeout    time.Duration `koanf:"timeout"`
}

//
// Store section
//

// Store selects the backend user store.  DSN is ignored for memory.
type Store struct {
	Driver string `koanf:"driver" validate:"oneof=memory mysql sqlite3"`
	DSN    string `koanf:"dsn"    validate:"required_unless=Driver memory"`
}

//
// Session section
//

// Session holds the signing secrets for the session cookie and CSRF
// tokens.  Keep both in Vault outside development.
type Session struct {
	Secret  string `koanf:"secret"   validate:"required,min=16"`
	CSRFKey string `koanf:"csrf_key" validate:"required,min=16"`
}

//
// Table section
//

// Table holds user-table defaults.
type Table struct {
	PageSize int `koanf:"page_size" validate:"gte=1,lte=1000"`
}

//
// Paths section
//

// Paths locates on-disk assets.  Root is resolved at runtime (CONSOLE_ROOT
// or discovered parent); Templates and GeoIPDB are relative to Root unless
// absolute.  Empty Templates means the embedded set only; empty GeoIPDB
// disables geo lookup.
type Paths struct {
	Root      string `koanf:"-"`
	Templates string `koanf:"templates"`
	GeoIPDB   string `koanf:"geoip_db"`
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP    HTTP    `koanf:"http"`
	API     API     `koanf:"api"`
	Store   Store   `koanf:"store"`
	Session Session `koanf:"session"`
	Table   Table   `koanf:"table"`
	Paths   Paths   `koanf:"paths"`
}

// applyDefaults fills zero values the YAML may omit.
func (c *Config) applyDefaults() {
	if c.API.Timeout == 0 {
		c.API.Timeout = 10 * time.Second
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "memory"
	}
	if c.Table.PageSize == 0 {
		c.Table.PageSize = 20
	}
}
