// cmd/api/main.go
//
// User backend: serves GET /api/users from the configured store.
//
// Start-up
// --------
//
//  1. Parse flags (kingpin), load config (koanf + Vault).
//
//  2. Start the daily rotating logger (tees to console in a TTY).
//
//  3. Open the user store named by store.driver (memory, mysql, or
//     sqlite3) and log its mode.
//
//  4. Init and mount the users component; expose Prometheus /metrics.
//
//  5. Serve until SIGINT/SIGTERM, then drain.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kingpin "github.com/alecthomas/kingpin/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/console/internal/component"
	"github.com/yanizio/console/internal/config"
	"github.com/yanizio/console/internal/database"
	"github.com/yanizio/console/internal/logger"
	"github.com/yanizio/console/internal/middleware"
	"github.com/yanizio/console/internal/server"
	"github.com/yanizio/console/internal/user"

	_ "github.com/yanizio/console/components/users"
)

func main() {
	var (
		rootFlag   = kingpin.Flag("root", "Project root holding conf/console.yaml (default: discovered)").Envar("CONSOLE_ROOT").String()
		listenFlag = kingpin.Flag("listen", "Override api.listen_addr (e.g. :5000)").String()
		driverFlag = kingpin.Flag("driver", "Override store.driver").Enum(user.DriverMemory, database.DriverMySQL, database.DriverSQLite)
	)
	kingpin.HelpFlag.Short('h')
	kingpin.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, *rootFlag, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *listenFlag != "" {
		cfg.API.ListenAddr = *listenFlag
	}
	if *driverFlag != "" {
		cfg.Store.Driver = *driverFlag
	}

	log, err := logger.New(cfg.Paths.Root, "api", logger.IsTTY())
	if err != nil {
		fmt.Fprintf(os.Stderr, "start logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	//
	// ── 1.  User store ──────────────────────────────────────────────────
	//
	store, closer, err := user.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		log.Fatalw("open user store", "driver", cfg.Store.Driver, "err", err)
	}
	defer closer.Close()
	log.Infow("user store online", "mode", store.Mode())

	//
	// ── 2.  Components + router ─────────────────────────────────────────
	//
	if err := component.InitAll(component.Env{Config: cfg, Log: log, Store: store}); err != nil {
		log.Fatalw("init components", "err", err)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Handle("/metrics", promhttp.Handler())
	r.Group(func(r chi.Router) {
		r.Use(middleware.Security)
		component.Mount(r)
	})

	//
	// ── 3.  Serve ───────────────────────────────────────────────────────
	//
	if err := server.Run(ctx, server.New(cfg.API.ListenAddr, r)); err != nil {
		log.Fatalw("http server", "err", err)
	}
	log.Info("shutdown complete")
}
