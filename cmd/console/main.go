// cmd/console/main.go
//
// Admin console: login, role-gated user table, forbidden page.
//
// Start-up
// --------
//
//  1. Parse flags (kingpin), load config (koanf + Vault).
//
//  2. Start the daily rotating logger (tees to console in a TTY).
//
//  3. Build the shared resources: user API client, view engine (with the
//     optional template override dir), and request enricher (with the
//     optional GeoLite2 database).
//
//  4. Init and mount the console component behind ForceHTTPS and the
//     security headers; expose Prometheus /metrics.
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
	"github.com/yanizio/console/internal/logger"
	"github.com/yanizio/console/internal/middleware"
	"github.com/yanizio/console/internal/requestinfo"
	"github.com/yanizio/console/internal/server"
	"github.com/yanizio/console/internal/userapi"
	"github.com/yanizio/console/internal/view"

	_ "github.com/yanizio/console/components/console"
)

func main() {
	var (
		rootFlag   = kingpin.Flag("root", "Project root holding conf/console.yaml (default: discovered)").Envar("CONSOLE_ROOT").String()
		listenFlag = kingpin.Flag("listen", "Override http.listen_addr (e.g. :3000)").String()
		apiFlag    = kingpin.Flag("api", "Override api.base_url (e.g. http://localhost:5000)").String()
		devFlag    = kingpin.Flag("dev", "Reparse templates on every render").Bool()
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
		cfg.HTTP.ListenAddr = *listenFlag
	}
	if *apiFlag != "" {
		cfg.API.BaseURL = *apiFlag
	}

	log, err := logger.New(cfg.Paths.Root, "console", logger.IsTTY())
	if err != nil {
		fmt.Fprintf(os.Stderr, "start logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	//
	// ── 1.  Shared resources ────────────────────────────────────────────
	//
	policy := view.CacheDefault
	if *devFlag {
		policy = view.CacheSkip
	}
	views := view.New(cfg.Paths.Templates, policy, nil)

	enricher, err := requestinfo.NewEnricher(cfg.Paths.GeoIPDB)
	if err != nil {
		// Geo is a hint only; carry on without it.
		log.Warnw("geoip database unavailable", "path", cfg.Paths.GeoIPDB, "err", err)
		enricher, _ = requestinfo.NewEnricher("")
	}
	defer enricher.Close()

	users := userapi.New(cfg.API.BaseURL, cfg.API.Timeout)
	log.Infow("user backend", "base_url", cfg.API.BaseURL, "timeout", cfg.API.Timeout)

	//
	// ── 2.  Components + router ─────────────────────────────────────────
	//
	env := component.Env{
		Config:   cfg,
		Log:      log,
		Users:    users,
		Views:    views,
		Requests: enricher,
	}
	if err := component.InitAll(env); err != nil {
		log.Fatalw("init components", "err", err)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Handle("/metrics", promhttp.Handler())
	r.Group(func(r chi.Router) {
		r.Use(middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS), middleware.Security)
		component.Mount(r)
	})

	//
	// ── 3.  Serve ───────────────────────────────────────────────────────
	//
	if err := server.Run(ctx, server.New(cfg.HTTP.ListenAddr, r)); err != nil {
		log.Fatalw("http server", "err", err)
	}
	log.Info("shutdown complete")
}
