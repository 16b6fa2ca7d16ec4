package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/blogshell"
	"github.com/eringen/blogshell/views"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the blog",
	Long: `The serve command starts the HTTP server. Posts come from --fixtures when set,
otherwise from --database-dsn, otherwise from the COSMOS_MYSQL_* variables.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", ":3000", "listen address")
	f.String("site-url", "http://localhost:3000", "canonical site URL")
	f.String("fixtures", "", "fixtures directory (posts/ and company.json)")
	f.String("brand", "", "brand config file (yaml or json)")
	f.String("database-driver", "mysql", "database driver: mysql, postgres or sqlite")
	f.String("database-dsn", "", "database DSN")
	f.String("static-dir", "public", "static assets directory")
	f.Duration("cache-ttl", 0, "post cache TTL (default 5m, negative disables)")
	f.Bool("watch", false, "invalidate the cache when fixture files change")

	for key, flag := range map[string]string{
		"addr":            "addr",
		"site_url":        "site-url",
		"fixtures_dir":    "fixtures",
		"brand_config":    "brand",
		"database_driver": "database-driver",
		"database_dsn":    "database-dsn",
		"static_dir":      "static-dir",
		"post_cache_ttl":  "cache-ttl",
		"watch":           "watch",
	} {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}
}

// siteConfig assembles the SiteConfig from flags, environment and config file.
func siteConfig() (blogshell.SiteConfig, error) {
	cfg := blogshell.SiteConfig{
		URL:             v.GetString("site_url"),
		Addr:            v.GetString("addr"),
		DatabaseDriver:  v.GetString("database_driver"),
		DatabaseDSN:     v.GetString("database_dsn"),
		FixturesDir:     v.GetString("fixtures_dir"),
		BrandConfigPath: v.GetString("brand_config"),
		SessionSecret:   v.GetString("session_secret"),
		CookieSecure:    v.GetBool("cookie_secure"),
		PostCacheTTL:    v.GetDuration("post_cache_ttl"),
		PostLimit:       v.GetInt("post_limit"),
	}
	if cfg.FixturesDir == "" && cfg.DatabaseDSN == "" && blogshell.HasMySQLEnv(os.Getenv) {
		m, err := blogshell.MySQLFromEnv(os.Getenv)
		if err != nil {
			return cfg, err
		}
		cfg.DatabaseDriver = blogshell.DriverMySQL
		cfg.DatabaseDSN = m.DSN
		cfg.DatabaseMaxConns = m.MaxConns
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := siteConfig()
	if err != nil {
		return err
	}
	app := blogshell.New(cfg, views.Funcs(), blogshell.WithStaticDir(v.GetString("static_dir")))
	if err := app.Setup(); err != nil {
		return err
	}
	defer app.Close()

	if v.GetBool("watch") && cfg.FixturesDir != "" {
		stop, err := watchFixtures(cfg.FixturesDir, app)
		if err != nil {
			return err
		}
		defer stop()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := app.Echo.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
