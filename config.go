package blogshell

import (
	"time"

	"github.com/labstack/echo/v4"
)

// SiteConfig holds all configuration for a blogshell site. Branding is not
// configured here; it comes from the brand config and the environment.
type SiteConfig struct {
	URL  string // Canonical URL (default "http://localhost:3000")
	Addr string // Listen address (default ":3000")

	DatabaseDriver   string // "mysql" (default), "postgres" or "sqlite"
	DatabaseDSN      string // DSN for DatabaseDriver
	DatabaseMaxConns int    // Connection pool size (default 10)

	FixturesDir     string // Directory with posts/ and an optional company.json; used instead of a database
	BrandConfigPath string // brand.yaml, brand.yml or brand.json

	SessionSecret string // Cookie signing secret; generated on start when empty
	CookieSecure  bool   // Set true for HTTPS

	PostCacheTTL time.Duration // Post cache TTL (default 5min, negative disables)
	PostLimit    int           // Maximum posts fetched per list load (default 100)

	SearchRateLimit int // Searches per IP per minute (default 120, negative disables)
}

func (c *SiteConfig) setDefaults() {
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabaseDriver == "" {
		c.DatabaseDriver = DriverMySQL
	}
	if c.DatabaseMaxConns <= 0 {
		c.DatabaseMaxConns = 10
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.PostLimit <= 0 {
		c.PostLimit = DefaultPostLimit
	}
	if c.SearchRateLimit == 0 {
		c.SearchRateLimit = 120
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithSource replaces the database or fixture source with src.
func WithSource(src ContentSource) Option {
	return func(a *App) {
		a.source = src
	}
}

// WithBrandConfig installs cfg as the runtime brand configuration at startup.
// It takes precedence over SiteConfig.BrandConfigPath.
func WithBrandConfig(cfg BrandConfig) Option {
	return func(a *App) {
		a.bootBrand = &cfg
	}
}

// WithEnv replaces the process environment used for branding and tenant lookup.
func WithEnv(env Env) Option {
	return func(a *App) {
		a.env = env
	}
}

// WithLogger sets the logger used by the content loader and brand holder.
func WithLogger(l echo.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}
