// Package blogshell is a brandable blog front end built with Go, Echo, and templ.
// It reads published posts from a SQL content store or a fixtures directory,
// resolves branding from the environment and a brand config, and serves a
// home page, a searchable post index, post pages, RSS, and a sitemap.
//
// Users provide their own templates via the ViewFuncs struct; the views
// package ships a default set.
package blogshell

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// ViewFuncs holds the templ components the framework calls when rendering
// pages.
type ViewFuncs struct {
	Home         func(page HomePage) templ.Component
	Posts        func(page PostsPage) templ.Component
	PostsResults func(page PostsPage) templ.Component
	Post         func(page PostPage) templ.Component
	NotFound     func(page ErrorPage) templ.Component
	ServerError  func(page ErrorPage) templ.Component
}

// App wires together the content source, brand resolution, cache,
// handlers, middleware, and templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Brand    *BrandHolder
	Resolver *Resolver
	Loader   *ContentLoader
	Cache    *PostCache
	Store    *Store // nil unless posts come from a database
	Views    ViewFuncs

	source       ContentSource
	bootBrand    *BrandConfig
	env          Env
	logger       echo.Logger
	limiter      *SearchLimiter
	customRoutes []func(*App)
	staticDir    string
	ready        bool
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = log.New("blogshell")
	}
	if a.env == nil {
		a.env = os.Getenv
	}
	a.Echo.HideBanner = true
	a.Echo.Logger = a.logger

	return a
}

// Setup opens the content source, loads branding, and registers middleware
// and routes. Start calls it; tests may call it directly and drive a.Echo.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if err := a.openSource(); err != nil {
		return err
	}

	a.Brand = NewBrandHolder(a.logger)
	if err := a.loadBrand(); err != nil {
		return err
	}
	a.Resolver = NewResolver(a.env, a.Brand)
	a.Loader = NewContentLoader(a.source, a.Resolver, a.Config.PostLimit, a.logger)
	a.Cache = NewPostCache(a.Loader, a.Config.PostCacheTTL)

	if a.Config.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return fmt.Errorf("blogshell: generate session secret: %w", err)
		}
		a.Config.SessionSecret = secret
		a.logger.Warn("SessionSecret is not set; view preferences will not survive a restart")
	}

	if a.Config.SearchRateLimit > 0 {
		a.limiter = NewSearchLimiter(a.Config.SearchRateLimit, time.Minute)
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start runs Setup and starts the server.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) openSource() error {
	if a.source != nil {
		return nil
	}
	switch {
	case a.Config.FixturesDir != "":
		a.source = NewFixtureSource(a.Config.FixturesDir, a.logger)
	case a.Config.DatabaseDSN != "":
		store, err := OpenStore(a.Config.DatabaseDriver, a.Config.DatabaseDSN, a.Config.DatabaseMaxConns)
		if err != nil {
			return fmt.Errorf("blogshell: init store: %w", err)
		}
		a.Store = store
		a.source = store
	default:
		return errors.New("blogshell: FixturesDir or DatabaseDSN is required")
	}
	return nil
}

// loadBrand installs the bootstrap brand config. Sources are tried in
// order: WithBrandConfig, SiteConfig.BrandConfigPath, company.json in the
// fixtures directory. With none of them the holder stays empty and warns
// on first use.
func (a *App) loadBrand() error {
	if a.bootBrand != nil {
		a.Brand.Init(*a.bootBrand)
		return nil
	}
	if a.Config.BrandConfigPath != "" {
		cfg, err := LoadBrandConfig(a.Config.BrandConfigPath)
		if err != nil {
			return err
		}
		a.Brand.Init(cfg)
		return nil
	}
	if fs, ok := a.source.(*FixtureSource); ok {
		cfg, found, err := fs.BrandConfig()
		if err != nil {
			return err
		}
		if found {
			a.Brand.Init(cfg)
		}
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/healthz", a.handleHealth)

	e.GET("/", a.handleHome)
	if a.limiter != nil {
		e.GET("/posts/", a.handlePosts, a.limiter.Middleware)
	} else {
		e.GET("/posts/", a.handlePosts)
	}
	e.GET("/posts/:slug/", a.handlePost)
	e.GET("/blog/", handleBlogRedirect)
	e.GET("/blog/:slug/", handleBlogPostRedirect)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
