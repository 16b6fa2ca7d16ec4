package blogshell

import (
	"context"
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// DefaultPostLimit caps the number of posts fetched in one list load.
const DefaultPostLimit = 100

// ContentSource provides published post records for a tenant.
type ContentSource interface {
	// FetchPublishedPosts returns up to limit published records for tenantID,
	// newest first.
	FetchPublishedPosts(ctx context.Context, tenantID string, limit int) ([]PostRecord, error)
	// FetchPostBySlug returns the published record with slug, or ErrNotFound.
	FetchPostBySlug(ctx context.Context, tenantID, slug string) (PostRecord, error)
}

// Pinger is implemented by sources that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Tenantless is implemented by sources that serve the same posts to every
// tenant, so no tenant id needs to be configured.
type Tenantless interface {
	Tenantless() bool
}

const (
	noTenantListWarning = "[content] " + EnvTenantID + " is not configured; returning empty post list."
	noTenantPostWarning = "[content] " + EnvTenantID + " is not configured; cannot load post."
)

// ContentLoader turns source records into display posts for the configured
// tenant.
type ContentLoader struct {
	source   ContentSource
	resolver *Resolver
	limit    int
	logger   echo.Logger
}

// NewContentLoader creates a ContentLoader. A limit of zero or less uses
// DefaultPostLimit.
func NewContentLoader(src ContentSource, r *Resolver, limit int, logger echo.Logger) *ContentLoader {
	if limit <= 0 {
		limit = DefaultPostLimit
	}
	if logger == nil {
		logger = log.New("blogshell")
	}
	return &ContentLoader{source: src, resolver: r, limit: limit, logger: logger}
}

func (l *ContentLoader) tenant() (string, bool) {
	if t := l.resolver.TenantID(); t != "" {
		return t, true
	}
	if tl, ok := l.source.(Tenantless); ok && tl.Tenantless() {
		return "", true
	}
	return "", false
}

// LoadPosts returns the tenant's published posts in source order. Without
// a tenant id it logs a warning and returns an empty list.
func (l *ContentLoader) LoadPosts(ctx context.Context) ([]PostData, error) {
	tenant, ok := l.tenant()
	if !ok {
		l.logger.Warn(noTenantListWarning)
		return []PostData{}, nil
	}
	records, err := l.source.FetchPublishedPosts(ctx, tenant, l.limit)
	if err != nil {
		return nil, fmt.Errorf("blogshell: fetch posts: %w", err)
	}
	posts := make([]PostData, 0, len(records))
	for _, rec := range records {
		if rec.Status != StatusPublished {
			continue
		}
		posts = append(posts, RecordToPost(rec))
	}
	return posts, nil
}

// LoadPostBySlug returns the published post with slug, or nil when there
// is none or no tenant id is configured.
func (l *ContentLoader) LoadPostBySlug(ctx context.Context, slug string) (*PostData, error) {
	tenant, ok := l.tenant()
	if !ok {
		l.logger.Warn(noTenantPostWarning)
		return nil, nil
	}
	rec, err := l.source.FetchPostBySlug(ctx, tenant, slug)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("blogshell: fetch post %q: %w", slug, err)
	}
	if rec.Status != StatusPublished {
		return nil, nil
	}
	post := RecordToPost(rec)
	return &post, nil
}

// Ping checks the underlying source when it supports health checks.
func (l *ContentLoader) Ping(ctx context.Context) error {
	if p, ok := l.source.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
