package blogshell

import (
	"context"
	"database/sql"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// PostCache is an in-memory cache of the loaded post list with TTL.
type PostCache struct {
	mu         sync.RWMutex
	posts      []PostData
	categories []string
	fetched    time.Time
	ttl        time.Duration
	loader     *ContentLoader
}

// NewPostCache creates a PostCache in front of loader. A ttl of zero or
// less disables caching.
func NewPostCache(loader *ContentLoader, ttl time.Duration) *PostCache {
	return &PostCache{loader: loader, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.categories = nil
	c.mu.Unlock()
}

func (c *PostCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	posts, err := c.loader.LoadPosts(ctx)
	if err != nil {
		return err
	}
	c.posts = posts
	c.categories = Categories(posts)
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts and categories after ensuring the cache
// is fresh. It only takes the write lock when a reload is needed.
func (c *PostCache) ensureLoaded(ctx context.Context) ([]PostData, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, cats := c.posts, c.categories
		c.mu.RUnlock()
		return posts, cats, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, nil, err
	}
	return c.posts, c.categories, nil
}

// ListPosts returns the loaded posts. The slice is shared; callers must not
// modify it.
func (c *PostCache) ListPosts(ctx context.Context) ([]PostData, error) {
	posts, _, err := c.ensureLoaded(ctx)
	return posts, err
}

// ListCategories returns the distinct categories of the loaded posts.
func (c *PostCache) ListCategories(ctx context.Context) ([]string, error) {
	_, cats, err := c.ensureLoaded(ctx)
	return cats, err
}

// GetPost returns the post with slug. Posts outside the cached list are
// looked up through the loader. It returns nil when no such post exists.
func (c *PostCache) GetPost(ctx context.Context, slug string) (*PostData, error) {
	posts, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			post := p
			return &post, nil
		}
	}
	return c.loader.LoadPostBySlug(ctx, slug)
}
