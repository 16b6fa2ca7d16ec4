package blogshell

import (
	"bytes"
	"context"
	"reflect"
	"testing"
	"time"
)

func newTestCache(src *memSource, ttl time.Duration) *PostCache {
	var buf bytes.Buffer
	return NewPostCache(newLoader(src, map[string]string{EnvTenantID: "org"}, &buf), ttl)
}

func TestPostCacheTTL(t *testing.T) {
	src := &memSource{posts: map[string][]PostRecord{
		"org": {rec("a", "published", "News", "2024-01-01"), rec("b", "published", "Tips", "2024-02-01")},
	}}
	c := newTestCache(src, time.Minute)
	ctx := context.Background()

	for range 3 {
		if _, err := c.ListPosts(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}

	cats, err := c.ListCategories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"News", "Tips"}; !reflect.DeepEqual(cats, want) {
		t.Errorf("ListCategories() = %v, want %v", cats, want)
	}

	c.Invalidate()
	if _, err := c.ListPosts(ctx); err != nil {
		t.Fatal(err)
	}
	if src.calls != 2 {
		t.Errorf("source called %d times after Invalidate, want 2", src.calls)
	}
}

func TestPostCacheDisabled(t *testing.T) {
	src := &memSource{posts: map[string][]PostRecord{"org": {rec("a", "published", "", "2024-01-01")}}}
	c := newTestCache(src, -1)
	ctx := context.Background()
	c.ListPosts(ctx)
	c.ListPosts(ctx)
	if src.calls != 2 {
		t.Errorf("source called %d times with caching disabled, want 2", src.calls)
	}
}

func TestPostCacheGetPost(t *testing.T) {
	src := &memSource{posts: map[string][]PostRecord{"org": {rec("a", "published", "", "2024-01-01")}}}
	c := newTestCache(src, time.Minute)
	ctx := context.Background()

	post, err := c.GetPost(ctx, "a")
	if err != nil || post == nil || post.Slug != "a" {
		t.Fatalf("GetPost(a) = %v, %v", post, err)
	}
	post, err = c.GetPost(ctx, "missing")
	if err != nil || post != nil {
		t.Errorf("GetPost(missing) = %v, %v; want nil, nil", post, err)
	}
}
