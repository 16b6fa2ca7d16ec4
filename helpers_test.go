package blogshell

import (
	"encoding/json"
	"testing"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"posts"}, "https://example.com/posts/"},
		{"https://example.com/", []string{"posts", "hello"}, "https://example.com/posts/hello/"},
		{"https://example.com/blog", []string{"posts"}, "https://example.com/blog/posts/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestPostPath(t *testing.T) {
	tests := map[string]string{
		"hello": "/posts/hello/",
		"a b":   "/posts/a%20b/",
		"x/y":   "/posts/x%2Fy/",
		"café":  "/posts/caf%C3%A9/",
	}
	for in, want := range tests {
		if got := PostPath(in); got != want {
			t.Errorf("PostPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	site := SiteData{SiteName: "Acme", LogoURL: "/logo.png"}
	p := PostData{Slug: "hello", Title: "Hello", Excerpt: "Intro", Author: "Ann", Category: "News", PublishedAt: "2024-01-01"}

	var got map[string]any
	if err := json.Unmarshal([]byte(BlogPostingJsonLD(p, site, "https://example.com")), &got); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	if got["@type"] != "BlogPosting" || got["headline"] != "Hello" || got["articleSection"] != "News" {
		t.Errorf("JSON-LD = %v", got)
	}
	if got["url"] != "https://example.com/posts/hello/" {
		t.Errorf("url = %v", got["url"])
	}
	if _, ok := got["image"]; ok {
		t.Error("image set without ImageURL")
	}
	pub, _ := got["publisher"].(map[string]any)
	if pub["name"] != "Acme" || pub["logo"] != "/logo.png" {
		t.Errorf("publisher = %v", pub)
	}
}

func TestWebsiteJsonLD(t *testing.T) {
	site := SiteData{SiteName: "Acme", HeroSubtitle: "Sub"}
	var got map[string]any
	if err := json.Unmarshal([]byte(WebsiteJsonLD(site, "https://example.com")), &got); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	if got["@type"] != "Blog" || got["description"] != "Sub" || got["url"] != "https://example.com" {
		t.Errorf("JSON-LD = %v", got)
	}
}
