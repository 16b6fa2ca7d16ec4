package blogshell

import (
	"encoding/json"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/labstack/gommon/log"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PostPath returns the site-relative path of a post.
func PostPath(slug string) string {
	return "/posts/" + url.PathEscape(slug) + "/"
}

// PathEscape escapes a string for use in a URL path.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("blogshell: required environment variable %s is not set", key)
	}
	return v
}

// WebsiteJsonLD returns a JSON-LD string for a Blog schema.
func WebsiteJsonLD(site SiteData, siteURL string) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "Blog",
		"name":        site.SiteName,
		"url":         BuildURL(siteURL),
		"description": firstNonBlank(site.SEO.Description, site.HeroSubtitle),
		"publisher":   organization(site),
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(post PostData, site SiteData, siteURL string) string {
	postURL := BuildURL(siteURL, "posts", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Excerpt,
		"datePublished": post.PublishedAt,
		"url":           postURL,
		"author": map[string]string{
			"@type": "Person",
			"name":  post.Author,
		},
		"publisher": organization(site),
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if post.ImageURL != "" {
		data["image"] = post.ImageURL
	}
	if post.Category != "" {
		data["articleSection"] = post.Category
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func organization(site SiteData) map[string]interface{} {
	org := map[string]interface{}{
		"@type": "Organization",
		"name":  site.SiteName,
	}
	if site.LogoURL != "" {
		org["logo"] = site.LogoURL
	}
	return org
}
