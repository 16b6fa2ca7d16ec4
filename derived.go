package blogshell

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// CategoryAll is the category filter value that matches every post.
const CategoryAll = "all"

// View modes for the post index.
const (
	ViewGrid = "grid"
	ViewList = "list"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate parses the date formats produced by the stores and fixtures.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// publishedMillis returns the post's publish time in milliseconds since the
// epoch, or 0 when the date is missing or malformed.
func publishedMillis(p PostData) int64 {
	t, ok := parseDate(p.PublishedAt)
	if !ok {
		return 0
	}
	return t.UnixMilli()
}

// SortByPublished returns a copy of posts ordered newest first. Posts with
// equal or unparseable dates keep their relative order.
func SortByPublished(posts []PostData) []PostData {
	out := slices.Clone(posts)
	slices.SortStableFunc(out, func(a, b PostData) int {
		return cmp.Compare(publishedMillis(b), publishedMillis(a))
	})
	return out
}

// LatestPosts returns the n most recently published posts.
func LatestPosts(posts []PostData, n int) []PostData {
	sorted := SortByPublished(posts)
	if n < len(sorted) {
		sorted = sorted[:max(n, 0)]
	}
	return sorted
}

// RelatedPosts picks up to limit posts for current: first posts in the same
// category in list order, then the newest remaining posts.
func RelatedPosts(current PostData, all []PostData, limit int) []PostData {
	if limit <= 0 {
		return nil
	}
	related := make([]PostData, 0, limit)
	picked := map[string]bool{current.Slug: true}

	if current.Category != "" {
		for _, p := range all {
			if len(related) == limit {
				break
			}
			if picked[p.Slug] || p.Category != current.Category {
				continue
			}
			related = append(related, p)
			picked[p.Slug] = true
		}
	}

	for _, p := range SortByPublished(all) {
		if len(related) == limit {
			break
		}
		if picked[p.Slug] {
			continue
		}
		related = append(related, p)
		picked[p.Slug] = true
	}
	return related
}

// RelatedHeading is the heading shown above the related posts of current.
func RelatedHeading(current PostData) string {
	if current.Category != "" {
		return "More " + current.Category + " Articles"
	}
	return "Related Articles"
}

// FilterPosts narrows posts to category (unless it is "" or "all") and to
// those whose title, excerpt, author or category contain term, ignoring
// case. The result is sorted newest first; posts is not modified.
func FilterPosts(posts []PostData, term, category string) []PostData {
	needle := strings.ToLower(term)
	var out []PostData
	for _, p := range posts {
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		if needle != "" && !matchesTerm(p, needle) {
			continue
		}
		out = append(out, p)
	}
	return SortByPublished(out)
}

func matchesTerm(p PostData, needle string) bool {
	for _, field := range []string{p.Title, p.Excerpt, p.Author, p.Category} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Categories returns the distinct non-empty categories in first-seen order.
func Categories(posts []PostData) []string {
	seen := make(map[string]struct{})
	cats := []string{}
	for _, p := range posts {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		cats = append(cats, p.Category)
	}
	return cats
}

// CategoryOptions returns the category filter choices: "all" followed by
// every distinct category.
func CategoryOptions(posts []PostData) []string {
	return append([]string{CategoryAll}, Categories(posts)...)
}

// NormalizeView returns v when it is a known view mode and "" otherwise.
func NormalizeView(v string) string {
	switch v = strings.ToLower(strings.TrimSpace(v)); v {
	case ViewGrid, ViewList:
		return v
	}
	return ""
}
