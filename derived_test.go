package blogshell

import (
	"reflect"
	"strings"
	"testing"
)

func post(slug, category, published string) PostData {
	return PostData{
		Slug:        slug,
		Title:       "Title " + slug,
		Excerpt:     "Excerpt " + slug,
		Author:      DefaultAuthor,
		Category:    category,
		PublishedAt: published,
	}
}

func slugsOf(posts []PostData) string {
	s := make([]string, len(posts))
	for i, p := range posts {
		s[i] = p.Slug
	}
	return strings.Join(s, ",")
}

func TestSortByPublished(t *testing.T) {
	posts := []PostData{
		post("old", "", "2023-01-01T00:00:00.000Z"),
		post("bad", "", "not a date"),
		post("new", "", "2024-06-01T10:00:00.000Z"),
		post("mid", "", "2024-01-01"),
		post("empty", "", ""),
	}
	got := SortByPublished(posts)
	if want := "new,mid,old,bad,empty"; slugsOf(got) != want {
		t.Errorf("SortByPublished() = %s, want %s", slugsOf(got), want)
	}
	if slugsOf(posts) != "old,bad,new,mid,empty" {
		t.Error("SortByPublished modified its input")
	}
}

func TestLatestPosts(t *testing.T) {
	posts := []PostData{
		post("a", "", "2024-01-01"),
		post("b", "", "2024-03-01"),
		post("c", "", "2024-02-01"),
		post("d", "", "2024-04-01"),
	}
	tests := []struct {
		n    int
		want string
	}{
		{3, "d,b,c"},
		{10, "d,b,c,a"},
		{0, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := slugsOf(LatestPosts(posts, tt.n)); got != tt.want {
			t.Errorf("LatestPosts(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRelatedPosts(t *testing.T) {
	all := []PostData{
		post("a", "Growth", "2024-01-01"),
		post("b", "Growth", "2024-01-05"),
		post("c", "Ops", "2024-03-01"),
		post("d", "Ops", "2024-02-01"),
		post("e", "", "2024-04-01"),
	}
	tests := []struct {
		name    string
		current PostData
		limit   int
		want    string
	}{
		{"same category first", all[0], 3, "b,e,c"},
		{"category in list order", all[3], 2, "c,e"},
		{"no category uses dates", all[4], 3, "c,d,b"},
		{"limit larger than pool", all[0], 10, "b,e,c,d"},
		{"zero limit", all[0], 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelatedPosts(tt.current, all, tt.limit)
			if slugsOf(got) != tt.want {
				t.Errorf("RelatedPosts(%s) = %q, want %q", tt.current.Slug, slugsOf(got), tt.want)
			}
			for _, p := range got {
				if p.Slug == tt.current.Slug {
					t.Errorf("RelatedPosts includes the current post")
				}
			}
		})
	}
}

func TestRelatedPostsEmptyCategoryNotGrouped(t *testing.T) {
	all := []PostData{
		post("cur", "", "2024-01-01"),
		post("blank", "", "2023-01-01"),
		post("newer", "News", "2024-05-01"),
	}
	if got := slugsOf(RelatedPosts(all[0], all, 1)); got != "newer" {
		t.Errorf("RelatedPosts() = %q, want newer", got)
	}
}

func TestRelatedHeading(t *testing.T) {
	if got := RelatedHeading(post("a", "Growth", "")); got != "More Growth Articles" {
		t.Errorf("RelatedHeading = %q", got)
	}
	if got := RelatedHeading(post("a", "", "")); got != "Related Articles" {
		t.Errorf("RelatedHeading = %q", got)
	}
}

func TestFilterPosts(t *testing.T) {
	posts := []PostData{
		{Slug: "a", Title: "Scaling Go services", Category: "Engineering", PublishedAt: "2024-01-01"},
		{Slug: "b", Title: "Hiring", Excerpt: "How we hire GOphers", Category: "People", PublishedAt: "2024-03-01"},
		{Slug: "c", Title: "Roadmap", Author: "Gordon", Category: "Product", PublishedAt: "2024-02-01"},
		{Slug: "d", Title: "Notes", Category: "Engineering", PublishedAt: "2024-04-01"},
	}
	tests := []struct {
		term, category string
		want           string
	}{
		{"", "", "d,b,c,a"},
		{"", CategoryAll, "d,b,c,a"},
		{"go", "", "b,c,a"},
		{"GO", CategoryAll, "b,c,a"},
		{"", "Engineering", "d,a"},
		{"go", "Engineering", "a"},
		{"engineering", "", "d,a"},
		{"zzz", "", ""},
		{"", "Missing", ""},
	}
	for _, tt := range tests {
		if got := slugsOf(FilterPosts(posts, tt.term, tt.category)); got != tt.want {
			t.Errorf("FilterPosts(%q, %q) = %q, want %q", tt.term, tt.category, got, tt.want)
		}
	}
}

func TestCategories(t *testing.T) {
	posts := []PostData{
		post("a", "Ops", ""),
		post("b", "", ""),
		post("c", "Growth", ""),
		post("d", "Ops", ""),
	}
	if got, want := Categories(posts), []string{"Ops", "Growth"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
	if got := Categories(nil); got == nil || len(got) != 0 {
		t.Errorf("Categories(nil) = %#v, want empty slice", got)
	}
	if got, want := CategoryOptions(posts), []string{"all", "Ops", "Growth"}; !reflect.DeepEqual(got, want) {
		t.Errorf("CategoryOptions() = %v, want %v", got, want)
	}
}

func TestNormalizeView(t *testing.T) {
	tests := map[string]string{
		"grid":   ViewGrid,
		" List ": ViewList,
		"table":  "",
		"":       "",
	}
	for in, want := range tests {
		if got := NormalizeView(in); got != want {
			t.Errorf("NormalizeView(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in    string
		style DateStyle
		want  string
	}{
		{"2024-03-05T12:00:00.000Z", DateLong, "March 5, 2024"},
		{"2024-03-05T12:00:00.000Z", DateShort, "Mar 5, 2024"},
		{"2024-03-05", DateLong, "March 5, 2024"},
		{"2024-03-05 08:30:00", DateShort, "Mar 5, 2024"},
		{"2024-03-05T23:30:00-05:00", DateLong, "March 6, 2024"},
		{"", DateLong, DateFallback},
		{"yesterday", DateShort, DateFallback},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in, tt.style); got != tt.want {
			t.Errorf("FormatDate(%q, %d) = %q, want %q", tt.in, tt.style, got, tt.want)
		}
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{1, 1},
		{1000, 1},
		{1001, 2},
		{2500, 3},
	}
	for _, tt := range tests {
		if got := ReadingTime(strings.Repeat("a", tt.n)); got != tt.want {
			t.Errorf("ReadingTime(%d chars) = %d, want %d", tt.n, got, tt.want)
		}
	}
	if got := ReadingTime(strings.Repeat("ü", 1000)); got != 1 {
		t.Errorf("ReadingTime counts bytes, got %d", got)
	}
}
