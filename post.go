package blogshell

import (
	"encoding/json"
	"regexp"
	"strings"
)

// PostStatus is the lifecycle state of a stored post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusScheduled PostStatus = "scheduled"
	StatusDeploying PostStatus = "deploying"
	StatusPublished PostStatus = "published"
)

// PostRecord is a post as it comes out of a content source. Dates are
// ISO-8601 strings; absent values are empty.
type PostRecord struct {
	ID             string         `json:"id"`
	OrganizationID string         `json:"organizationId,omitempty"`
	Slug           string         `json:"slug"`
	Status         PostStatus     `json:"status"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	Excerpt        string         `json:"excerpt,omitempty"`
	URL            string         `json:"url,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      string         `json:"createdAt"`
	UpdatedAt      string         `json:"updatedAt"`
	PublishedAt    string         `json:"publishedAt,omitempty"`

	// SourcePath is the file a fixture record was read from.
	SourcePath string `json:"-"`
}

// PostData is the display-ready post handed to views.
type PostData struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	Category    string `json:"category,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Author      string `json:"author"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
	SourcePath  string `json:"sourcePath,omitempty"`
	URL         string `json:"url,omitempty"`
}

// DefaultAuthor is used when a record carries no author metadata.
const DefaultAuthor = "Editorial Team"

const excerptMaxRunes = 180

var (
	reExcerptFence = regexp.MustCompile("(?s)```.*?```")
	reExcerptCode  = regexp.MustCompile("`[^`]*`")
	reExcerptMarks = regexp.MustCompile("[#>*_`\\-]")
)

// RecordToPost converts a stored record into display data.
func RecordToPost(rec PostRecord) PostData {
	author, ok := MetaString(rec.Metadata, "author")
	if !ok {
		author = DefaultAuthor
	}
	category, _ := MetaString(rec.Metadata, "category")
	image, _ := MetaString(rec.Metadata, "imageUrl")

	excerpt := strings.TrimSpace(rec.Excerpt)
	if excerpt == "" {
		excerpt = FallbackExcerpt(rec.Content)
	}
	published := rec.PublishedAt
	if strings.TrimSpace(published) == "" {
		published = rec.CreatedAt
	}

	return PostData{
		Slug:        rec.Slug,
		Title:       rec.Title,
		Excerpt:     excerpt,
		Category:    category,
		ImageURL:    image,
		Author:      author,
		PublishedAt: published,
		Content:     rec.Content,
		SourcePath:  rec.SourcePath,
		URL:         rec.URL,
	}
}

// FallbackExcerpt derives a plain-text excerpt from markdown content:
// code is removed, markdown punctuation is stripped, whitespace collapsed
// and the result cut to 180 characters.
func FallbackExcerpt(content string) string {
	text := reExcerptFence.ReplaceAllString(content, " ")
	text = reExcerptCode.ReplaceAllString(text, " ")
	text = reExcerptMarks.ReplaceAllString(text, " ")
	text = strings.Join(strings.Fields(text), " ")
	if r := []rune(text); len(r) > excerptMaxRunes {
		text = string(r[:excerptMaxRunes])
	}
	return strings.TrimSpace(text)
}

// MetaString returns meta[key] when it is a string that is non-empty after
// trimming.
func MetaString(meta map[string]any, key string) (string, bool) {
	s, ok := meta[key].(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// ParseMetadata decodes a JSON object. Anything that is not a JSON object
// yields nil.
func ParseMetadata(raw string) map[string]any {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var meta map[string]any
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil
	}
	return meta
}
