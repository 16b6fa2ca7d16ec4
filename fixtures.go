package blogshell

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CompanyFile is the legacy name of the brand config inside a fixtures
// directory.
const CompanyFile = "company.json"

// fixturePost is the on-disk shape of a post fixture, used both for JSON
// files and for markdown front matter.
type fixturePost struct {
	Slug        string `json:"slug" yaml:"slug"`
	Title       string `json:"title" yaml:"title"`
	Excerpt     string `json:"excerpt" yaml:"excerpt"`
	Category    string `json:"category" yaml:"category"`
	ImageURL    string `json:"imageUrl" yaml:"imageUrl"`
	Author      string `json:"author" yaml:"author"`
	PublishedAt string `json:"publishedAt" yaml:"publishedAt"`
	URL         string `json:"url" yaml:"url"`
	Content     string `json:"content" yaml:"-"`
}

// FixtureSource serves posts from a directory of JSON and markdown files:
//
//	<dir>/posts/*.json   one post object or an array of them
//	<dir>/posts/*.md     YAML front matter followed by markdown
//	<dir>/company.json   optional brand config
//
// Files are re-read on every fetch. Unreadable files are skipped with a
// warning.
type FixtureSource struct {
	dir    string
	logger echo.Logger
	now    func() time.Time
}

// NewFixtureSource creates a FixtureSource rooted at dir.
func NewFixtureSource(dir string, logger echo.Logger) *FixtureSource {
	if logger == nil {
		logger = log.New("blogshell")
	}
	return &FixtureSource{dir: dir, logger: logger, now: time.Now}
}

// Tenantless reports that fixtures are shared by every tenant.
func (s *FixtureSource) Tenantless() bool { return true }

// Ping reports whether the posts directory exists.
func (s *FixtureSource) Ping(context.Context) error {
	info, err := os.Stat(s.postsDir())
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("blogshell: %s is not a directory", s.postsDir())
	}
	return nil
}

func (s *FixtureSource) postsDir() string {
	return filepath.Join(s.dir, "posts")
}

// BrandConfig returns the company.json brand config when present. The
// boolean is false when the file does not exist.
func (s *FixtureSource) BrandConfig() (BrandConfig, bool, error) {
	path := filepath.Join(s.dir, CompanyFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return BrandConfig{}, false, nil
	}
	cfg, err := LoadBrandConfig(path)
	if err != nil {
		return BrandConfig{}, false, err
	}
	return cfg, true, nil
}

// Records reads every fixture file in name order. A missing posts directory
// yields no records.
func (s *FixtureSource) Records() ([]PostRecord, error) {
	entries, err := os.ReadDir(s.postsDir())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("blogshell: read fixtures: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".md":
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	var records []PostRecord
	for _, name := range names {
		path := filepath.Join(s.postsDir(), name)
		posts, err := readFixture(path)
		if err != nil {
			s.logger.Warnf("[content] skipping fixture %s: %v", path, err)
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		for _, p := range posts {
			records = append(records, s.toRecord(p, base, path))
		}
	}
	return records, nil
}

func readFixture(path string) ([]fixturePost, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".md") {
		var p fixturePost
		body, err := frontmatter.Parse(bytes.NewReader(raw), &p)
		if err != nil {
			return nil, err
		}
		p.Content = string(body)
		return []fixturePost{p}, nil
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var posts []fixturePost
		if err := json.Unmarshal(trimmed, &posts); err != nil {
			return nil, err
		}
		return posts, nil
	}
	var p fixturePost
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, err
	}
	return []fixturePost{p}, nil
}

func (s *FixtureSource) toRecord(p fixturePost, base, path string) PostRecord {
	slug := firstNonBlank(p.Slug, base)
	title := firstNonBlank(p.Title, headingTitle(p.Content), HumanizeSlug(slug))

	meta := map[string]any{}
	for key, val := range map[string]string{"category": p.Category, "imageUrl": p.ImageURL, "author": p.Author} {
		if v := strings.TrimSpace(val); v != "" {
			meta[key] = v
		}
	}

	now := s.now().UTC().Format(isoLayout)
	return PostRecord{
		ID:          "fixture:" + slug,
		Slug:        slug,
		Status:      StatusPublished,
		Title:       title,
		Content:     p.Content,
		Excerpt:     p.Excerpt,
		URL:         p.URL,
		Metadata:    meta,
		CreatedAt:   now,
		UpdatedAt:   now,
		PublishedAt: strings.TrimSpace(p.PublishedAt),
		SourcePath:  path,
	}
}

// headingTitle returns the text of the first "# " heading in content.
func headingTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}

var reSlugSeparators = regexp.MustCompile(`[-_]+`)

// HumanizeSlug turns "my-first_post" into "My First Post".
func HumanizeSlug(slug string) string {
	words := strings.Fields(reSlugSeparators.ReplaceAllString(slug, " "))
	return cases.Title(language.English, cases.NoLower).String(strings.Join(words, " "))
}

// FetchPublishedPosts returns up to limit fixture records, newest first.
// The tenant id is ignored.
func (s *FixtureSource) FetchPublishedPosts(_ context.Context, _ string, limit int) ([]PostRecord, error) {
	records, err := s.Records()
	if err != nil {
		return nil, err
	}
	records = sortRecords(records)
	if limit = max(limit, 1); len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// FetchPostBySlug returns the newest fixture record with slug.
func (s *FixtureSource) FetchPostBySlug(_ context.Context, _ string, slug string) (PostRecord, error) {
	records, err := s.Records()
	if err != nil {
		return PostRecord{}, err
	}
	for _, rec := range sortRecords(records) {
		if rec.Slug == slug {
			return rec, nil
		}
	}
	return PostRecord{}, ErrNotFound
}

// sortRecords orders records the way the SQL stores do: by publish date,
// falling back to creation date, newest first.
func sortRecords(records []PostRecord) []PostRecord {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b PostRecord) int {
		return cmp.Compare(recordMillis(b), recordMillis(a))
	})
	return out
}

func recordMillis(r PostRecord) int64 {
	s := r.PublishedAt
	if s == "" {
		s = r.CreatedAt
	}
	t, ok := parseDate(s)
	if !ok {
		return 0
	}
	return t.UnixMilli()
}
