package blogshell

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/labstack/gommon/log"
	"gopkg.in/yaml.v2"
)

func newTestLogger(buf *bytes.Buffer) *log.Logger {
	l := log.New("test")
	l.SetOutput(buf)
	return l
}

func TestBrandHolderWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	h := NewBrandHolder(newTestLogger(&buf))

	for range 3 {
		if got := h.Get(); got.Site != nil || got.Theme != nil || got.SEO != nil {
			t.Fatalf("Get() before Init = %+v, want empty config", got)
		}
	}
	if n := strings.Count(buf.String(), brandMissingWarning); n != 1 {
		t.Errorf("warning logged %d times, want 1", n)
	}
	if h.Initialized() {
		t.Error("Initialized() = true before Init")
	}

	h.Init(BrandConfig{Site: &BrandSiteConfig{SiteName: "Acme"}})
	if !h.Initialized() {
		t.Error("Initialized() = false after Init")
	}
	buf.Reset()
	if got := h.Get().Site.SiteName; got != "Acme" {
		t.Errorf("Get().Site.SiteName = %q, want %q", got, "Acme")
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output after Init: %q", buf.String())
	}
}

func TestBrandHolderCopies(t *testing.T) {
	cfg := BrandConfig{
		Site:  &BrandSiteConfig{SiteName: "Acme"},
		Theme: &ThemeData{Colors: &ThemeColors{Primary: "#111"}},
		SEO:   &SeoData{Keywords: Keywords{"a", "b"}},
	}
	h := NewBrandHolder(nil)
	h.Init(cfg)

	cfg.Site.SiteName = "Changed"
	cfg.Theme.Colors.Primary = "#999"
	cfg.SEO.Keywords[0] = "z"

	got := h.Get()
	if got.Site.SiteName != "Acme" || got.Theme.Colors.Primary != "#111" || got.SEO.Keywords[0] != "a" {
		t.Fatalf("holder shares memory with the caller's config: %+v", got)
	}

	got.Site.SiteName = "Mutated"
	if again := h.Get(); again.Site.SiteName != "Acme" {
		t.Errorf("Get() returned shared state, SiteName = %q", again.Site.SiteName)
	}
}

func TestKeywordsUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		yaml string
		want Keywords
	}{
		{"string", `"go, web , ,blog"`, `go, web , ,blog`, Keywords{"go", "web", "blog"}},
		{"list", `["go","web"]`, "[go, web]", Keywords{"go", "web"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var j Keywords
			if err := json.Unmarshal([]byte(tt.json), &j); err != nil {
				t.Fatalf("json: %v", err)
			}
			if !reflect.DeepEqual(j, tt.want) {
				t.Errorf("json = %q, want %q", j, tt.want)
			}
			var y Keywords
			if err := yaml.Unmarshal([]byte(tt.yaml), &y); err != nil {
				t.Fatalf("yaml: %v", err)
			}
			if !reflect.DeepEqual(y, tt.want) {
				t.Errorf("yaml = %q, want %q", y, tt.want)
			}
		})
	}

	var bad Keywords
	if err := json.Unmarshal([]byte(`12`), &bad); err == nil {
		t.Error("expected error for numeric keywords")
	}
	if got := (Keywords{"a", "b"}).String(); got != "a, b" {
		t.Errorf("String() = %q, want %q", got, "a, b")
	}
}

func TestLoadBrandConfig(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "brand.yaml")
	yamlSrc := `site:
  siteName: Acme
  heroTitle: Hello
  theme:
    colors:
      secondary: "#222"
theme:
  colors:
    primary: "#111"
seo:
  title: Acme Blog
  keywords: go, web
`
	if err := os.WriteFile(yamlPath, []byte(yamlSrc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadBrandConfig(yamlPath)
	if err != nil {
		t.Fatalf("LoadBrandConfig(yaml): %v", err)
	}
	if cfg.Site.SiteName != "Acme" || cfg.Site.HeroTitle != "Hello" {
		t.Errorf("site = %+v", cfg.Site)
	}
	if cfg.Theme.Colors.Primary != "#111" || cfg.Site.Theme.Colors.Secondary != "#222" {
		t.Errorf("theme not decoded: %+v / %+v", cfg.Theme, cfg.Site.Theme)
	}
	if !reflect.DeepEqual(cfg.SEO.Keywords, Keywords{"go", "web"}) {
		t.Errorf("keywords = %q", cfg.SEO.Keywords)
	}

	jsonPath := filepath.Join(dir, "brand.json")
	jsonSrc := `{"site":{"siteName":"Json Co","logoUrl":"/logo.png"},"seo":{"keywords":["a","b"]}}`
	if err := os.WriteFile(jsonPath, []byte(jsonSrc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadBrandConfig(jsonPath)
	if err != nil {
		t.Fatalf("LoadBrandConfig(json): %v", err)
	}
	if cfg.Site.SiteName != "Json Co" || cfg.Site.LogoURL != "/logo.png" {
		t.Errorf("site = %+v", cfg.Site)
	}
	if cfg.Theme != nil {
		t.Errorf("theme = %+v, want nil", cfg.Theme)
	}

	if _, err := LoadBrandConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	badPath := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badPath, []byte(`{"site":`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBrandConfig(badPath); err == nil {
		t.Error("expected error for malformed json")
	}
}
