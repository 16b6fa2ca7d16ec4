package blogshell

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gopkg.in/yaml.v2"
)

// ThemeColors holds the theme color slots. Each slot resolves independently.
type ThemeColors struct {
	Primary    string `json:"primary,omitempty" yaml:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Tertiary   string `json:"tertiary,omitempty" yaml:"tertiary,omitempty"`
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
	Foreground string `json:"foreground,omitempty" yaml:"foreground,omitempty"`
}

// ThemeData is the theme block of a brand config.
type ThemeData struct {
	Colors *ThemeColors `json:"colors,omitempty" yaml:"colors,omitempty"`
}

func (t *ThemeData) colors() ThemeColors {
	if t == nil || t.Colors == nil {
		return ThemeColors{}
	}
	return *t.Colors
}

// Keywords is a keyword list. In config files it may be written either as a
// single comma separated string or as a list.
type Keywords []string

// UnmarshalJSON accepts a string or an array of strings.
func (k *Keywords) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*k = splitKeywords(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("keywords: %w", err)
	}
	*k = list
	return nil
}

// UnmarshalYAML accepts a string or a sequence of strings.
func (k *Keywords) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		*k = splitKeywords(s)
		return nil
	}
	var list []string
	if err := unmarshal(&list); err != nil {
		return err
	}
	*k = list
	return nil
}

// String joins the keywords with ", ".
func (k Keywords) String() string {
	return strings.Join(k, ", ")
}

func splitKeywords(s string) Keywords {
	var out Keywords
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SeoData is the SEO block of a brand config.
type SeoData struct {
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Keywords    Keywords `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// BrandSiteConfig carries site identity. Theme and SEO may also be nested
// here; the top level blocks of BrandConfig win over the nested ones.
type BrandSiteConfig struct {
	SiteName       string     `json:"siteName,omitempty" yaml:"siteName,omitempty"`
	LogoURL        string     `json:"logoUrl,omitempty" yaml:"logoUrl,omitempty"`
	HeroTitle      string     `json:"heroTitle,omitempty" yaml:"heroTitle,omitempty"`
	HeroSubtitle   string     `json:"heroSubtitle,omitempty" yaml:"heroSubtitle,omitempty"`
	HeroImageURL   string     `json:"heroImageUrl,omitempty" yaml:"heroImageUrl,omitempty"`
	AboutText      string     `json:"aboutText,omitempty" yaml:"aboutText,omitempty"`
	AboutImageURL  string     `json:"aboutImageUrl,omitempty" yaml:"aboutImageUrl,omitempty"`
	ContactEmail   string     `json:"contactEmail,omitempty" yaml:"contactEmail,omitempty"`
	ContactPhone   string     `json:"contactPhone,omitempty" yaml:"contactPhone,omitempty"`
	ContactAddress string     `json:"contactAddress,omitempty" yaml:"contactAddress,omitempty"`
	Theme          *ThemeData `json:"theme,omitempty" yaml:"theme,omitempty"`
	SEO            *SeoData   `json:"seo,omitempty" yaml:"seo,omitempty"`
}

// BrandConfig is the runtime brand configuration. Every block is optional.
type BrandConfig struct {
	Site  *BrandSiteConfig `json:"site,omitempty" yaml:"site,omitempty"`
	Theme *ThemeData       `json:"theme,omitempty" yaml:"theme,omitempty"`
	SEO   *SeoData         `json:"seo,omitempty" yaml:"seo,omitempty"`
}

// Clone returns a deep copy of c.
func (c BrandConfig) Clone() BrandConfig {
	out := BrandConfig{
		Theme: c.Theme.clone(),
		SEO:   c.SEO.clone(),
	}
	if c.Site != nil {
		site := *c.Site
		site.Theme = c.Site.Theme.clone()
		site.SEO = c.Site.SEO.clone()
		out.Site = &site
	}
	return out
}

func (t *ThemeData) clone() *ThemeData {
	if t == nil {
		return nil
	}
	out := &ThemeData{}
	if t.Colors != nil {
		colors := *t.Colors
		out.Colors = &colors
	}
	return out
}

func (s *SeoData) clone() *SeoData {
	if s == nil {
		return nil
	}
	out := *s
	if s.Keywords != nil {
		out.Keywords = append(Keywords(nil), s.Keywords...)
	}
	return &out
}

func (c BrandConfig) site() BrandSiteConfig {
	if c.Site == nil {
		return BrandSiteConfig{}
	}
	return *c.Site
}

// LoadBrandConfig reads a brand config file. Files ending in .json are
// decoded as JSON; everything else is decoded as YAML.
func LoadBrandConfig(path string) (BrandConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BrandConfig{}, fmt.Errorf("blogshell: read brand config: %w", err)
	}
	var cfg BrandConfig
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(raw, &cfg)
	} else {
		err = yaml.Unmarshal(raw, &cfg)
	}
	if err != nil {
		return BrandConfig{}, fmt.Errorf("blogshell: parse brand config %s: %w", path, err)
	}
	return cfg, nil
}

const brandMissingWarning = "[brand-config] No runtime brand configuration detected; falling back to defaults."

// BrandHolder holds the process-wide brand configuration. It is written
// once at bootstrap through Init and read concurrently afterwards.
type BrandHolder struct {
	cfg    atomic.Pointer[BrandConfig]
	warned atomic.Bool
	logger echo.Logger
}

// NewBrandHolder creates an uninitialized BrandHolder. A nil logger uses a
// gommon logger with the "blogshell" prefix.
func NewBrandHolder(logger echo.Logger) *BrandHolder {
	if logger == nil {
		logger = log.New("blogshell")
	}
	return &BrandHolder{logger: logger}
}

// Init installs a copy of cfg and clears the missing-config warning state.
func (h *BrandHolder) Init(cfg BrandConfig) {
	c := cfg.Clone()
	h.cfg.Store(&c)
	h.warned.Store(false)
}

// Initialized reports whether Init has been called.
func (h *BrandHolder) Initialized() bool {
	return h.cfg.Load() != nil
}

// Get returns a copy of the current brand config. Before Init it returns an
// empty config and logs a warning the first time it is asked.
func (h *BrandHolder) Get() BrandConfig {
	if c := h.cfg.Load(); c != nil {
		return c.Clone()
	}
	if h.warned.CompareAndSwap(false, true) {
		h.logger.Warn(brandMissingWarning)
	}
	return BrandConfig{}
}
