package blogshell

import (
	"os"
	"strings"
)

// Environment variables consulted by the resolver. Where a pair is listed,
// the first non-empty value wins.
const (
	EnvOrgName       = "NEXT_PUBLIC_ORG_NAME"
	EnvOrgNameAlt    = "ORG_NAME"
	EnvOrgLogoURL    = "NEXT_PUBLIC_ORG_LOGO_URL"
	EnvOrgLogoURLAlt = "ORG_LOGO_URL"

	EnvPrimaryColor    = "NEXT_PUBLIC_PRIMARY_COLOR"
	EnvSecondaryColor  = "NEXT_PUBLIC_SECONDARY_COLOR"
	EnvTertiaryColor   = "NEXT_PUBLIC_TERTIARY_COLOR"
	EnvBackgroundColor = "NEXT_PUBLIC_BACKGROUND_COLOR"
	EnvForegroundColor = "NEXT_PUBLIC_FOREGROUND_COLOR"

	EnvSEOTitle       = "NEXT_PUBLIC_SEO_TITLE"
	EnvSEODescription = "NEXT_PUBLIC_SEO_DESCRIPTION"
	EnvSEOKeywords    = "NEXT_PUBLIC_SEO_KEYWORDS"

	EnvTenantID    = "BLOG_TENANT_ID"
	EnvTenantIDAlt = "NEXT_PUBLIC_BLOG_TENANT_ID"
)

// Defaults applied when neither the environment nor the brand config
// provides a value.
const (
	DefaultSiteName     = "Your Company Blog"
	DefaultHeroSubtitle = "Thought leadership, case studies, and best practices to help you grow."
	DefaultAboutText    = "We are a team of experts passionate about helping businesses succeed."
)

// DefaultHeroTitle returns the hero title used when none is configured.
func DefaultHeroTitle(siteName string) string {
	return "Insights and stories from the " + siteName + " team"
}

// Env looks up a configuration value by key.
type Env func(key string) string

// EnvMap returns an Env backed by m.
func EnvMap(m map[string]string) Env {
	return func(key string) string { return m[key] }
}

func (e Env) lookup(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(e(k)); v != "" {
			return v
		}
	}
	return ""
}

// SiteData is the fully resolved site identity handed to views.
type SiteData struct {
	SiteName       string      `json:"siteName"`
	LogoURL        string      `json:"logoUrl,omitempty"`
	HeroTitle      string      `json:"heroTitle"`
	HeroSubtitle   string      `json:"heroSubtitle"`
	HeroImageURL   string      `json:"heroImageUrl,omitempty"`
	AboutText      string      `json:"aboutText"`
	AboutImageURL  string      `json:"aboutImageUrl,omitempty"`
	ContactEmail   string      `json:"contactEmail,omitempty"`
	ContactPhone   string      `json:"contactPhone,omitempty"`
	ContactAddress string      `json:"contactAddress,omitempty"`
	Theme          ThemeColors `json:"theme"`
	SEO            SeoData     `json:"seo"`
}

// Resolver merges environment overrides, the runtime brand config and the
// built-in defaults.
type Resolver struct {
	env   Env
	brand *BrandHolder
}

// NewResolver creates a Resolver. A nil env reads the process environment.
func NewResolver(env Env, brand *BrandHolder) *Resolver {
	if env == nil {
		env = os.Getenv
	}
	if brand == nil {
		brand = NewBrandHolder(nil)
	}
	return &Resolver{env: env, brand: brand}
}

// Site returns the resolved site identity.
func (r *Resolver) Site() SiteData {
	brand := r.brand.Get()
	site := brand.site()

	name := firstNonBlank(r.env.lookup(EnvOrgName, EnvOrgNameAlt), site.SiteName, DefaultSiteName)
	return SiteData{
		SiteName:       name,
		LogoURL:        firstNonBlank(r.env.lookup(EnvOrgLogoURL, EnvOrgLogoURLAlt), site.LogoURL),
		HeroTitle:      firstNonBlank(site.HeroTitle, DefaultHeroTitle(name)),
		HeroSubtitle:   firstNonBlank(site.HeroSubtitle, DefaultHeroSubtitle),
		HeroImageURL:   strings.TrimSpace(site.HeroImageURL),
		AboutText:      firstNonBlank(site.AboutText, DefaultAboutText),
		AboutImageURL:  strings.TrimSpace(site.AboutImageURL),
		ContactEmail:   strings.TrimSpace(site.ContactEmail),
		ContactPhone:   strings.TrimSpace(site.ContactPhone),
		ContactAddress: strings.TrimSpace(site.ContactAddress),
		Theme:          resolveTheme(r.env, brand),
		SEO:            resolveSEO(r.env, brand),
	}
}

// Theme returns the resolved theme colors.
func (r *Resolver) Theme() ThemeColors {
	return resolveTheme(r.env, r.brand.Get())
}

// SEO returns the resolved SEO metadata.
func (r *Resolver) SEO() SeoData {
	return resolveSEO(r.env, r.brand.Get())
}

// TenantID returns the configured tenant id, or "" when none is set.
func (r *Resolver) TenantID() string {
	return r.env.lookup(EnvTenantID, EnvTenantIDAlt)
}

func resolveTheme(env Env, brand BrandConfig) ThemeColors {
	top := brand.Theme.colors()
	nested := brand.site().Theme.colors()
	return ThemeColors{
		Primary:    firstNonBlank(env.lookup(EnvPrimaryColor), top.Primary, nested.Primary),
		Secondary:  firstNonBlank(env.lookup(EnvSecondaryColor), top.Secondary, nested.Secondary),
		Tertiary:   firstNonBlank(env.lookup(EnvTertiaryColor), top.Tertiary, nested.Tertiary),
		Background: firstNonBlank(env.lookup(EnvBackgroundColor), top.Background, nested.Background),
		Foreground: firstNonBlank(env.lookup(EnvForegroundColor), top.Foreground, nested.Foreground),
	}
}

func resolveSEO(env Env, brand BrandConfig) SeoData {
	top := brand.SEO
	if top == nil {
		top = &SeoData{}
	}
	nested := brand.site().SEO
	if nested == nil {
		nested = &SeoData{}
	}

	seo := SeoData{
		Title:       firstNonBlank(env.lookup(EnvSEOTitle), top.Title, nested.Title),
		Description: firstNonBlank(env.lookup(EnvSEODescription), top.Description, nested.Description),
	}
	switch {
	case env.lookup(EnvSEOKeywords) != "":
		seo.Keywords = splitKeywords(env.lookup(EnvSEOKeywords))
	case len(top.Keywords) > 0:
		seo.Keywords = append(Keywords(nil), top.Keywords...)
	case len(nested.Keywords) > 0:
		seo.Keywords = append(Keywords(nil), nested.Keywords...)
	}
	return seo
}

// CSSVar is a single CSS custom property.
type CSSVar struct {
	Name  string
	Value string
}

// CSSVars returns the non-empty color slots as CSS custom properties.
func (t ThemeColors) CSSVars() []CSSVar {
	var vars []CSSVar
	for _, v := range []CSSVar{
		{"--color-primary", t.Primary},
		{"--color-secondary", t.Secondary},
		{"--color-tertiary", t.Tertiary},
		{"--color-background", t.Background},
		{"--color-foreground", t.Foreground},
	} {
		if v.Value != "" {
			vars = append(vars, v)
		}
	}
	return vars
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
