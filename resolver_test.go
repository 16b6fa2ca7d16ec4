package blogshell

import (
	"reflect"
	"testing"
)

func newResolver(env map[string]string, cfg *BrandConfig) *Resolver {
	h := NewBrandHolder(nil)
	if cfg != nil {
		h.Init(*cfg)
	}
	return NewResolver(EnvMap(env), h)
}

func TestResolverSiteDefaults(t *testing.T) {
	r := newResolver(nil, &BrandConfig{})
	site := r.Site()

	if site.SiteName != DefaultSiteName {
		t.Errorf("SiteName = %q, want %q", site.SiteName, DefaultSiteName)
	}
	if want := DefaultHeroTitle(DefaultSiteName); site.HeroTitle != want {
		t.Errorf("HeroTitle = %q, want %q", site.HeroTitle, want)
	}
	if site.HeroSubtitle != DefaultHeroSubtitle {
		t.Errorf("HeroSubtitle = %q", site.HeroSubtitle)
	}
	if site.AboutText != DefaultAboutText {
		t.Errorf("AboutText = %q", site.AboutText)
	}
	if site.LogoURL != "" || site.ContactEmail != "" {
		t.Errorf("optional fields should be empty: %+v", site)
	}
	if site.Theme != (ThemeColors{}) {
		t.Errorf("Theme = %+v, want empty", site.Theme)
	}
}

func TestResolverSiteName(t *testing.T) {
	brand := &BrandConfig{Site: &BrandSiteConfig{SiteName: "Brand Co"}}
	tests := []struct {
		name  string
		env   map[string]string
		brand *BrandConfig
		want  string
	}{
		{"env wins", map[string]string{EnvOrgName: "Env Co"}, brand, "Env Co"},
		{"alt env", map[string]string{EnvOrgNameAlt: "Alt Co"}, brand, "Alt Co"},
		{"primary env before alt", map[string]string{EnvOrgName: "Env Co", EnvOrgNameAlt: "Alt Co"}, brand, "Env Co"},
		{"blank env ignored", map[string]string{EnvOrgName: "   "}, brand, "Brand Co"},
		{"brand", nil, brand, "Brand Co"},
		{"blank brand", nil, &BrandConfig{Site: &BrandSiteConfig{SiteName: "  "}}, DefaultSiteName},
		{"no brand", nil, nil, DefaultSiteName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newResolver(tt.env, tt.brand).Site().SiteName; got != tt.want {
				t.Errorf("SiteName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolverHeroUsesResolvedName(t *testing.T) {
	r := newResolver(map[string]string{EnvOrgName: "Env Co"}, &BrandConfig{Site: &BrandSiteConfig{SiteName: "Brand Co"}})
	if got, want := r.Site().HeroTitle, "Insights and stories from the Env Co team"; got != want {
		t.Errorf("HeroTitle = %q, want %q", got, want)
	}

	r = newResolver(nil, &BrandConfig{Site: &BrandSiteConfig{HeroTitle: " Custom ", AboutText: "About us"}})
	site := r.Site()
	if site.HeroTitle != "Custom" || site.AboutText != "About us" {
		t.Errorf("site = %+v", site)
	}
}

func TestResolverLogo(t *testing.T) {
	brand := &BrandConfig{Site: &BrandSiteConfig{LogoURL: "/brand.png"}}
	if got := newResolver(map[string]string{EnvOrgLogoURLAlt: "/env.png"}, brand).Site().LogoURL; got != "/env.png" {
		t.Errorf("LogoURL = %q, want /env.png", got)
	}
	if got := newResolver(nil, brand).Site().LogoURL; got != "/brand.png" {
		t.Errorf("LogoURL = %q, want /brand.png", got)
	}
}

func TestResolverThemePerSlot(t *testing.T) {
	brand := &BrandConfig{
		Theme: &ThemeData{Colors: &ThemeColors{Primary: "#top1", Secondary: "#top2"}},
		Site: &BrandSiteConfig{Theme: &ThemeData{Colors: &ThemeColors{
			Primary: "#nest1", Secondary: "#nest2", Tertiary: "#nest3",
		}}},
	}
	env := map[string]string{EnvPrimaryColor: "#env1", EnvForegroundColor: "#env5"}

	got := newResolver(env, brand).Theme()
	want := ThemeColors{
		Primary:    "#env1",
		Secondary:  "#top2",
		Tertiary:   "#nest3",
		Foreground: "#env5",
	}
	if got != want {
		t.Errorf("Theme() = %+v, want %+v", got, want)
	}
}

func TestResolverSEO(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		brand *BrandConfig
		want  SeoData
	}{
		{
			name: "env keywords split",
			env:  map[string]string{EnvSEOKeywords: "go, web,, blog "},
			brand: &BrandConfig{SEO: &SeoData{Title: "Top", Keywords: Keywords{"x"}}},
			want: SeoData{Title: "Top", Keywords: Keywords{"go", "web", "blog"}},
		},
		{
			name: "top level before nested",
			brand: &BrandConfig{
				SEO:  &SeoData{Description: "top desc", Keywords: Keywords{"top"}},
				Site: &BrandSiteConfig{SEO: &SeoData{Title: "Nested", Description: "nested desc", Keywords: Keywords{"nested"}}},
			},
			want: SeoData{Title: "Nested", Description: "top desc", Keywords: Keywords{"top"}},
		},
		{
			name:  "nested keywords",
			brand: &BrandConfig{Site: &BrandSiteConfig{SEO: &SeoData{Keywords: Keywords{"nested"}}}},
			want:  SeoData{Keywords: Keywords{"nested"}},
		},
		{
			name: "env title",
			env:  map[string]string{EnvSEOTitle: "Env Title", EnvSEODescription: "Env Desc"},
			want: SeoData{Title: "Env Title", Description: "Env Desc"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newResolver(tt.env, tt.brand).SEO(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SEO() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolverTenantID(t *testing.T) {
	tests := []struct {
		env  map[string]string
		want string
	}{
		{nil, ""},
		{map[string]string{EnvTenantID: " org-1 "}, "org-1"},
		{map[string]string{EnvTenantIDAlt: "org-2"}, "org-2"},
		{map[string]string{EnvTenantID: "org-1", EnvTenantIDAlt: "org-2"}, "org-1"},
	}
	for _, tt := range tests {
		if got := newResolver(tt.env, nil).TenantID(); got != tt.want {
			t.Errorf("TenantID() with %v = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestThemeCSSVars(t *testing.T) {
	got := ThemeColors{Primary: "#111", Background: "#fff"}.CSSVars()
	want := []CSSVar{{"--color-primary", "#111"}, {"--color-background", "#fff"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CSSVars() = %v, want %v", got, want)
	}
	if got := (ThemeColors{}).CSSVars(); len(got) != 0 {
		t.Errorf("CSSVars() of empty theme = %v", got)
	}
}
