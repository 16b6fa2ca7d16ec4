package views

import (
	"html/template"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/eringen/blogshell"
	"github.com/eringen/blogshell/markdown"
)

var funcMap = template.FuncMap{
	"shortDate":   func(s string) string { return blogshell.FormatDate(s, blogshell.DateShort) },
	"longDate":    func(s string) string { return blogshell.FormatDate(s, blogshell.DateLong) },
	"readingTime": blogshell.ReadingTime,
	"markdown":    renderMarkdown,
	"jsonLD":      func(s string) template.JS { return template.JS(s) },
	"postURL":     blogshell.PostPath,
	"initial":     Initial,
	"themeCSS":    ThemeCSS,
	"indexURL":    IndexURL,
	"tabClass":    TabClass,
	"year":        currentYear,
}

// renderMarkdown returns the rendered post body. The renderer escapes all
// text before it adds markup.
func renderMarkdown(content string) template.HTML {
	return template.HTML(markdown.HTML(content))
}

// Initial returns the upper-cased first letter of name for avatar badges.
func Initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// ThemeCSS renders the theme colors as a :root rule. Values containing
// anything outside a conservative color syntax are dropped.
func ThemeCSS(colors blogshell.ThemeColors) template.CSS {
	var b strings.Builder
	for _, v := range colors.CSSVars() {
		if !safeCSSValue(v.Value) {
			continue
		}
		b.WriteString(v.Name + ":" + v.Value + ";")
	}
	if b.Len() == 0 {
		return ""
	}
	return template.CSS(":root{" + b.String() + "}")
}

func safeCSSValue(v string) bool {
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("#(),.% -", r):
		default:
			return false
		}
	}
	return v != ""
}

// IndexURL builds a post index link preserving the current filters.
// Empty arguments keep the page's current value.
func IndexURL(page blogshell.PostsPage, category, view string) string {
	if category == "" {
		category = page.Category
	}
	if view == "" {
		view = page.View
	}
	q := url.Values{}
	if page.Query != "" {
		q.Set("q", page.Query)
	}
	if category != "" && category != blogshell.CategoryAll {
		q.Set("category", category)
	}
	if view != "" {
		q.Set("view", view)
	}
	if len(q) == 0 {
		return "/posts/"
	}
	return "/posts/?" + q.Encode()
}

// TabClass returns CSS classes for a filter pill, with active variant.
func TabClass(active bool) string {
	base := "inline-flex items-center rounded-full border border-theme px-3 py-1 text-sm font-medium transition-colors"
	if active {
		return base + " bg-primary text-primary-foreground"
	}
	return base + " hover:bg-muted"
}

func currentYear() int {
	return time.Now().Year()
}
