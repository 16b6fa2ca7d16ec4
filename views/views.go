// Package views provides the default blogshell templates. Pages are plain
// html/template files embedded in the binary and exposed as templ
// components so they plug into blogshell.ViewFuncs.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/blogshell"
)

//go:embed templates/*.html
var files embed.FS

const (
	pageHome     = "home.html"
	pagePosts    = "posts.html"
	pagePost     = "post.html"
	pageNotFound = "notfound.html"
	pageError    = "error.html"
)

// pages maps a page file to its parsed template set. Each set holds the
// shared layout and partials plus exactly one page.
var pages = parsePages(pageHome, pagePosts, pagePost, pageNotFound, pageError)

func parsePages(names ...string) map[string]*template.Template {
	base := template.Must(template.New("base").Funcs(funcMap).ParseFS(files, "templates/layout.html", "templates/partials.html"))
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t := template.Must(base.Clone())
		out[name] = template.Must(t.ParseFS(files, "templates/"+name))
	}
	return out
}

func component(page, name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return pages[page].ExecuteTemplate(w, name, data)
	})
}

// Home renders the landing page.
func Home(page blogshell.HomePage) templ.Component {
	return component(pageHome, "layout", page)
}

// Posts renders the full post index.
func Posts(page blogshell.PostsPage) templ.Component {
	return component(pagePosts, "layout", page)
}

// PostsResults renders only the result list of the post index, for htmx swaps.
func PostsResults(page blogshell.PostsPage) templ.Component {
	return component(pagePosts, "results", page)
}

// Post renders a single post.
func Post(page blogshell.PostPage) templ.Component {
	return component(pagePost, "layout", page)
}

// NotFound renders the 404 page.
func NotFound(page blogshell.ErrorPage) templ.Component {
	return component(pageNotFound, "layout", page)
}

// ServerError renders the 500 page.
func ServerError(page blogshell.ErrorPage) templ.Component {
	return component(pageError, "layout", page)
}

// Funcs returns the default view set.
func Funcs() blogshell.ViewFuncs {
	return blogshell.ViewFuncs{
		Home:         Home,
		Posts:        Posts,
		PostsResults: PostsResults,
		Post:         Post,
		NotFound:     NotFound,
		ServerError:  ServerError,
	}
}
