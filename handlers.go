package blogshell

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	latestPostCount  = 3
	relatedPostCount = 3
)

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := a.Cache.ListPosts(ctx)
	if err != nil {
		return err
	}
	cats, err := a.Cache.ListCategories(ctx)
	if err != nil {
		return err
	}
	site := a.Resolver.Site()
	return Render(c, a.Views.Home(HomePage{
		Site:       site,
		Meta:       a.homeMeta(site),
		Latest:     LatestPosts(posts, latestPostCount),
		Categories: cats,
		SiteURL:    a.Config.URL,
	}))
}

func (a *App) handlePosts(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := a.Cache.ListPosts(ctx)
	if err != nil {
		return err
	}
	cats, err := a.Cache.ListCategories(ctx)
	if err != nil {
		return err
	}

	category := c.QueryParam("category")
	if category == "" {
		category = CategoryAll
	}
	query := c.QueryParam("q")
	site := a.Resolver.Site()
	page := PostsPage{
		Site:       site,
		Meta:       a.indexMeta(site),
		Posts:      FilterPosts(posts, query, category),
		Total:      len(posts),
		Categories: append([]string{CategoryAll}, cats...),
		Query:      query,
		Category:   category,
		View:       viewMode(c),
		SiteURL:    a.Config.URL,
	}
	if isHTMX(c) && c.QueryParam("partial") == "results" {
		return Render(c, a.Views.PostsResults(page))
	}
	return Render(c, a.Views.Posts(page))
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")
	post, err := a.Cache.GetPost(ctx, slug)
	if err != nil {
		return err
	}
	if post == nil {
		return a.renderNotFound(c)
	}
	posts, err := a.Cache.ListPosts(ctx)
	if err != nil {
		return err
	}
	site := a.Resolver.Site()
	return Render(c, a.Views.Post(PostPage{
		Site:           site,
		Meta:           a.postMeta(site, *post),
		Post:           *post,
		Related:        RelatedPosts(*post, posts, relatedPostCount),
		RelatedHeading: RelatedHeading(*post),
		ReadingTime:    ReadingTime(post.Content),
		PublishedOn:    FormatDate(post.PublishedAt, DateLong),
		SiteURL:        a.Config.URL,
	}))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, a.Resolver.Site(), posts)
}

func (a *App) handleRobots(c echo.Context) error {
	sitemap := strings.TrimSuffix(BuildURL(a.Config.URL, "sitemap.xml"), "/")
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s\n", sitemap)
	return c.String(http.StatusOK, body)
}

func (a *App) handleHealth(c echo.Context) error {
	if err := a.Loader.Ping(c.Request().Context()); err != nil {
		c.Logger().Errorf("health check: %v", err)
		return c.String(http.StatusServiceUnavailable, "unavailable")
	}
	return c.String(http.StatusOK, "ok")
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/posts/")
}

func handleBlogPostRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, PostPath(c.Param("slug")))
}

func (a *App) renderNotFound(c echo.Context) error {
	site := a.Resolver.Site()
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(ErrorPage{
		Site: site,
		Meta: PageMeta{Title: "Page not found | " + site.SiteName, OGType: "website"},
	}))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderNotFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		site := a.Resolver.Site()
		_ = RenderStatus(c, code, a.Views.ServerError(ErrorPage{
			Site: site,
			Meta: PageMeta{Title: "Something went wrong | " + site.SiteName, OGType: "website"},
		}))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func (a *App) homeMeta(site SiteData) PageMeta {
	return PageMeta{
		Title:       firstNonBlank(site.SEO.Title, site.SiteName),
		Description: firstNonBlank(site.SEO.Description, site.HeroSubtitle),
		Keywords:    site.SEO.Keywords.String(),
		Image:       site.HeroImageURL,
		URL:         BuildURL(a.Config.URL),
		OGType:      "website",
		JSONLD:      WebsiteJsonLD(site, a.Config.URL),
	}
}

func (a *App) indexMeta(site SiteData) PageMeta {
	return PageMeta{
		Title:       "All Articles | " + site.SiteName,
		Description: firstNonBlank(site.SEO.Description, site.HeroSubtitle),
		Keywords:    site.SEO.Keywords.String(),
		URL:         BuildURL(a.Config.URL, "posts"),
		OGType:      "website",
	}
}

func (a *App) postMeta(site SiteData, post PostData) PageMeta {
	return PageMeta{
		Title:       post.Title + " | " + site.SiteName,
		Description: post.Excerpt,
		Keywords:    site.SEO.Keywords.String(),
		Image:       post.ImageURL,
		URL:         BuildURL(a.Config.URL, "posts", post.Slug),
		OGType:      "article",
		JSONLD:      BlogPostingJsonLD(post, site, a.Config.URL),
	}
}
