package blogshell

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

func (a *App) renderRSS(c echo.Context, site SiteData, posts []PostData) error {
	base := a.Config.URL
	var newest time.Time
	items := make([]rssItem, 0, len(posts))
	for _, p := range SortByPublished(posts) {
		pubDate := ""
		if t, ok := parseDate(p.PublishedAt); ok {
			pubDate = t.UTC().Format(time.RFC1123Z)
			if t.After(newest) {
				newest = t
			}
		}
		postURL := BuildURL(base, "posts", p.Slug)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Excerpt,
			Category:    p.Category,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.SiteName,
			Link:        BuildURL(base),
			Description: firstNonBlank(site.SEO.Description, site.HeroSubtitle),
			Items:       items,
		},
	}
	if !newest.IsZero() {
		feed.Channel.LastBuildDate = newest.UTC().Format(time.RFC1123Z)
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
