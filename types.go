package blogshell

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	Keywords    string
	Image       string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}

// HomePage is the data for the landing page.
type HomePage struct {
	Site       SiteData
	Meta       PageMeta
	Latest     []PostData
	Categories []string
	SiteURL    string
}

// PostsPage is the data for the searchable post index.
type PostsPage struct {
	Site       SiteData
	Meta       PageMeta
	Posts      []PostData // after filtering
	Total      int        // before filtering
	Categories []string   // "all" first
	Query      string
	Category   string
	View       string // ViewGrid or ViewList
	SiteURL    string
}

// PostPage is the data for a single post.
type PostPage struct {
	Site           SiteData
	Meta           PageMeta
	Post           PostData
	Related        []PostData
	RelatedHeading string
	ReadingTime    int
	PublishedOn    string
	SiteURL        string
}

// ErrorPage is the data for the not found and server error pages.
type ErrorPage struct {
	Site SiteData
	Meta PageMeta
}
