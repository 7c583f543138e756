package domain

// Source identifies where a trend item was discovered
type Source string

const (
	SourceRSSFeed    Source = "RSS Feed"
	SourceSearchAPI  Source = "NewsAPI"
	SourceTrendsFeed Source = "Google Trends"
)

// TrendItem represents one discovered topic candidate
type TrendItem struct {
	Title       string
	Description string
	Source      Source
	SourceName  string
	URL         string
	PublishedAt string
	Category    string
}
