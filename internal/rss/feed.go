package rss

import (
	"context"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"
)

// MaxItems caps how many entries a single feed response carries.
const MaxItems = 10

const fetchTimeout = 10 * time.Second

// Item is one normalized feed entry. Absent fields stay empty strings.
type Item struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Published   string `json:"published"`
}

// Feed is the normalized, truncated feed document.
type Feed struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Fetcher fetches and normalizes external RSS/Atom feeds.
type Fetcher struct {
	parser *gofeed.Parser
}

func NewFetcher() *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: fetchTimeout}
	return &Fetcher{parser: parser}
}

// Fetch retrieves the feed at url and returns at most MaxItems entries.
// Which URLs are reasonable to poll is the operator's call; there is no
// allow-listing here.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Feed, error) {
	parsed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("failed to fetch feed")
		return nil, err
	}

	items := make([]Item, 0, MaxItems)
	for _, entry := range parsed.Items {
		if len(items) == MaxItems {
			break
		}
		items = append(items, Item{
			Title:       entry.Title,
			Description: entry.Description,
			Link:        entry.Link,
			Published:   entry.Published,
		})
	}

	return &Feed{Title: parsed.Title, Items: items}, nil
}
