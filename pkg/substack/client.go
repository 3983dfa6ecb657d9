// Package substack fetches and normalizes the Substack RSS feed into Post
// records. The client is stateless; caching sits above it in the post
// service.
package substack

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/SaorsaGrowth/saorsa-site-backend/logger"
	"github.com/SaorsaGrowth/saorsa-site-backend/types"
)

// rssEnclosure is the optional media attachment on a feed item.
type rssEnclosure struct {
	URL  string `xml:"url,attr"`
	Type string `xml:"type,attr"`
}

// rssItem mirrors a single <item> element of the Substack feed.
type rssItem struct {
	Title       string        `xml:"title"`
	Description string        `xml:"description"`
	Link        string        `xml:"link"`
	GUID        string        `xml:"guid"`
	Creator     string        `xml:"http://purl.org/dc/elements/1.1/ creator"`
	PubDate     string        `xml:"pubDate"`
	Enclosure   *rssEnclosure `xml:"enclosure"`
	Content     string        `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
}

// rssFeed mirrors the feed document root. A feed with one post and a feed
// with many both decode into Items; the single-vs-sequence ambiguity of the
// underlying XML never reaches callers.
type rssFeed struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

// pubDateLayouts are the timestamp formats seen in RSS pubDate fields,
// tried in order.
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
}

// ClientInterface defines the read operations the rest of the service uses.
type ClientInterface interface {
	FetchPosts(ctx context.Context) ([]types.Post, error)
}

type Client struct {
	feedURL       string
	defaultAuthor string
	httpClient    *http.Client
}

func NewClient(feedURL, defaultAuthor string, timeout time.Duration) *Client {
	return &Client{
		feedURL:       feedURL,
		defaultAuthor: defaultAuthor,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

// FetchPosts downloads the feed and returns its items as normalized posts,
// sorted by publication date descending. The sort is stable, so items with
// equal dates keep the feed's order.
func (c *Client) FetchPosts(ctx context.Context) ([]types.Post, error) {
	log := logger.GetLogger()
	log.Debugw("Fetching Substack feed", "url", c.feedURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	posts, err := parseFeed(body, c.defaultAuthor)
	if err != nil {
		return nil, err
	}

	log.Debugw("Substack feed fetched", "posts", len(posts))
	return posts, nil
}

// parseFeed decodes the raw feed XML into sorted posts.
func parseFeed(data []byte, defaultAuthor string) ([]types.Post, error) {
	var feed rssFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse feed XML: %w", err)
	}

	posts := make([]types.Post, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		posts = append(posts, normalizeItem(item, defaultAuthor))
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PubDate.After(posts[j].PubDate)
	})

	return posts, nil
}

// normalizeItem converts a raw feed item into a Post. Title, description and
// author are cleaned for display; content keeps its raw markup for the
// downstream renderer.
func normalizeItem(item rssItem, defaultAuthor string) types.Post {
	author := CleanText(item.Creator)
	if author == "" {
		author = defaultAuthor
	}

	var imageURL *string
	if item.Enclosure != nil && item.Enclosure.URL != "" {
		u := item.Enclosure.URL
		imageURL = &u
	}

	pubDate := parsePubDate(item.PubDate)

	return types.Post{
		Title:         CleanText(item.Title),
		Slug:          ExtractSlug(item.Link),
		Description:   CleanText(item.Description),
		Content:       item.Content,
		PubDate:       pubDate,
		FormattedDate: FormatDate(pubDate),
		ImageURL:      imageURL,
		Author:        author,
		Link:          item.Link,
	}
}

// parsePubDate tries the common RSS date layouts; an unparseable date
// yields the zero time, which sorts to the end of the list.
func parsePubDate(raw string) time.Time {
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatDate renders a publication date as a long US-style display date,
// e.g. "January 2, 2006".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}
