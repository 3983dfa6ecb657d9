package types

import "time"

// Post is a single normalized entry from the Substack feed. Posts are
// immutable once constructed; the full collection is rebuilt on every fetch.
type Post struct {
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	// Content carries the raw item markup untouched; sanitizing is the
	// renderer's job.
	Content string    `json:"content"`
	PubDate time.Time `json:"pubDate"`
	// FormattedDate is the display form of PubDate ("January 2, 2006" style),
	// precomputed so static frontends don't need date logic.
	FormattedDate string  `json:"formattedDate"`
	ImageURL      *string `json:"imageUrl"`
	Author        string  `json:"author"`
	Link          string  `json:"link"`
}

// PostListResponse wraps the post collection served by GET /v1/posts.
type PostListResponse struct {
	Posts []Post `json:"posts"`
	Count int    `json:"count"`
}
