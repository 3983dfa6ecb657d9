package substack

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagPattern = regexp.MustCompile(`<[^>]*>`)
	// slugPattern extracts the path segment after the /p/ marker of a
	// canonical post link, e.g.
	// https://conduitofvalue.substack.com/p/when-the-throttle-sticks
	slugPattern = regexp.MustCompile(`/p/([^/?]+)`)
)

// CleanText prepares a feed text field for display: markup is stripped,
// named and numeric character entities are decoded, and internal whitespace
// is collapsed to single spaces.
func CleanText(s string) string {
	if s == "" {
		return ""
	}

	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	// html.UnescapeString leaves non-breaking spaces as U+00A0, which
	// strings.Fields treats as whitespace, so they collapse with the rest.
	return strings.Join(strings.Fields(s), " ")
}

// ExtractSlug derives the URL-safe post identifier from a canonical link.
// Links without a /p/ segment yield the empty string.
func ExtractSlug(link string) string {
	match := slugPattern.FindStringSubmatch(link)
	if match == nil {
		return ""
	}
	return match[1]
}
