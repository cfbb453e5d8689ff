// Package videoid extracts YouTube video identifiers from the URL shapes
// users commonly paste: watch links, embed links, and youtu.be short links.
package videoid

import "strings"

// markers are the substrings that precede a video id, tried in order.
var markers = []string{"?v=", "&v=", "/embed/", "youtu.be/"}

// Extract returns the video id carried by a URL and whether one was found.
// The id is the contiguous run of characters after a recognized marker, up
// to the next URL delimiter. Pure string inspection, no network access.
func Extract(rawURL string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)

	for _, marker := range markers {
		i := strings.Index(rawURL, marker)
		if i < 0 {
			continue
		}
		id := cutAtDelimiter(rawURL[i+len(marker):])
		if id != "" {
			return id, true
		}
	}

	return "", false
}

// WatchURL returns the canonical watch page URL for a video id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// EmbedURL returns the autoplaying embed player URL for a video id.
func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id + "?autoplay=1"
}

// cutAtDelimiter truncates s at the first URL delimiter.
func cutAtDelimiter(s string) string {
	if i := strings.IndexAny(s, "&?/#"); i >= 0 {
		return s[:i]
	}
	return s
}
