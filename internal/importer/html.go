package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/nikbrunner/ytmark/internal/model"
	"github.com/nikbrunner/ytmark/internal/videoid"
)

// ParseHTMLVideos parses Netscape bookmark HTML and returns the video
// entries found in it, in document order. Anchors whose href carries no
// extractable video id are skipped; they are ordinary bookmarks, not videos.
func ParseHTMLVideos(r io.Reader) ([]model.VideoEntry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var entries []model.VideoEntry

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "a") {
			href := getAttr(n, "href")
			if _, ok := videoid.Extract(href); !ok {
				return
			}

			title := getTextContent(n)
			if title == "" {
				title = href // fallback to URL as title
			}

			addedAt := time.Now()
			if addDate := getAttr(n, "add_date"); addDate != "" {
				if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
					addedAt = time.Unix(ts, 0)
				}
			}

			entries = append(entries, model.VideoEntry{
				Title:   title,
				URL:     href,
				AddedAt: addedAt,
			})
			return // Don't recurse into A
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return entries, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
