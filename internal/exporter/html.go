package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/ytmark/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/videos-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("videos-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the collection to Netscape bookmark HTML format,
// preserving the newest-first order.
func ExportHTML(collection *model.Collection) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Videos</TITLE>\n")
	b.WriteString("<H1>Videos</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, entry := range collection.Entries {
		fmt.Fprintf(&b,
			"    <DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
			html.EscapeString(entry.URL),
			entry.AddedAt.Unix(),
			html.EscapeString(entry.Title),
		)
	}

	b.WriteString("</DL><p>\n")

	return b.String()
}
