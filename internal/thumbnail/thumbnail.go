// Package thumbnail resolves a displayable preview image for a video by
// probing a fixed cascade of quality variants, highest resolution first.
// Not every video has every variant, so a failed probe downgrades to the
// next quality instead of failing the entry.
package thumbnail

import "fmt"

// Quality names one image-resolution variant hosted per video.
type Quality string

const (
	MaxRes  Quality = "maxresdefault"
	High    Quality = "hqdefault"
	Medium  Quality = "mqdefault"
	Default Quality = "default"
)

// Qualities is the cascade order: highest resolution first.
var Qualities = []Quality{MaxRes, High, Medium, Default}

// URL returns the image location for a video id at the given quality.
func URL(id string, q Quality) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/%s.jpg", id, q)
}
