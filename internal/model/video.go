package model

import "time"

// VideoEntry represents a saved video link with metadata.
type VideoEntry struct {
	Title   string    `json:"title"`
	URL     string    `json:"url"`
	AddedAt time.Time `json:"addedAt"`
}

// NewVideoEntryParams holds parameters for creating a new VideoEntry.
type NewVideoEntryParams struct {
	Title string
	URL   string
}

// NewVideoEntry creates a VideoEntry stamped with the current time.
func NewVideoEntry(params NewVideoEntryParams) VideoEntry {
	return VideoEntry{
		Title:   params.Title,
		URL:     params.URL,
		AddedAt: time.Now(),
	}
}
