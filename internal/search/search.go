package search

import (
	"github.com/nikbrunner/ytmark/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result represents a fuzzy search match.
type Result struct {
	Entry          *model.VideoEntry
	Index          int // absolute index into the full collection
	MatchedIndexes []int
	Score          int
}

// entryTitles implements fuzzy.Source for the collection.
type entryTitles []model.VideoEntry

func (et entryTitles) String(i int) string {
	return et[i].Title
}

func (et entryTitles) Len() int {
	return len(et)
}

// FuzzySearch searches all entry titles using fuzzy matching.
// Returns results sorted by match score (best first). Each result carries
// the absolute collection index so a hit can be deleted or opened directly.
func FuzzySearch(collection *model.Collection, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, entryTitles(collection.Entries))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Entry:          &collection.Entries[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
