// Package result holds the records produced by the page extractors.
package result

import "fmt"

// Item is one subtitle entry found on a search or episode page.
//
// Absent values use sentinels: DetailsURL is "" and Season/Episode are 0.
// The accessor methods report presence explicitly.
type Item struct {
	// Index is the 1-based position within the batch it was extracted in.
	Index int    `json:"index"`
	Title string `json:"title"`
	// DetailsURL points at the item's own page, relative or absolute.
	DetailsURL string `json:"detailsUrl"`
	Season     int    `json:"season"`
	Episode    int    `json:"episode"`
}

// Details returns the details URL and whether the source row carried one.
func (it Item) Details() (string, bool) {
	return it.DetailsURL, it.DetailsURL != ""
}

// SeasonNumber returns the season and whether one was found.
func (it Item) SeasonNumber() (int, bool) {
	return it.Season, it.Season > 0
}

// EpisodeNumber returns the episode and whether one was found.
func (it Item) EpisodeNumber() (int, bool) {
	return it.Episode, it.Episode > 0
}

// IsEpisode reports whether the item is tagged with a season and an episode.
func (it Item) IsEpisode() bool {
	return it.Season > 0 && it.Episode > 0
}

// Batch is the ordered result of one extraction call, in document order.
type Batch []Item

// Valid checks that indexes run 1..n without gaps and that no season or
// episode is negative.
func (b Batch) Valid() error {
	for i, it := range b {
		if it.Index != i+1 {
			return fmt.Errorf("item %d: index %d, want %d", i, it.Index, i+1)
		}
		if it.Season < 0 || it.Episode < 0 {
			return fmt.Errorf("item %d: negative season/episode %d/%d", i, it.Season, it.Episode)
		}
	}
	return nil
}
