package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hyperifyio/opensubs/internal/fetch"
	"github.com/hyperifyio/opensubs/internal/result"
)

// Query is one subtitle search. Season and Episode of 0 mean "any".
type Query struct {
	Mask string
	// Languages is a comma separated list of site language ids, e.g. "rus,eng".
	Languages string
	Season    int
	Episode   int
}

// Validate rejects queries the site cannot answer meaningfully.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Mask) == "" {
		return fmt.Errorf("search mask is empty")
	}
	if q.Season < 0 || q.Episode < 0 {
		return fmt.Errorf("season/episode must not be negative")
	}
	if q.Episode > 0 && q.Season == 0 {
		return fmt.Errorf("episode %d given without a season", q.Episode)
	}
	return nil
}

// Provider is a subtitle site that can answer a Query.
type Provider interface {
	Search(ctx context.Context, q Query) (result.Batch, error)
	Name() string
}

// Fetcher returns the page found at url.
type Fetcher interface {
	Get(ctx context.Context, url string) (*fetch.Page, error)
}

// Error records which stage of a request failed and for which URL.
type Error struct {
	Stage string // "fetch" or "parse"
	URL   string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("stage=%s url=%s: %v", e.Stage, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// RequestURL builds the search page address for q on the site at base.
func RequestURL(base, locale string, q Query) string {
	v := url.Values{}
	v.Set("MovieName", strings.TrimSpace(q.Mask))
	v.Set("id", "8")
	v.Set("action", "search")
	v.Set("SubLanguageID", strings.TrimSpace(q.Languages))
	v.Set("Season", numberParam(q.Season))
	v.Set("Episode", numberParam(q.Episode))
	return strings.TrimRight(base, "/") + "/" + locale + "/search2?" + v.Encode()
}

func numberParam(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
