package search

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/hyperifyio/opensubs/internal/fetch"
)

// FileFetcher serves one saved HTML page for offline/testing use, whatever
// URL is requested. The page address reported is URL, the address the page
// was saved from; left empty, single-item pages get no details URL.
type FileFetcher struct {
	Path string
	URL  string
}

func (f *FileFetcher) Get(_ context.Context, _ string) (*fetch.Page, error) {
	if strings.TrimSpace(f.Path) == "" {
		return nil, errors.New("file fetcher path is empty")
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	return &fetch.Page{URL: strings.TrimSpace(f.URL), ContentType: "text/html; charset=utf-8", Status: 200, Body: string(b)}, nil
}
