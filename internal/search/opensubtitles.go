package search

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/opensubs/internal/extract"
	"github.com/hyperifyio/opensubs/internal/fetch"
	"github.com/hyperifyio/opensubs/internal/result"
)

const (
	DefaultBaseURL = "https://www.opensubtitles.org"
	DefaultLocale  = "en"
)

// OpenSubtitles implements Provider against the opensubtitles.org website.
// A search either lands on a result listing or, for an exact hit, straight
// on the episode page; both are turned into a batch.
type OpenSubtitles struct {
	BaseURL string
	Locale  string
	Fetcher Fetcher
	Parser  extract.Parser
	Log     *zerolog.Logger
}

func (s *OpenSubtitles) Name() string { return "opensubtitles" }

func (s *OpenSubtitles) baseURL() string {
	u := strings.TrimSpace(s.BaseURL)
	if u == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(u, "/")
}

func (s *OpenSubtitles) locale() string {
	if l := strings.Trim(strings.TrimSpace(s.Locale), "/"); l != "" {
		return l
	}
	return DefaultLocale
}

func (s *OpenSubtitles) log() *zerolog.Logger {
	if s.Log == nil {
		l := zerolog.Nop()
		return &l
	}
	return s.Log
}

func (s *OpenSubtitles) parser() *extract.Parser {
	p := s.Parser
	if p.Log == nil {
		p.Log = s.Log
	}
	return &p
}

// Search fetches the search page for q and extracts its results.
func (s *OpenSubtitles) Search(ctx context.Context, q Query) (result.Batch, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	u := RequestURL(s.baseURL(), s.locale(), q)
	s.log().Info().Str("mask", q.Mask).Str("languages", q.Languages).Int("season", q.Season).Int("episode", q.Episode).Msg("search subtitles")
	s.log().Debug().Str("url", u).Msg("request url")

	_, batch, err := s.Page(ctx, u)
	return batch, err
}

// Page fetches any site page, a listing or a details page, and extracts its
// results. Relative addresses are taken against BaseURL.
func (s *OpenSubtitles) Page(ctx context.Context, pageURL string) (extract.PageType, result.Batch, error) {
	page, err := s.get(ctx, s.resolve(pageURL))
	if err != nil {
		return extract.SingleOption, nil, err
	}
	pt, batch, err := s.parser().Parse(page.Body, page.URL)
	if err != nil {
		return pt, nil, &Error{Stage: "parse", URL: page.URL, Err: err}
	}
	s.log().Info().Str("page_type", pt.String()).Int("count", len(batch)).Msg("search results")
	return pt, batch, nil
}

// SearchByMask searches by free text in the given languages.
func (s *OpenSubtitles) SearchByMask(ctx context.Context, mask, languages string) (result.Batch, error) {
	return s.Search(ctx, Query{Mask: mask, Languages: languages})
}

// SearchSeason searches a series restricted to one season.
func (s *OpenSubtitles) SearchSeason(ctx context.Context, title, languages string, season int) (result.Batch, error) {
	return s.Search(ctx, Query{Mask: title, Languages: languages, Season: season})
}

// SearchEpisode searches a single episode of a series.
func (s *OpenSubtitles) SearchEpisode(ctx context.Context, title, languages string, season, episode int) (result.Batch, error) {
	return s.Search(ctx, Query{Mask: title, Languages: languages, Season: season, Episode: episode})
}

// DownloadHref returns the subtitle download link of the page at pageURL as
// the site writes it, usually relative.
func (s *OpenSubtitles) DownloadHref(ctx context.Context, pageURL string) (string, error) {
	page, err := s.get(ctx, s.resolve(pageURL))
	if err != nil {
		return "", err
	}
	doc, err := extract.Load(page.Body)
	if err != nil {
		return "", &Error{Stage: "parse", URL: page.URL, Err: err}
	}
	href, err := extract.DownloadHref(doc)
	if err != nil {
		s.log().Error().Err(err).Str("url", page.URL).Msg("unable to parse subtitle download url")
		return "", &Error{Stage: "parse", URL: page.URL, Err: err}
	}
	return href, nil
}

// DownloadURL is DownloadHref made absolute on the site's base URL.
func (s *OpenSubtitles) DownloadURL(ctx context.Context, pageURL string) (string, error) {
	href, err := s.DownloadHref(ctx, pageURL)
	if err != nil {
		return "", err
	}
	return extract.JoinURL(s.baseURL(), href), nil
}

// resolve makes a details URL taken from a listing absolute. A blank address
// stays blank so that it never turns into the site root.
func (s *OpenSubtitles) resolve(pageURL string) string {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return ""
	}
	return extract.JoinURL(s.baseURL(), pageURL)
}

func (s *OpenSubtitles) get(ctx context.Context, u string) (*fetch.Page, error) {
	if s.Fetcher == nil {
		return nil, errors.New("opensubtitles: no fetcher configured")
	}
	page, err := s.Fetcher.Get(ctx, u)
	if err != nil {
		s.log().Error().Err(err).Str("url", u).Msg("request failed")
		return nil, &Error{Stage: "fetch", URL: u, Err: err}
	}
	s.log().Trace().Str("url", page.URL).Str("body", page.Body).Msg("response")
	return page, nil
}
