package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/opensubs/internal/auth"
	"github.com/hyperifyio/opensubs/internal/extract"
	"github.com/hyperifyio/opensubs/internal/fetch"
	"github.com/hyperifyio/opensubs/internal/result"
	"github.com/hyperifyio/opensubs/internal/search"
)

// ErrNoResults is returned when the search produced an empty batch. The CLI
// maps it to a non-zero exit code.
var ErrNoResults = errors.New("no results")

type App struct {
	cfg      Config
	log      zerolog.Logger
	client   *fetch.Client
	provider *search.OpenSubtitles
	offline  bool
}

func New(ctx context.Context, cfg Config) (*App, error) {
	shape, err := extract.ParseRowShape(cfg.RowShape)
	if err != nil {
		return nil, err
	}
	if _, err := parseFormat(cfg.Format); err != nil {
		return nil, err
	}

	a := &App{
		cfg: cfg,
		log: log.Logger.With().Str("run_id", uuid.NewString()).Logger(),
	}

	var fetcher search.Fetcher
	if strings.TrimSpace(cfg.HTMLPath) != "" {
		fetcher = &search.FileFetcher{Path: cfg.HTMLPath, URL: cfg.PageURL}
		a.offline = true
	} else {
		hc, err := newSessionHTTPClient(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("http client: %w", err)
		}
		ua := cfg.UserAgent
		if strings.TrimSpace(ua) == "" {
			ua = DefaultUserAgent
		}
		a.client = &fetch.Client{HTTPClient: hc, UserAgent: ua, PerRequestTimeout: cfg.Timeout, Charset: cfg.Charset}
		fetcher = a.client
	}

	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = search.DefaultBaseURL
	}
	locale := strings.TrimSpace(cfg.Locale)
	if locale == "" {
		locale = search.DefaultLocale
	}
	a.provider = &search.OpenSubtitles{
		BaseURL: base,
		Locale:  locale,
		Fetcher: fetcher,
		Parser:  extract.Parser{Log: &a.log, Rows: shape},
		Log:     &a.log,
	}
	a.log.Debug().Str("base", base).Str("locale", locale).Str("rows", shape.String()).Bool("offline", a.offline).Msg("app configured")
	return a, nil
}

func (a *App) Close() {
	if a.client != nil && a.client.HTTPClient != nil {
		a.client.HTTPClient.CloseIdleConnections()
	}
}

func (a *App) Run(ctx context.Context) error {
	if err := a.login(ctx); err != nil {
		return err
	}
	batch, err := a.results(ctx)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		a.log.Warn().Str("mask", a.cfg.Mask).Msg("search returned no results")
		return ErrNoResults
	}
	entries, err := a.entries(ctx, batch)
	if err != nil {
		return err
	}
	return a.write(entries)
}

func (a *App) login(ctx context.Context) error {
	if a.offline || strings.TrimSpace(a.cfg.User) == "" {
		return nil
	}
	return auth.Login(ctx, a.client, a.provider.BaseURL, a.provider.Locale, a.cfg.User, a.cfg.Password, &a.log)
}

func (a *App) results(ctx context.Context) (result.Batch, error) {
	if a.cfg.PageURL != "" || (a.offline && strings.TrimSpace(a.cfg.Mask) == "") {
		_, batch, err := a.provider.Page(ctx, a.cfg.PageURL)
		return batch, err
	}
	return a.provider.Search(ctx, search.Query{
		Mask:      a.cfg.Mask,
		Languages: a.cfg.Languages,
		Season:    a.cfg.Season,
		Episode:   a.cfg.Episode,
	})
}

// entries resolves download links one result at a time when asked to. A
// result whose link cannot be resolved is still printed.
func (a *App) entries(ctx context.Context, batch result.Batch) ([]Entry, error) {
	out := make([]Entry, 0, len(batch))
	for _, it := range batch {
		e := Entry{Item: it}
		if details, ok := it.Details(); ok && a.cfg.Download {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			u, err := a.provider.DownloadURL(ctx, details)
			if err != nil {
				a.log.Warn().Err(err).Int("index", it.Index).Str("details", details).Msg("download link not resolved")
			} else {
				e.DownloadURL = u
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func (a *App) write(entries []Entry) error {
	var w io.Writer = os.Stdout
	if p := strings.TrimSpace(a.cfg.OutputPath); p != "" {
		f, err := os.Create(p)
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := Render(w, a.cfg.Format, entries); err != nil {
		return fmt.Errorf("render output: %w", err)
	}
	a.log.Info().Int("count", len(entries)).Str("out", a.cfg.OutputPath).Msg("wrote results")
	return nil
}
