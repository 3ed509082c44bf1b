package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/opensubs/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		mask       string
		languages  string
		season     int
		episode    int
		pageURL    string
		htmlPath   string
		rowShape   string
		format     string
		outputPath string
		download   bool
		user       string
		password   string
		baseURL    string
		locale     string
		userAgent  string
		timeout    time.Duration
		charset    string
		configPath string
		envFiles   string
		verbose    bool
	)

	flag.StringVar(&mask, "q", "", "Search mask: movie or series title")
	flag.StringVar(&languages, "langs", "", "Comma-separated subtitle language ids, e.g. 'rus,eng' (env OPENSUBS_LANGS)")
	flag.IntVar(&season, "season", 0, "Series season (0 = any)")
	flag.IntVar(&episode, "episode", 0, "Series episode (0 = any); requires -season")
	flag.StringVar(&pageURL, "page", "", "Parse this site page (listing or details) instead of searching")
	flag.StringVar(&htmlPath, "html", "", "Parse a saved HTML page offline; -page sets its address")
	flag.StringVar(&rowShape, "rows", "", "Listing row shape: auto, class or positional")
	flag.StringVar(&format, "format", "", "Output format: table or json (env OPENSUBS_FORMAT)")
	flag.StringVar(&outputPath, "o", "", "Write results to this file instead of stdout")
	flag.BoolVar(&download, "download", false, "Resolve the download link of every result")
	flag.StringVar(&user, "user", "", "Account name; login is skipped when empty (env OPENSUBS_USER)")
	flag.StringVar(&password, "password", "", "Account password (env OPENSUBS_PASSWORD)")
	flag.StringVar(&baseURL, "base", "", "Site base URL (env OPENSUBS_BASE_URL)")
	flag.StringVar(&locale, "locale", "", "Site locale path segment, e.g. 'en' (env OPENSUBS_LOCALE)")
	flag.StringVar(&userAgent, "ua", "", "User-Agent header (env OPENSUBS_USER_AGENT)")
	flag.DurationVar(&timeout, "timeout", 0, "Per-request timeout (env OPENSUBS_TIMEOUT)")
	flag.StringVar(&charset, "charset", "", "Force the page encoding, e.g. 'windows-1251'")
	flag.StringVar(&configPath, "config", "", "YAML or JSON config file")
	flag.StringVar(&envFiles, "env", ".env", "Comma-separated dotenv files; later files win, missing ones are skipped")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.LoadEnvFiles(splitList(envFiles)...); err != nil {
		log.Error().Err(err).Msg("load env files")
		os.Exit(1)
	}

	cfg := app.Config{
		BaseURL:    baseURL,
		Locale:     locale,
		UserAgent:  userAgent,
		Timeout:    timeout,
		Charset:    charset,
		User:       user,
		Password:   password,
		Mask:       mask,
		Languages:  languages,
		Season:     season,
		Episode:    episode,
		PageURL:    pageURL,
		HTMLPath:   htmlPath,
		RowShape:   rowShape,
		Format:     format,
		OutputPath: outputPath,
		Download:   download,
		Verbose:    verbose,
	}
	if len(flag.Args()) > 0 && cfg.Mask == "" {
		cfg.Mask = strings.Join(flag.Args(), " ")
	}

	if err := resolveConfig(&cfg, configPath); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(exitCode(err))
	}
}

// resolveConfig fills what flags left unset, first from the environment and
// then from the config file, and validates the result.
func resolveConfig(cfg *app.Config, configPath string) error {
	app.ApplyEnvToConfig(cfg)
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
		app.ApplyFileConfig(cfg, fc)
	}
	return app.ValidateConfig(*cfg)
}

// exitCode maps an empty search to 2 so scripts can tell it from a failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrNoResults):
		return 2
	default:
		return 1
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			list = append(list, v)
		}
	}
	return list
}

func run(cfg app.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
