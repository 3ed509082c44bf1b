package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apppkg "github.com/hyperifyio/opensubs/internal/app"
	"github.com/hyperifyio/opensubs/internal/auth"
)

const savedListing = `<html><body><table id="search_results"><tbody>
<tr class="change"><td><a href="/en/subtitles/7863206/adventure-time">"Adventure Time" Bonnibel Bubblegum (2017)</a> [S10E04]</td></tr>
</tbody></table></body></html>`

// Smoke test: run parses a saved page offline and writes the results.
func TestRun_Offline_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "listing.html")
	out := filepath.Join(dir, "out.json")
	if err := os.WriteFile(in, []byte(savedListing), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cfg := apppkg.Config{
		HTMLPath:   in,
		Format:     "json",
		OutputPath: out,
	}
	if err := run(cfg); err != nil {
		t.Fatalf("run error: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil || len(b) == 0 {
		t.Fatalf("expected output file, err=%v", err)
	}
	if !strings.Contains(string(b), `"season": 10`) {
		t.Fatalf("unexpected output: %s", b)
	}
}

// Ensures an empty search is surfaced as ErrNoResults and exit code 2.
func TestRun_NoResults_Error(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "empty.html")
	if err := os.WriteFile(in, []byte(`<div id="search_results"><table><tbody></tbody></table></div>`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	err := run(apppkg.Config{HTMLPath: in, OutputPath: filepath.Join(dir, "out.txt")})
	if !errors.Is(err, apppkg.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
	if exitCode(err) != 2 {
		t.Fatalf("exit code %d, want 2", exitCode(err))
	}
}

func TestExitCode(t *testing.T) {
	if exitCode(nil) != 0 {
		t.Fatalf("nil error must exit 0")
	}
	if exitCode(fmt.Errorf("login: %w", auth.ErrAuthentication)) != 1 {
		t.Fatalf("authentication failure must exit 1")
	}
	if exitCode(fmt.Errorf("wrapped: %w", apppkg.ErrNoResults)) != 2 {
		t.Fatalf("wrapped ErrNoResults must exit 2")
	}
}

// Flags beat env, env beats the config file.
func TestResolveConfig_Precedence(t *testing.T) {
	t.Setenv("OPENSUBS_LOCALE", "ru")
	t.Setenv("OPENSUBS_LANGS", "")
	t.Setenv("OPENSUBS_FORMAT", "")
	t.Setenv("OPENSUBS_TIMEOUT", "")
	t.Setenv("OPENSUBS_USER_AGENT", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "opensubs.yaml")
	content := "site:\n  locale: de\n  timeout: 5s\n  userAgent: file-ua\nlanguages: eng\noutput:\n  format: json\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := apppkg.Config{Mask: "Show", Format: "table", Timeout: 30 * time.Second, UserAgent: apppkg.DefaultUserAgent}
	if err := resolveConfig(&cfg, path); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Format != "table" || cfg.Timeout != 30*time.Second || cfg.UserAgent != apppkg.DefaultUserAgent {
		t.Fatalf("flag values overridden by file: %+v", cfg)
	}
	if cfg.Locale != "ru" {
		t.Fatalf("Locale=%q, want env value ru", cfg.Locale)
	}
	if cfg.Languages != "eng" {
		t.Fatalf("Languages=%q, want file value eng", cfg.Languages)
	}

	if err := resolveConfig(&apppkg.Config{}, ""); err == nil {
		t.Fatalf("expected validation error without a mask")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" .env, ,.env.local ")
	if len(got) != 2 || got[0] != ".env" || got[1] != ".env.local" {
		t.Fatalf("splitList=%q", got)
	}
}
