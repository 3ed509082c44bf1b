package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/hyperifyio/opensubs/internal/result"
)

const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// Entry is one printed result, optionally with its resolved download link.
type Entry struct {
	result.Item
	DownloadURL string `json:"downloadUrl,omitempty"`
}

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "":
		return DefaultFormat, nil
	case FormatJSON, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or table)", s)
	}
}

// Render writes entries to w in the given format.
func Render(w io.Writer, format string, entries []Entry) error {
	f, err := parseFormat(format)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []Entry{}
	}
	if f == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(entries)
	}
	renderTable(w, entries)
	return nil
}

func renderTable(w io.Writer, entries []Entry) {
	withDownload := false
	for _, e := range entries {
		if e.DownloadURL != "" {
			withDownload = true
			break
		}
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	header := table.Row{"#", "Title", "Season", "Episode", "Details"}
	if withDownload {
		header = append(header, "Download")
	}
	t.AppendHeader(header)
	for _, e := range entries {
		details, _ := e.Details()
		row := table.Row{e.Index, e.Title, optionalNumber(e.SeasonNumber()), optionalNumber(e.EpisodeNumber()), details}
		if withDownload {
			row = append(row, e.DownloadURL)
		}
		t.AppendRow(row)
	}
	t.Render()
}

func optionalNumber(n int, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.Itoa(n)
}
