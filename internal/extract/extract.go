package extract

import (
    "errors"
    "fmt"
    "regexp"
    "strconv"
    "strings"

    "github.com/PuerkitoBio/goquery"
    "github.com/rs/zerolog"
    "golang.org/x/net/html"

    "github.com/hyperifyio/opensubs/internal/result"
    "github.com/hyperifyio/opensubs/internal/strip"
)

// ErrHTMLParse is returned when a document lacks an element that extraction
// requires. Callers match it with errors.Is; the wrapped message names the
// missing piece.
var ErrHTMLParse = errors.New("html parse error")

var (
    // Listing cells carry the episode tag in brackets: "[S01E08]".
    bracketSeriesPattern = regexp.MustCompile(`\[S(\d{1,2})E(\d{1,2})\]`)
    // Episode page headings carry it bare: "... S10E04".
    seriesPattern = regexp.MustCompile(`S(\d{1,2})E(\d{1,2})`)
    yearPattern   = regexp.MustCompile(`\((\d{4})\)`)
)

// Parser turns fetched subtitle pages into result batches. The zero value is
// ready to use: it logs nowhere and picks the row shape automatically.
type Parser struct {
    // Log receives diagnostics (page type, skipped rows, bad numbers).
    // Nil disables logging; results never depend on it.
    Log *zerolog.Logger
    // Rows selects how listing table rows are read.
    Rows RowShape
}

var nopLogger = zerolog.Nop()

func (p *Parser) log() *zerolog.Logger {
    if p == nil || p.Log == nil {
        return &nopLogger
    }
    return p.Log
}

// Load parses raw HTML once so it can be classified and extracted without
// re-parsing.
func Load(input string) (*goquery.Document, error) {
    doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
    if err != nil {
        return nil, fmt.Errorf("%w: %v", ErrHTMLParse, err)
    }
    return doc, nil
}

// Parse classifies input and runs the matching extractor. pageURL is the
// address the document was fetched from; single-item pages use it as the
// details URL of their only result.
func (p *Parser) Parse(input string, pageURL string) (PageType, result.Batch, error) {
    doc, err := Load(input)
    if err != nil {
        return SingleOption, nil, err
    }
    pt := p.Classify(doc)
    var batch result.Batch
    switch pt {
    case MultipleOptions:
        batch, err = p.Listing(doc)
    default:
        batch, err = p.EpisodePage(doc, pageURL)
    }
    return pt, batch, err
}

// innerText returns the stripped, entity-decoded text of the first node in sel.
func innerText(sel *goquery.Selection) (string, error) {
    inner, err := sel.Html()
    if err != nil {
        return "", fmt.Errorf("render cell: %w", err)
    }
    return strip.Text(inner), nil
}

// firstText returns the first non-blank text node below sel's first element,
// with line breaks turned into spaces.
func firstText(sel *goquery.Selection) string {
    if sel.Length() == 0 {
        return ""
    }
    var res string
    var dfs func(*html.Node) bool
    dfs = func(n *html.Node) bool {
        if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
            res = n.Data
            return true
        }
        for c := n.FirstChild; c != nil; c = c.NextSibling {
            if dfs(c) {
                return true
            }
        }
        return false
    }
    dfs(sel.Nodes[0])
    res = strings.ReplaceAll(res, "\r\n", " ")
    res = strings.ReplaceAll(res, "\n", " ")
    return strings.TrimSpace(strings.ReplaceAll(res, "\u00a0", " "))
}

// seriesNumbers applies pattern to text and returns season and episode. A
// missing tag yields 0/0; an unparsable capture is logged and yields 0.
func (p *Parser) seriesNumbers(pattern *regexp.Regexp, text string) (int, int) {
    m := pattern.FindStringSubmatch(text)
    if m == nil {
        return 0, 0
    }
    return p.number("season", m[1]), p.number("episode", m[2])
}

func (p *Parser) number(field, raw string) int {
    n, err := strconv.Atoi(raw)
    if err != nil || n < 0 {
        p.log().Warn().Err(err).Str("field", field).Str("value", raw).Msg("unable to parse number; using 0")
        return 0
    }
    return n
}
