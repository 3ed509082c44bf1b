package extract

import (
    "fmt"
    "strings"

    "github.com/PuerkitoBio/goquery"

    "github.com/hyperifyio/opensubs/internal/result"
)

const downloadSelector = "a.bt-dwl.external"

// EpisodePage extracts the single result of an episode or movie page. Its
// details URL is sourceURL, since the page does not link to itself. The
// batch always holds exactly one item unless an error is returned.
func (p *Parser) EpisodePage(doc *goquery.Document, sourceURL string) (result.Batch, error) {
    if doc == nil {
        return nil, fmt.Errorf("%w: no document", ErrHTMLParse)
    }
    h1 := doc.Find("h1").First()
    if h1.Length() == 0 {
        p.log().Error().Msg("unable to parse episode page, unsupported html")
        return nil, fmt.Errorf("%w: page heading not found", ErrHTMLParse)
    }
    text, err := innerText(h1)
    if err != nil {
        return nil, fmt.Errorf("%w: %v", ErrHTMLParse, err)
    }
    title := strings.TrimSpace(strings.ReplaceAll(text, " subtitles ", " "))
    season, episode := p.seriesNumbers(seriesPattern, title)
    p.log().Debug().Str("title", title).Int("season", season).Int("episode", episode).Msg("episode page")

    return result.Batch{{
        Index:      1,
        Title:      title,
        DetailsURL: sourceURL,
        Season:     season,
        Episode:    episode,
    }}, nil
}

// DownloadHref returns the target of the page's external download button as
// written in the markup, usually a site-relative path.
func DownloadHref(doc *goquery.Document) (string, error) {
    if doc == nil {
        return "", fmt.Errorf("%w: no document", ErrHTMLParse)
    }
    a := doc.Find(downloadSelector).First()
    if a.Length() == 0 {
        return "", fmt.Errorf("%w: download link not found", ErrHTMLParse)
    }
    href, ok := a.Attr("href")
    if !ok {
        return "", fmt.Errorf("%w: download link has no href", ErrHTMLParse)
    }
    href = strings.TrimSpace(href)
    if href == "" {
        return "", fmt.Errorf("%w: download link has empty href", ErrHTMLParse)
    }
    return href, nil
}

// DownloadURL is DownloadHref joined onto baseURL. Absolute targets are
// returned unchanged.
func DownloadURL(doc *goquery.Document, baseURL string) (string, error) {
    href, err := DownloadHref(doc)
    if err != nil {
        return "", err
    }
    return JoinURL(baseURL, href), nil
}

// JoinURL appends a site-relative href to baseURL with exactly one slash
// between them.
func JoinURL(baseURL, href string) string {
    if isAbsolute(href) {
        return href
    }
    if !strings.HasPrefix(href, "/") {
        href = "/" + href
    }
    return strings.TrimRight(baseURL, "/") + href
}

func isAbsolute(href string) bool {
    l := strings.ToLower(href)
    return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://") || strings.HasPrefix(l, "//")
}
