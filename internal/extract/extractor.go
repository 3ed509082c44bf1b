package extract

import (
    "fmt"
    "strings"

    "github.com/PuerkitoBio/goquery"
)

// RowShape names the listing table layout to expect. The site has served two
// templates over time; Auto tries the class-filtered one first and falls
// back to the positional one when it yields nothing.
type RowShape int

const (
    RowShapeAuto RowShape = iota
    RowShapeClassFiltered
    RowShapePositional
)

func (s RowShape) String() string {
    switch s {
    case RowShapeClassFiltered:
        return "class"
    case RowShapePositional:
        return "positional"
    default:
        return "auto"
    }
}

// ParseRowShape maps a config value ("auto", "class", "positional") to a RowShape.
func ParseRowShape(s string) (RowShape, error) {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "", "auto":
        return RowShapeAuto, nil
    case "class", "class-filtered":
        return RowShapeClassFiltered, nil
    case "positional", "position":
        return RowShapePositional, nil
    }
    return RowShapeAuto, fmt.Errorf("unknown row shape %q", s)
}

// Row is what a RowExtractor reads from one table row before numbering.
type Row struct {
    Title      string
    DetailsURL string
    // Series is the text scanned for the "[SxxEyy]" tag.
    Series string
}

// RowExtractor reads one listing template. Implementations must be pure:
// the same row always gives the same answer.
type RowExtractor interface {
    // Rows selects candidate rows from the table body in document order.
    Rows(body *goquery.Selection) *goquery.Selection
    // Extract returns ok=false for rows without a usable title cell; those
    // are skipped silently. An error marks a malformed row, which is logged
    // and skipped.
    Extract(row *goquery.Selection) (r Row, ok bool, err error)
}

// ClassFilteredRows reads rows tagged class="change". The title cell is the
// first cell holding a link.
type ClassFilteredRows struct{}

func (ClassFilteredRows) Rows(body *goquery.Selection) *goquery.Selection {
    return body.Find("tr.change")
}

func (ClassFilteredRows) Extract(row *goquery.Selection) (Row, bool, error) {
    cell := row.ChildrenFiltered("td").Has("a").First()
    if cell.Length() == 0 {
        return Row{}, false, nil
    }
    text, err := innerText(cell)
    if err != nil {
        return Row{}, false, err
    }
    if !usable(text) {
        return Row{}, false, nil
    }
    a := cell.Find("a").First()
    title := firstText(a)
    if title == "" {
        return Row{}, false, fmt.Errorf("title link has no text")
    }
    href, _ := a.Attr("href")
    return Row{Title: title, DetailsURL: strings.TrimSpace(href), Series: text}, true, nil
}

// PositionalRows reads every row and takes the second cell as the title
// cell. Its text lines are title, "(year)" and the episode tag.
type PositionalRows struct{}

func (PositionalRows) Rows(body *goquery.Selection) *goquery.Selection {
    return body.Find("tr")
}

func (PositionalRows) Extract(row *goquery.Selection) (Row, bool, error) {
    cell := row.ChildrenFiltered("td").Eq(1)
    if cell.Length() == 0 {
        return Row{}, false, nil
    }
    text, err := innerText(cell)
    if err != nil {
        return Row{}, false, err
    }
    if !usable(text) {
        return Row{}, false, nil
    }
    parts := lines(text)
    r := Row{Title: parts[0]}
    if len(parts) > 1 {
        year := parts[1]
        if m := yearPattern.FindStringSubmatch(year); m != nil {
            year = m[1]
        }
        r.Title = r.Title + " (" + year + ")"
    }
    if len(parts) > 2 {
        r.Series = parts[2]
    }
    if href, ok := cell.Find("a").First().Attr("href"); ok {
        r.DetailsURL = strings.TrimSpace(href)
    }
    return r, true, nil
}

// usable rejects cells whose text is blank or a single character.
func usable(text string) bool {
    return len([]rune(strings.TrimSpace(text))) > 1
}

// lines splits text on newlines, trimming each line and dropping blank ones.
func lines(text string) []string {
    raw := strings.Split(text, "\n")
    out := make([]string, 0, len(raw))
    for _, l := range raw {
        if l = strings.TrimSpace(l); l != "" {
            out = append(out, l)
        }
    }
    return out
}
