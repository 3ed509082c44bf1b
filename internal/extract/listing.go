package extract

import (
    "fmt"

    "github.com/PuerkitoBio/goquery"

    "github.com/hyperifyio/opensubs/internal/result"
)

// Listing extracts the rows of a search results table.
//
// A document without the results table or its body is malformed and yields
// ErrHTMLParse. Rows that cannot be read are logged and skipped; they never
// cost the rest of the batch. An empty table gives an empty batch.
func (p *Parser) Listing(doc *goquery.Document) (result.Batch, error) {
    body, err := resultsBody(doc)
    if err != nil {
        p.log().Error().Err(err).Msg("unsupported listing html")
        return nil, err
    }

    switch p.Rows {
    case RowShapeClassFiltered:
        return p.collect(body, ClassFilteredRows{}), nil
    case RowShapePositional:
        return p.collect(body, PositionalRows{}), nil
    }

    // The template is decided by which rows exist, not by what they yield:
    // skipped class rows must not be re-read as positional ones.
    if (ClassFilteredRows{}).Rows(body).Length() > 0 {
        return p.collect(body, ClassFilteredRows{}), nil
    }
    p.log().Debug().Msg("no class-filtered rows; reading rows positionally")
    return p.collect(body, PositionalRows{}), nil
}

func resultsBody(doc *goquery.Document) (*goquery.Selection, error) {
    if doc == nil {
        return nil, fmt.Errorf("%w: no document", ErrHTMLParse)
    }
    table := doc.Find(resultsTableSelector).First()
    if table.Length() == 0 {
        return nil, fmt.Errorf("%w: results table not found", ErrHTMLParse)
    }
    body := table.Find("tbody").First()
    if body.Length() == 0 {
        return nil, fmt.Errorf("%w: results table has no body", ErrHTMLParse)
    }
    return body, nil
}

// collect runs ext over every candidate row. Indexes are handed out only to
// emitted items, so skipped rows leave no gaps.
func (p *Parser) collect(body *goquery.Selection, ext RowExtractor) result.Batch {
    batch := result.Batch{}
    ext.Rows(body).Each(func(i int, row *goquery.Selection) {
        r, ok, err := ext.Extract(row)
        if err != nil {
            p.log().Warn().Err(err).Int("row", i+1).Msg("unable to extract search result from row; skipping")
            return
        }
        if !ok {
            return
        }
        season, episode := p.seriesNumbers(bracketSeriesPattern, r.Series)
        item := result.Item{
            Index:      len(batch) + 1,
            Title:      r.Title,
            DetailsURL: r.DetailsURL,
            Season:     season,
            Episode:    episode,
        }
        p.log().Debug().Int("index", item.Index).Str("title", item.Title).Int("season", season).Int("episode", episode).Msg("listing row")
        batch = append(batch, item)
    })
    return batch
}
