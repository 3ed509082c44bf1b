package extract

import (
    "github.com/PuerkitoBio/goquery"
)

// PageType tells which extractor a fetched page needs.
type PageType int

const (
    // SingleOption is a page about one movie or episode. Anything without a
    // results table is treated as one.
    SingleOption PageType = iota
    // MultipleOptions is a search listing with a results table.
    MultipleOptions
)

func (t PageType) String() string {
    if t == MultipleOptions {
        return "multiple options"
    }
    return "single option"
}

const resultsTableSelector = "#search_results"

// Classify reports MultipleOptions when doc has the results table. A missing
// table is an ordinary outcome, not an error.
func (p *Parser) Classify(doc *goquery.Document) PageType {
    pt := SingleOption
    if doc != nil && doc.Find(resultsTableSelector).Length() > 0 {
        pt = MultipleOptions
    }
    p.log().Info().Str("page_type", pt.String()).Msg("page classified")
    return pt
}

// Classify is Parser.Classify without diagnostics.
func Classify(doc *goquery.Document) PageType {
    var p Parser
    return p.Classify(doc)
}

// ClassifyHTML parses input and classifies it. Unparsable input counts as a
// single-item page.
func ClassifyHTML(input string) PageType {
    doc, err := Load(input)
    if err != nil {
        return SingleOption
    }
    return Classify(doc)
}
