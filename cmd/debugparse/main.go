package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/opensubs/internal/extract"
)

// debugparse classifies and extracts a saved site page:
//
//	debugparse page.html [page-url] [auto|class|positional]
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: debugparse page.html [page-url] [row-shape]")
		os.Exit(1)
	}
	b, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "read:", err)
		os.Exit(1)
	}
	pageURL := ""
	if len(os.Args) > 2 { pageURL = os.Args[2] }
	shape := extract.RowShapeAuto
	if len(os.Args) > 3 {
		if shape, err = extract.ParseRowShape(os.Args[3]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)
	p := &extract.Parser{Log: &logger, Rows: shape}
	pt, batch, err := p.Parse(string(b), pageURL)
	fmt.Println("page:", pt)
	fmt.Println("err:", err)
	for _, it := range batch {
		fmt.Printf("%d. %s [S%02dE%02d] %s\n", it.Index, it.Title, it.Season, it.Episode, it.DetailsURL)
	}
	if doc, err := extract.Load(string(b)); err == nil {
		if href, err := extract.DownloadHref(doc); err == nil {
			fmt.Println("download:", href)
		}
	}
}
