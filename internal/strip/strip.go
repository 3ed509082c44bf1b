// Package strip removes markup from short HTML fragments such as table cells
// and headings. It is a best-effort tag stripper, not an HTML-to-text renderer.
package strip

import (
	"html"
	"regexp"
	"strings"
)

var (
	// Attribute scan stops at the first '>', so a quoted attribute value that
	// itself contains '>' is cut short.
	openTag  = regexp.MustCompile(`<\s*\w[^>]*>`)
	closeTag = regexp.MustCompile(`</[\w+]+>`)

	nbsp = strings.NewReplacer(
		"&nbsp;", " ",
		"&#160;", " ",
		"&#xa0;", " ",
		"&#xA0;", " ",
		"\u00a0", " ",
	)
)

// Tags removes opening and closing tags from fragment and turns non-breaking
// spaces (entity or literal) into plain spaces.
//
// Removing a tag can splice together the pieces of a new one ("<<b>b>"), so
// the passes repeat until nothing changes. Every pass only shortens the
// string, which bounds the loop and makes Tags idempotent.
func Tags(fragment string) string {
	s := fragment
	for {
		next := pass(s)
		if next == s {
			return s
		}
		s = next
	}
}

func pass(s string) string {
	s = openTag.ReplaceAllLiteralString(s, "")
	s = closeTag.ReplaceAllLiteralString(s, "")
	return nbsp.Replace(s)
}

// Text is Tags followed by entity decoding, for fragments taken from rendered
// markup where '&' and friends come back escaped. Unlike Tags it is not
// idempotent on text that contains literal entity sequences.
func Text(fragment string) string {
	s := html.UnescapeString(Tags(fragment))
	return nbsp.Replace(s)
}
