// Package mailbody extracts plain text from HTML email bodies, used
// when an inbound message carries no text part.
package mailbody

import (
	"strings"

	"golang.org/x/net/html"
)

var skipTags = map[string]struct{}{
	"script": {},
	"style":  {},
	"head":   {},
	"title":  {},
}

// Text strips an HTML body down to its visible text, collapsing runs
// of whitespace. Unparseable input is returned unchanged.
func Text(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	var b strings.Builder
	collectText(doc, &b)

	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		if _, skip := skipTags[n.Data]; skip {
			return
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
