// Package parsing provides the pure field-inference utilities shared by the
// source adapters: HTML stripping, seniority/category/employment inference,
// relative-date and salary formatting, and requirement/benefit extraction.
package parsing

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const excerptLength = 500

var (
	horizontalSpaceRe = regexp.MustCompile(`[ \t]+`)
	blankLinesRe      = regexp.MustCompile(`\n{3,}`)
	spaceAfterNLRe    = regexp.MustCompile(`\n `)
	spaceBeforeNLRe   = regexp.MustCompile(` \n`)
)

// StripHTML converts upstream HTML job descriptions into plain text.
// Block-level elements (paragraphs, list items, headings, divs, line breaks)
// become newlines, entities are decoded, horizontal whitespace runs collapse
// to single spaces, and runs of blank lines collapse to at most one.
func StripHTML(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		// The html parser accepts virtually anything; on the off chance it
		// does not, the raw text minus whitespace noise is still usable.
		return cleanWhitespace(raw)
	}

	doc.Find("script, style").Remove()

	var sb strings.Builder
	for _, node := range doc.Selection.Nodes {
		renderText(&sb, node)
	}
	return cleanWhitespace(sb.String())
}

// renderText walks the parsed tree appending text content, inserting
// newlines after block-level elements the way the upstream descriptions
// expect to be read.
func renderText(sb *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}

	if n.Type == html.ElementNode && n.Data == "br" {
		sb.WriteString("\n")
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderText(sb, c)
	}

	if n.Type != html.ElementNode {
		return
	}
	switch n.Data {
	case "p", "h1", "h2", "h3", "h4", "h5", "h6":
		sb.WriteString("\n\n")
	case "li", "div":
		sb.WriteString("\n")
	}
}

func cleanWhitespace(text string) string {
	// The parser decodes &nbsp; to U+00A0, which must collapse like a space.
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = horizontalSpaceRe.ReplaceAllString(text, " ")
	text = spaceAfterNLRe.ReplaceAllString(text, "\n")
	text = spaceBeforeNLRe.ReplaceAllString(text, "\n")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Excerpt returns the bounded list-view prefix of a stripped description.
// The ellipsis marker is always appended; detail views carry the full text.
func Excerpt(text string) string {
	runes := []rune(text)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return string(runes) + "..."
}
