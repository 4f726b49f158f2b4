// Package sanitize cleans user-authored rich text (chat messages, stories,
// resource bodies) before it is handed to a browser.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richText = newRichTextPolicy()
	strict   = bluemonday.StrictPolicy()

	doubleStar = regexp.MustCompile(`\*\*(.*?)\*\*`)
	singleStar = regexp.MustCompile(`\*(.*?)\*`)
)

func newRichTextPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "ul", "ol", "li", "blockquote", "pre", "code",
		"strong", "em", "u", "s", "h1", "h2", "h3", "span",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)
	// Editor alignment/indent classes
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("p", "li", "span")
	return p
}

// RichText keeps the formatting the message editor produces and strips the rest
func RichText(html string) string {
	return richText.Sanitize(html)
}

// PlainText removes all markup
func PlainText(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// IsBlank reports whether rich text has no visible content, e.g. "<p><br></p>"
func IsBlank(html string) bool {
	return PlainText(html) == ""
}

// Emphasis turns the **bold** and *bold* markers job listings arrive with
// into <strong> elements. The result is not sanitized.
func Emphasis(text string) string {
	if text == "" {
		return ""
	}
	text = doubleStar.ReplaceAllString(text, "<strong>$1</strong>")
	return singleStar.ReplaceAllString(text, "<strong>$1</strong>")
}

// JobText renders a job description: emphasis markers become <strong>, then
// the rich text policy applies.
func JobText(text string) string {
	return RichText(Emphasis(text))
}
