package filter

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markdownLinkRegex = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	whitespaceRegex   = regexp.MustCompile(`\s+`)

	strictPolicy = bluemonday.StrictPolicy()
)

// Sanitize turns fixture text into plain text: HTML tags are dropped,
// markdown links collapse to their label and runs of whitespace to one space.
func Sanitize(text string) string {
	text = strictPolicy.Sanitize(text)
	// bluemonday escapes quotes and ampersands, stored text is not HTML
	text = html.UnescapeString(text)
	text = markdownLinkRegex.ReplaceAllString(text, "$1")
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
}
