// Package markup converts the constrained markup subset used in assistant
// summaries (bold spans, paragraph breaks, line breaks) into display HTML.
package markup

import (
	"html"
	"regexp"
	"strings"
)

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// Render escapes the input and then applies the three allowed
// substitutions. The text originates from the backend's generated summary
// and is treated as untrusted: nothing beyond bold spans, paragraph breaks
// and line breaks can introduce structure.
func Render(content string) string {
	escaped := html.EscapeString(content)
	escaped = boldPattern.ReplaceAllString(escaped, "<strong>$1</strong>")

	paragraphs := strings.Split(escaped, "\n\n")
	var b strings.Builder
	for _, p := range paragraphs {
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(p, "\n", "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}
