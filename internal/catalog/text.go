package catalog

import (
	"html"
	"regexp"
	"strings"
)

var (
	blockTagRe = regexp.MustCompile(`(?i)</?(p|div|ul|ol|pre|br)\b[^>]*>`)
	itemTagRe  = regexp.MustCompile(`(?i)<li\b[^>]*>`)
	anyTagRe   = regexp.MustCompile(`<[^>]+>`)
	blankRe    = regexp.MustCompile(`\n{3,}`)
)

// PlainText renders a lesson HTML fragment as terminal text: block tags become
// line breaks, list items become bullets, everything else is stripped.
func PlainText(fragment string) string {
	s := itemTagRe.ReplaceAllString(fragment, "\n  • ")
	s = blockTagRe.ReplaceAllString(s, "\n")
	s = anyTagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
		if !strings.HasPrefix(lines[i], "  • ") {
			lines[i] = strings.TrimSpace(lines[i])
		}
	}
	s = strings.Join(lines, "\n")
	s = blankRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
