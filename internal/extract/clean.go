package extract

import (
	"regexp"
	"strings"
)

var (
	whitespaceRunRe = regexp.MustCompile(`\s+`)
	unsafeCharRe    = regexp.MustCompile(`[^\w\s\-.,;:()\[\]@#+=/"'&%$]`)
	newlineRunRe    = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes text pulled out of a document: whitespace runs collapse
// to single spaces, characters outside a safe allow-list are stripped, line
// endings are normalized with runs of 3+ newlines collapsed to two, and the
// result is trimmed.
func CleanText(text string) string {
	text = whitespaceRunRe.ReplaceAllString(text, " ")
	text = unsafeCharRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = newlineRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
