package domain

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugSeparate = regexp.MustCompile(`[-\s]+`)
)

// Slugify turns a display name into a URL-safe identifier:
// "Liok Resort, Kerala" -> "liok-resort-kerala". Accented letters are folded
// to ASCII and anything else non-ASCII is dropped.
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(s) {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	out := slugStrip.ReplaceAllString(strings.ToLower(b.String()), "")
	out = slugSeparate.ReplaceAllString(out, "-")
	return strings.Trim(out, "-_")
}
