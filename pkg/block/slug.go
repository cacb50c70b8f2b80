package block

import (
	"regexp"
	"strings"
	"unicode"
)

// Slugify derives a heading anchor. Letters and digits are kept lower
// cased, runs of whitespace and hyphens become a single hyphen, everything
// else is dropped. Leading and trailing hyphens never appear.
func Slugify(text string) string {
	var builder strings.Builder

	var sep bool
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if sep && builder.Len() != 0 {
				builder.WriteByte('-')
			}
			sep = false
			builder.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			sep = true
		}
	}

	return builder.String()
}

var youtubeExpression = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/shorts/)([a-zA-Z0-9_-]{11})`)

// YouTubeID returns the video id of a watch, short link, shorts or embed URL
// and the empty string for anything else.
func YouTubeID(u string) string {
	m := youtubeExpression.FindStringSubmatch(u)
	if m == nil {
		return ""
	}

	return m[1]
}
