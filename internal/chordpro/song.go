package chordpro

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

const untitled = "Untitled"

// SongTitle returns the value of the last {title: ...} or {t: ...}
// directive in text, or "" when there is none.
func SongTitle(text string) string {
	title := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}

		for rest := line; ; {
			open := strings.IndexByte(rest, '{')
			if open < 0 {
				break
			}
			end := strings.IndexByte(rest[open:], '}')
			if end < 0 {
				break
			}

			key, value := splitDirective(rest[open+1 : open+end])
			if key == "t" || key == "title" {
				title = value
			}
			rest = rest[open+end+1:]
		}
	}
	return title
}

func splitDirective(content string) (key, value string) {
	content = strings.TrimSpace(content)
	k, v, found := strings.Cut(content, ":")
	if !found {
		return strings.ToLower(content), ""
	}
	return strings.ToLower(strings.TrimSpace(k)), strings.TrimSpace(v)
}

// DefaultOutputName builds a PDF file name from a song title, replacing
// every UTF-16 code unit outside [A-Za-z0-9] with an underscore, so
// characters beyond the BMP become two underscores.
func DefaultOutputName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = untitled
	}

	var b strings.Builder
	for _, u := range utf16.Encode([]rune(title)) {
		switch {
		case u >= 'a' && u <= 'z', u >= 'A' && u <= 'Z', u >= '0' && u <= '9':
			b.WriteByte(byte(u))
		default:
			b.WriteByte('_')
		}
	}
	b.WriteString(".pdf")
	return b.String()
}

const transposeDirective = "{transpose:"

// WithTranspose prepends a transpose directive when semitones is non-zero
// and the song does not already carry one of its own.
func WithTranspose(text string, semitones int) string {
	if semitones == 0 || strings.Contains(text, transposeDirective) {
		return text
	}
	return fmt.Sprintf("{transpose:%d}\n%s", semitones, text)
}
