package decay

// Attribution: the printf verb expression below is modeled directly on
// the github.com/dominikh/go-tools/blob/master/printf package, used
// with the permission available under the software license (MIT):
// https://github.com/dominikh/go-tools/blob/master/LICENSE

import (
	"fmt"
	"regexp"
	"strings"
)

// Notef formats a Note according to a format specifier, like
// fmt.Sprintf. An empty result gives NoNote.
//
// A note is text and never wraps the values it mentions, so `%w` verbs
// are accepted and rendered as `%v`. This keeps format strings shared
// with fmt.Errorf usable here:
//
//	decay.Notef("loading %s: %w", name, err) // same text as fmt.Errorf would give
func Notef(format string, values ...interface{}) Note {
	return NoteOf(fmt.Sprintf(textVerbs(format), values...))
}

// textVerbs rewrites every `%w` verb in format to `%v`, keeping flags,
// width, precision and explicit argument indexes. Malformed verbs are
// left for fmt to report.
func textVerbs(format string) string {
	if !strings.ContainsRune(format, 'w') {
		return format
	}

	var b strings.Builder
	b.Grow(len(format))
	for len(format) > 0 {
		n := strings.IndexByte(format, '%')
		if n < 0 {
			b.WriteString(format)
			break
		}
		b.WriteString(format[:n])
		format = format[n:]

		raw := re.FindString(format)
		if raw == "" {
			b.WriteByte('%')
			format = format[1:]
			continue
		}
		format = format[len(raw):]
		if raw[len(raw)-1] == 'w' {
			raw = raw[:len(raw)-1] + "v"
		}
		b.WriteString(raw)
	}
	return b.String()
}

const (
	flags             = `([+#0 -]*)`
	verb              = `([a-zA-Z%])`
	index             = `(?:\[([0-9]+)\])`
	star              = `((` + index + `)?\*)`
	width1            = `([0-9]+)`
	width2            = star
	width             = `(?:` + width1 + `|` + width2 + `)`
	precision         = width
	widthAndPrecision = `(?:(?:` + width + `)?(?:(\.)(?:` + precision + `)?)?)`
)

var re = regexp.MustCompile(`^%` + flags + widthAndPrecision + `?` + index + `?` + verb)
