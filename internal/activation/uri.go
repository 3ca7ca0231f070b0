package activation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var protocolPattern = regexp.MustCompile(`^(?P<proto>[a-z][a-zA-Z0-9-_]+)://`)

// DecodeURI percent-decodes an activation argument once. A '+' decodes to a
// space and %uXXXX decodes to that code point, as HTML form decoding does.
// Escapes that are not valid are copied through unchanged.
func DecodeURI(raw string) string {
	if !strings.ContainsAny(raw, "%+") {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '+':
			b.WriteByte(' ')
		case c != '%':
			b.WriteByte(c)
		case i+5 < len(raw) && raw[i+1] == 'u':
			if r, ok := hexValue(raw[i+2:i+6], 16); ok {
				b.WriteRune(rune(r))
				i += 5
				continue
			}
			b.WriteByte(c)
		case i+2 < len(raw):
			if v, ok := hexValue(raw[i+1:i+3], 8); ok {
				b.WriteByte(byte(v))
				i += 2
				continue
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}

	out := b.String()
	if !utf8.ValidString(out) {
		return strings.ToValidUTF8(out, string(utf8.RuneError))
	}
	return out
}

func hexValue(s string, bits int) (uint64, bool) {
	v, err := strconv.ParseUint(s, 16, bits)
	return v, err == nil
}

// ExtractProtocol returns the scheme at the start of uri, or "" when the
// argument does not start with one.
func ExtractProtocol(uri string) string {
	m := protocolPattern.FindStringSubmatch(uri)
	if m == nil {
		return ""
	}
	return m[protocolPattern.SubexpIndex("proto")]
}
