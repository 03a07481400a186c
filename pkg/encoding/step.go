// Package encoding provides text encoding utilities for IFC model data.
package encoding

import (
	"encoding/hex"
	"strings"

	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// STEP (ISO 10303-21) string escape directives.
const (
	escBackslash = `\\`
	escLatin     = `\S\`
	escHex8      = `\X\`
	escHex16     = `\X2\`
	escHex32     = `\X4\`
	escEnd       = `\X0\`
)

// DecodeStep converts a STEP-encoded string to UTF-8.
// Malformed escapes are copied through unchanged.
func DecodeStep(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			i++
			continue
		}

		rest := s[i:]
		switch {
		case strings.HasPrefix(rest, escBackslash):
			b.WriteByte('\\')
			i += len(escBackslash)

		case strings.HasPrefix(rest, escHex16):
			if text, n, ok := decodeRun(rest, escHex16, 4, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)); ok {
				b.WriteString(text)
				i += n
				continue
			}
			b.WriteByte('\\')
			i++

		case strings.HasPrefix(rest, escHex32):
			if text, n, ok := decodeRun(rest, escHex32, 8, utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)); ok {
				b.WriteString(text)
				i += n
				continue
			}
			b.WriteByte('\\')
			i++

		case strings.HasPrefix(rest, escHex8) && len(rest) >= len(escHex8)+2:
			raw, err := hex.DecodeString(rest[len(escHex8) : len(escHex8)+2])
			if err != nil {
				b.WriteByte('\\')
				i++
				continue
			}
			b.WriteString(latin1(raw))
			i += len(escHex8) + 2

		case strings.HasPrefix(rest, escLatin) && len(rest) > len(escLatin):
			c := rest[len(escLatin)]
			if c < 0x20 || c > 0x7E {
				b.WriteByte('\\')
				i++
				continue
			}
			b.WriteString(latin1([]byte{c + 0x80}))
			i += len(escLatin) + 1

		case isCodePage(rest):
			// Code page switches only affect \S\ in other parts of ISO 8859; drop them.
			i += 4

		default:
			b.WriteByte('\\')
			i++
		}
	}

	return b.String()
}

// decodeRun decodes a hex run between an opening directive and \X0\.
// It returns the decoded text and the number of bytes consumed.
func decodeRun(s, open string, width int, enc xencoding.Encoding) (string, int, bool) {
	body := s[len(open):]
	end := strings.Index(body, escEnd)
	if end < 0 || end%width != 0 {
		return "", 0, false
	}
	raw, err := hex.DecodeString(body[:end])
	if err != nil {
		return "", 0, false
	}
	result, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", 0, false
	}
	return string(result), len(open) + end + len(escEnd), true
}

// latin1 decodes ISO 8859-1 bytes.
func latin1(data []byte) string {
	result, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

func isCodePage(s string) bool {
	return len(s) >= 4 && s[1] == 'P' && s[2] >= 'A' && s[2] <= 'I' && s[3] == '\\'
}
