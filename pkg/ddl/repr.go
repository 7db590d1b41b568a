package ddl

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EncodedPayload returns the base64 literal body used to embed module content
// in CREATE FUNCTION. The content is first written as a Python-style repr
// (a str literal for text, a b'' literal for binary), then UTF-8 encoded and
// base64 encoded. Servers decode the payload with the same convention, so the
// bytes must not change. Empty content always encodes as the empty str ''.
func EncodedPayload(lib Library) string {
	var repr string
	if lib.Binary && len(lib.Content) > 0 {
		repr = bytesRepr(lib.Content)
	} else {
		repr = strRepr(string(lib.Content))
	}
	return base64.StdEncoding.EncodeToString([]byte(repr))
}

// strRepr quotes s the way Python's repr does for str values.
func strRepr(s string) string {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteByte(quote)
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			// undecodable bytes appear as lone surrogates, as with surrogateescape
			fmt.Fprintf(&b, `\udc%02x`, s[0])
			s = s[1:]
			continue
		}
		s = s[size:]

		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(quote):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < 0x7f && r >= 0x20:
			b.WriteRune(r)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

// bytesRepr quotes p the way Python's repr does for bytes values.
func bytesRepr(p []byte) string {
	quote := byte('\'')
	if strings.IndexByte(string(p), '\'') >= 0 && strings.IndexByte(string(p), '"') < 0 {
		quote = '"'
	}

	var b strings.Builder
	b.WriteByte('b')
	b.WriteByte(quote)
	for _, c := range p {
		switch {
		case c == '\\' || c == quote:
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
