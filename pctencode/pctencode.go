// Package pctencode implements the WHATWG percent-encoding byte sets and
// the predicate-parameterized percent-encoder shared by the URL parser's
// path, query, fragment and userinfo states.
package pctencode

import (
	"strings"
	"unicode/utf8"
)

// Set is a membership predicate over a single byte: it reports whether
// that byte should be percent-encoded.
type Set func(b byte) bool

// C0 is the baseline "C0 control percent-encode set": bytes <= 0x1F or >= 0x7F.
func C0(b byte) bool {
	return b <= 0x1F || b >= 0x7F
}

// Fragment extends C0 with the fragment-specific reserved bytes.
func Fragment(b byte) bool {
	return C0(b) || isAny(b, ' ', '"', '<', '>', '`')
}

// Query extends C0 with the query-specific reserved bytes.
func Query(b byte) bool {
	return C0(b) || isAny(b, ' ', '"', '#', '<', '>')
}

// SpecialQuery extends Query with the apostrophe, for queries of special-scheme URLs.
func SpecialQuery(b byte) bool {
	return Query(b) || b == '\''
}

// Path extends Query with the path-specific reserved bytes.
func Path(b byte) bool {
	return Query(b) || isAny(b, '?', '`', '{', '}')
}

// Userinfo extends Path with the userinfo-specific reserved bytes.
func Userinfo(b byte) bool {
	return Path(b) || isAny(b, '/', ':', ';', '=', '@', '[', '\\', ']', '^', '|')
}

func isAny(b byte, set ...byte) bool {
	for _, s := range set {
		if b == s {
			return true
		}
	}
	return false
}

const upperHex = "0123456789ABCDEF"

// Encode percent-encodes s according to set, writing each byte either
// verbatim or as an uppercase %HH escape, and returns the resulting ASCII
// string. s is assumed to already be UTF-8 encoded (percent-encoding
// operates on bytes, after any character-to-UTF-8 conversion has happened).
func Encode(s string, set Set) string {
	var needsEncode bool
	for i := 0; i < len(s); i++ {
		if set(s[i]) {
			needsEncode = true
			break
		}
	}
	if !needsEncode {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	EncodeTo(&b, s, set)
	return b.String()
}

// EncodeTo percent-encodes s according to set into sink.
func EncodeTo(sink *strings.Builder, s string, set Set) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if set(c) {
			sink.WriteByte('%')
			sink.WriteByte(upperHex[c>>4])
			sink.WriteByte(upperHex[c&0xF])
		} else {
			sink.WriteByte(c)
		}
	}
}

// EncodeRune UTF-8 encodes r and percent-encodes the resulting bytes
// according to set, appending the result to sink.
func EncodeRune(sink *strings.Builder, r rune, set Set) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	EncodeTo(sink, string(buf[:n]), set)
}
