package htmltoken

// namedRefs is a longest-match table for the WHATWG named character
// references. It covers the references common in real-world markup rather
// than the full multi-thousand-entry list published by WHATWG. Each entry
// already includes the trailing ';' where the canonical reference requires
// one — callers probe progressively shorter prefixes of the remaining
// input, starting at the '&', to find the longest
// registered match, exactly as the semicolon-optional legacy references
// (e.g. "&amp") require.
var namedRefs = map[string]string{
	"&amp;":    "&",
	"&amp":     "&",
	"&lt;":     "<",
	"&lt":      "<",
	"&gt;":     ">",
	"&gt":      ">",
	"&quot;":   "\"",
	"&quot":    "\"",
	"&apos;":   "'",
	"&nbsp;":   " ",
	"&nbsp":    " ",
	"&copy;":   "©",
	"&copy":    "©",
	"&reg;":    "®",
	"&reg":     "®",
	"&hellip;": "…",
	"&mdash;":  "—",
	"&ndash;":  "–",
	"&lsquo;":  "‘",
	"&rsquo;":  "’",
	"&ldquo;":  "“",
	"&rdquo;":  "”",
	"&trade;":  "™",
	"&euro;":   "€",
	"&times;":  "×",
	"&divide;": "÷",
	"&deg;":    "°",
	"&plusmn;": "±",
	"&sect;":   "§",
	"&para;":   "¶",
	"&middot;": "·",
	"&larr;":   "←",
	"&uarr;":   "↑",
	"&rarr;":   "→",
	"&darr;":   "↓",
	"&bull;":   "•",
	"&dagger;": "†",
	"&Dagger;": "‡",
}

// longestNamedMatch finds the longest prefix of s (s begins with '&') that
// is a registered named character reference, returning its expansion, the
// matched byte length, and whether the match carried a trailing ';'.
func longestNamedMatch(s string) (expansion string, matchLen int, terminated bool) {
	best := -1
	for l := len(s); l >= 2; l-- {
		cand := s[:l]
		if exp, ok := namedRefs[cand]; ok {
			best = l
			expansion = exp
			break
		}
	}
	if best < 0 {
		return "", 0, false
	}
	return expansion, best, s[best-1] == ';'
}

// windows1252Remap implements the numeric-character-reference-end control
// code point table (spec §4.5 / §9): C1 control code points in this range
// that correspond to a Windows-1252 printable character are remapped to it.
var windows1252Remap = map[rune]rune{
	0x80: 0x20AC,
	0x82: 0x201A,
	0x83: 0x0192,
	0x84: 0x201E,
	0x85: 0x2026,
	0x86: 0x2020,
	0x87: 0x2021,
	0x88: 0x02C6,
	0x89: 0x2030,
	0x8A: 0x0160,
	0x8B: 0x2039,
	0x8C: 0x0152,
	0x8E: 0x017D,
	0x91: 0x2018,
	0x92: 0x2019,
	0x93: 0x201C,
	0x94: 0x201D,
	0x95: 0x2022,
	0x96: 0x2013,
	0x97: 0x2014,
	0x98: 0x02DC,
	0x99: 0x2122,
	0x9A: 0x0161,
	0x9B: 0x203A,
	0x9C: 0x0153,
	0x9E: 0x017E,
	0x9F: 0x0178,
}

// isNoncharacter reports whether r is one of the 66 Unicode noncharacters.
func isNoncharacter(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	switch r & 0xFFFF {
	case 0xFFFE, 0xFFFF:
		return true
	}
	return false
}

// isControlNotASCIIWhitespace reports whether code is a control code point
// (C0 controls 0x00-0x1F, plus the C1/DEL range 0x7F-0x9F) that is not also
// ASCII whitespace (tab, LF, FF, CR, space), per the numeric-character-
// reference-end control-character-reference condition.
func isControlNotASCIIWhitespace(code int32) bool {
	isControl := (code >= 0x00 && code <= 0x1F) || (code >= 0x7F && code <= 0x9F)
	if !isControl {
		return false
	}
	switch code {
	case 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return false
	}
	return true
}
