package host

import (
	"fmt"
	"strconv"
	"strings"
)

// parseIPv6 implements the WHATWG IPv6 parser (strict bracketed syntax,
// the bracket characters themselves already stripped by the caller).
func parseIPv6(input string) ([8]uint16, error) {
	var address [8]uint16
	pieceIndex := 0
	compress := -1

	runes := []rune(input)
	pos := 0
	peek := func() rune {
		if pos >= len(runes) {
			return 0
		}
		return runes[pos]
	}
	atEnd := func() bool { return pos >= len(runes) }

	if peek() == ':' {
		if pos+1 >= len(runes) || runes[pos+1] != ':' {
			return address, fmt.Errorf("ipv6 address starts with lone ':'")
		}
		pos += 2
		pieceIndex++
		compress = pieceIndex
	}

	for !atEnd() {
		if pieceIndex == 8 {
			return address, fmt.Errorf("ipv6 address has too many pieces")
		}
		if peek() == ':' {
			if compress != -1 {
				return address, fmt.Errorf("ipv6 address has more than one '::'")
			}
			pos++
			pieceIndex++
			compress = pieceIndex
			continue
		}
		start := pos
		value := 0
		length := 0
		for length < 4 && isHexDigit(peek()) {
			value = value*16 + hexValue(peek())
			pos++
			length++
		}
		if peek() == '.' {
			if length == 0 {
				return address, fmt.Errorf("ipv4-in-ipv6 piece has no digits before '.'")
			}
			pos = start
			if pieceIndex > 6 {
				return address, fmt.Errorf("ipv4-in-ipv6 piece out of range")
			}
			numbersSeen := 0
			for !atEnd() {
				ipv4Piece := -1
				if numbersSeen > 0 {
					if peek() == '.' && numbersSeen < 4 {
						pos++
					} else {
						return address, fmt.Errorf("bad ipv4-in-ipv6 separator")
					}
				}
				if !isASCIIDigit(peek()) {
					return address, fmt.Errorf("expected digit in ipv4-in-ipv6 piece")
				}
				for isASCIIDigit(peek()) {
					digit := int(peek() - '0')
					if ipv4Piece == -1 {
						ipv4Piece = digit
					} else if ipv4Piece == 0 {
						return address, fmt.Errorf("ipv4-in-ipv6 piece has leading zero")
					} else {
						ipv4Piece = ipv4Piece*10 + digit
					}
					if ipv4Piece > 255 {
						return address, fmt.Errorf("ipv4-in-ipv6 piece out of range")
					}
					pos++
				}
				address[pieceIndex] = address[pieceIndex]*256 + uint16(ipv4Piece)
				numbersSeen++
				if numbersSeen == 2 || numbersSeen == 4 {
					pieceIndex++
				}
			}
			if numbersSeen != 4 {
				return address, fmt.Errorf("ipv4-in-ipv6 needs exactly four parts")
			}
			break
		} else if peek() == ':' {
			pos++
			if atEnd() {
				return address, fmt.Errorf("ipv6 address unexpectedly ends with ':'")
			}
		} else if !atEnd() {
			return address, fmt.Errorf("unexpected character in ipv6 address")
		}
		address[pieceIndex] = uint16(value)
		pieceIndex++
	}

	if compress != -1 {
		swaps := pieceIndex - compress
		pieceIndex = 7
		for pieceIndex != 0 && swaps > 0 {
			address[pieceIndex], address[compress+swaps-1] = address[compress+swaps-1], address[pieceIndex]
			pieceIndex--
			swaps--
		}
	} else if compress == -1 && pieceIndex != 8 {
		return address, fmt.Errorf("ipv6 address too short")
	}

	return address, nil
}

func isHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

func hexValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	default:
		return int(r-'A') + 10
	}
}

// serializeIPv6 implements the WHATWG IPv6 serializer: compress the
// longest run of zero pieces (length > 1) as "::".
func serializeIPv6(pieces [8]uint16) string {
	compress, _ := longestZeroRun(pieces)

	var b strings.Builder
	ignore0 := false
	for i := 0; i < 8; i++ {
		if ignore0 && pieces[i] == 0 {
			continue
		}
		if ignore0 {
			ignore0 = false
		}
		if compress == i {
			if i == 0 {
				b.WriteString("::")
			} else {
				b.WriteByte(':')
			}
			ignore0 = true
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(pieces[i]), 16))
		if i != 7 {
			b.WriteByte(':')
		}
	}
	return b.String()
}

func longestZeroRun(pieces [8]uint16) (start, length int) {
	start, length = -1, 0
	curStart, curLen := -1, 0
	for i := 0; i < 8; i++ {
		if pieces[i] == 0 {
			if curStart == -1 {
				curStart = i
			}
			curLen++
		} else {
			if curLen > length {
				start, length = curStart, curLen
			}
			curStart, curLen = -1, 0
		}
	}
	if curLen > length {
		start, length = curStart, curLen
	}
	if length <= 1 {
		return -1, 0
	}
	return start, length
}
