package htmltoken

import "github.com/curol/network/parseerror"

func (t *Tokenizer) stepCharacterReference() {
	t.buffer.Reset()
	t.buffer.WriteByte('&')
	switch r := t.readNext(); {
	case isASCIIAlnum(r):
		t.reconsumeIn(stateNamedCharacterReference)
	case r == '#':
		t.buffer.WriteByte('#')
		t.switchTo(stateNumericCharacterReference)
	default:
		t.flushBuffer()
		t.reconsumeIn(t.returnState)
	}
}

// stepNamedCharacterReference implements the named-character-reference
// state: find the longest registered name matching the input starting at
// the current position, expand it, and apply the historical
// attribute-context carve-out for an unterminated match immediately
// followed by '=' or an alphanumeric.
func (t *Tokenizer) stepNamedCharacterReference() {
	// reconsumeIn left the cursor back on the '&' the Data state already
	// consumed, so Remaining() already starts with it — no synthetic '&'
	// needed here.
	candidate := t.cur.Remaining()
	expansion, matchLen, terminated := longestNamedMatch(candidate)
	if matchLen == 0 {
		t.flushBuffer()
		t.switchTo(stateAmbiguousAmpersand)
		return
	}
	for i := 0; i < matchLen-1; i++ { // advance from '&' to the last matched code point
		t.cur.Next()
	}
	if !terminated && t.consumedAsAttr {
		next := t.peekNext()
		if next == '=' || isASCIIAlnum(next) {
			t.buffer.Reset()
			t.buffer.WriteString(candidate[:matchLen])
			t.flushBuffer()
			t.switchTo(t.returnState)
			return
		}
	}
	if !terminated {
		t.errs.Report(parseerror.MissingSemicolonAfterCharacterReference)
	}
	t.buffer.Reset()
	t.buffer.WriteString(expansion)
	t.flushBuffer()
	t.switchTo(t.returnState)
}

func (t *Tokenizer) stepAmbiguousAmpersand() {
	switch r := t.readNext(); {
	case isASCIIAlnum(r):
		if t.consumedAsAttr {
			t.addToAttrValue(r)
		} else {
			t.emit(characterToken(r))
		}
	case r == ';':
		t.errs.Report(parseerror.UnknownNamedCharacterReference)
		t.reconsumeIn(t.returnState)
	default:
		t.reconsumeIn(t.returnState)
	}
}

func (t *Tokenizer) stepNumericCharacterReference() {
	t.charRefCode = 0
	switch r := t.readNext(); r {
	case 'x', 'X':
		t.buffer.WriteRune(r)
		t.switchTo(stateHexadecimalCharacterReferenceStart)
	default:
		t.reconsumeIn(stateDecimalCharacterReferenceStart)
	}
}

func (t *Tokenizer) stepHexadecimalCharacterReferenceStart() {
	if isASCIIHexDigit(t.peekNext()) {
		t.switchTo(stateHexadecimalCharacterReference)
		return
	}
	t.errs.Report(parseerror.AbsenceOfDigitsInNumericCharacterReference)
	t.flushBuffer()
	t.switchTo(t.returnState)
}

func (t *Tokenizer) stepDecimalCharacterReferenceStart() {
	if isASCIIDigit(t.peekNext()) {
		t.switchTo(stateDecimalCharacterReference)
		return
	}
	t.errs.Report(parseerror.AbsenceOfDigitsInNumericCharacterReference)
	t.flushBuffer()
	t.switchTo(t.returnState)
}

func hexDigitValue(r rune) int32 {
	switch {
	case r >= '0' && r <= '9':
		return int32(r - '0')
	case r >= 'a' && r <= 'f':
		return int32(r-'a') + 10
	default:
		return int32(r-'A') + 10
	}
}

func (t *Tokenizer) stepHexadecimalCharacterReference() {
	switch r := t.readNext(); {
	case isASCIIHexDigit(r):
		t.charRefCode = t.charRefCode*16 + hexDigitValue(r)
	case r == ';':
		t.switchTo(stateNumericCharacterReferenceEnd)
	default:
		t.errs.Report(parseerror.MissingSemicolonAfterCharacterReference)
		t.reconsumeIn(stateNumericCharacterReferenceEnd)
	}
}

func (t *Tokenizer) stepDecimalCharacterReference() {
	switch r := t.readNext(); {
	case isASCIIDigit(r):
		t.charRefCode = t.charRefCode*10 + int32(r-'0')
	case r == ';':
		t.switchTo(stateNumericCharacterReferenceEnd)
	default:
		t.errs.Report(parseerror.MissingSemicolonAfterCharacterReference)
		t.reconsumeIn(stateNumericCharacterReferenceEnd)
	}
}

// stepNumericCharacterReferenceEnd implements the final numeric
// character-reference validation table: null/overflow/surrogate/
// noncharacter code points are remapped to U+FFFD, and the Windows-1252
// C1-control range is remapped to its printable Windows-1252 counterpart.
func (t *Tokenizer) stepNumericCharacterReferenceEnd() {
	code := t.charRefCode
	switch {
	case code == 0x00:
		t.errs.Report(parseerror.NullCharacterReference)
		code = 0xFFFD
	case code > 0x10FFFF:
		t.errs.Report(parseerror.CharacterReferenceOutsideUnicodeRange)
		code = 0xFFFD
	case code >= 0xD800 && code <= 0xDFFF:
		t.errs.Report(parseerror.SurrogateCharacterReference)
		code = 0xFFFD
	case isNoncharacter(rune(code)):
		t.errs.Report(parseerror.NoncharacterCharacterReference)
		code = 0xFFFD
	case code == 0x0D || isControlNotASCIIWhitespace(code):
		t.errs.Report(parseerror.ControlCharacterReference)
		if mapped, ok := windows1252Remap[rune(code)]; ok {
			code = mapped
		}
	}
	t.buffer.Reset()
	t.buffer.WriteRune(rune(code))
	t.flushBuffer()
	t.switchTo(t.returnState)
}
