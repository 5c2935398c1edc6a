package htmltoken

import (
	"strings"

	"github.com/curol/network/cursor"
	"github.com/curol/network/parseerror"
)

func (t *Tokenizer) stepMarkupDeclarationOpen() {
	// The cursor is still on the '!', so look at the input after it.
	rest := t.cur.Input()[t.cur.Position()+1:]
	switch {
	case strings.HasPrefix(rest, "--"):
		t.cur.SetPosition(t.cur.Position() + 2)
		t.currentComment.Reset()
		t.switchTo(stateCommentStart)
	case len(rest) >= 7 && strings.EqualFold(rest[:7], "DOCTYPE"):
		t.cur.SetPosition(t.cur.Position() + 7)
		t.switchTo(stateDOCTYPE)
	case strings.HasPrefix(rest, "[CDATA["):
		t.cur.SetPosition(t.cur.Position() + 7)
		t.switchTo(stateCDATASection)
	default:
		t.errs.Report(parseerror.IncorrectlyOpenedComment)
		t.currentComment.Reset()
		t.switchTo(stateBogusComment)
	}
}

func (t *Tokenizer) stepCommentStart() {
	switch r := t.readNext(); r {
	case '-':
		t.switchTo(stateCommentStartDash)
	case '>':
		t.errs.Report(parseerror.AbruptClosingOfEmptyComment)
		t.switchTo(stateData)
		t.emitCurrentComment()
	default:
		t.reconsumeIn(stateComment)
	}
}

func (t *Tokenizer) stepCommentStartDash() {
	switch r := t.readNext(); r {
	case '-':
		t.switchTo(stateCommentEnd)
	case '>':
		t.errs.Report(parseerror.AbruptClosingOfEmptyComment)
		t.switchTo(stateData)
		t.emitCurrentComment()
	case cursor.EOF:
		t.errs.Report(parseerror.EofInComment)
		t.emitCurrentComment()
		t.emit(eofToken())
	default:
		t.currentComment.WriteByte('-')
		t.reconsumeIn(stateComment)
	}
}

func (t *Tokenizer) stepComment() {
	switch r := t.readNext(); r {
	case '<':
		t.currentComment.WriteRune('<')
		t.switchTo(stateCommentLessThanSign)
	case '-':
		t.switchTo(stateCommentEndDash)
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.currentComment.WriteRune(replacementChar)
	case cursor.EOF:
		t.errs.Report(parseerror.EofInComment)
		t.emitCurrentComment()
		t.emit(eofToken())
	default:
		t.currentComment.WriteRune(r)
	}
}

func (t *Tokenizer) stepCommentLessThanSign() {
	switch r := t.readNext(); r {
	case '!':
		t.currentComment.WriteRune('!')
		t.switchTo(stateCommentLessThanSignBang)
	case '<':
		t.currentComment.WriteRune('<')
	default:
		t.reconsumeIn(stateComment)
	}
}

func (t *Tokenizer) stepCommentLessThanSignBang() {
	if t.readNext() == '-' {
		t.switchTo(stateCommentLessThanSignBangDash)
		return
	}
	t.reconsumeIn(stateComment)
}

func (t *Tokenizer) stepCommentLessThanSignBangDash() {
	if t.readNext() == '-' {
		t.switchTo(stateCommentLessThanSignBangDashDash)
		return
	}
	t.reconsumeIn(stateCommentEndDash)
}

func (t *Tokenizer) stepCommentLessThanSignBangDashDash() {
	switch r := t.readNext(); r {
	case '>', cursor.EOF:
		t.reconsumeIn(stateCommentEnd)
	default:
		t.errs.Report(parseerror.NestedComment)
		t.reconsumeIn(stateCommentEnd)
	}
}

func (t *Tokenizer) stepCommentEndDash() {
	switch r := t.readNext(); r {
	case '-':
		t.switchTo(stateCommentEnd)
	case cursor.EOF:
		t.errs.Report(parseerror.EofInComment)
		t.emitCurrentComment()
		t.emit(eofToken())
	default:
		t.currentComment.WriteByte('-')
		t.reconsumeIn(stateComment)
	}
}

func (t *Tokenizer) stepCommentEnd() {
	switch r := t.readNext(); r {
	case '>':
		t.switchTo(stateData)
		t.emitCurrentComment()
	case '!':
		t.switchTo(stateCommentEndBang)
	case '-':
		t.currentComment.WriteByte('-')
	case cursor.EOF:
		t.errs.Report(parseerror.EofInComment)
		t.emitCurrentComment()
		t.emit(eofToken())
	default:
		t.currentComment.WriteString("--")
		t.reconsumeIn(stateComment)
	}
}

func (t *Tokenizer) stepCommentEndBang() {
	switch r := t.readNext(); r {
	case '-':
		t.currentComment.WriteString("--!")
		t.switchTo(stateCommentEndDash)
	case '>':
		t.errs.Report(parseerror.IncorrectlyClosedComment)
		t.switchTo(stateData)
		t.emitCurrentComment()
	case cursor.EOF:
		t.errs.Report(parseerror.EofInComment)
		t.emitCurrentComment()
		t.emit(eofToken())
	default:
		t.currentComment.WriteString("--!")
		t.reconsumeIn(stateComment)
	}
}

func (t *Tokenizer) stepDOCTYPE() {
	switch r := t.readNext(); {
	case isWhitespace(r):
		t.switchTo(stateBeforeDOCTYPEName)
	case r == '>':
		t.reconsumeIn(stateBeforeDOCTYPEName)
	case r == cursor.EOF:
		t.errs.Report(parseerror.EofInDoctype)
		t.currentDoctype = Doctype{ForceQuirks: true}
		t.emitCurrentDoctype()
		t.emit(eofToken())
	default:
		t.errs.Report(parseerror.MissingWhitespaceBeforeDoctypeName)
		t.reconsumeIn(stateBeforeDOCTYPEName)
	}
}

func (t *Tokenizer) stepBeforeDOCTYPEName() {
	switch r := t.readNext(); {
	case isWhitespace(r):
		// Ignore.
	case isASCIIUpper(r):
		t.currentDoctype = Doctype{Name: string(toASCIILower(r)), HasName: true}
		t.switchTo(stateDOCTYPEName)
	case r == 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.currentDoctype = Doctype{Name: string(replacementChar), HasName: true}
		t.switchTo(stateDOCTYPEName)
	case r == '>':
		t.errs.Report(parseerror.MissingDoctypeName)
		t.currentDoctype = Doctype{ForceQuirks: true}
		t.switchTo(stateData)
		t.emitCurrentDoctype()
	case r == cursor.EOF:
		t.errs.Report(parseerror.EofInDoctype)
		t.currentDoctype = Doctype{ForceQuirks: true}
		t.emitCurrentDoctype()
		t.emit(eofToken())
	default:
		t.currentDoctype = Doctype{Name: string(r), HasName: true}
		t.switchTo(stateDOCTYPEName)
	}
}

func (t *Tokenizer) stepDOCTYPEName() {
	switch r := t.readNext(); {
	case isWhitespace(r):
		t.switchTo(stateAfterDOCTYPEName)
	case r == '>':
		t.switchTo(stateData)
		t.emitCurrentDoctype()
	case isASCIIUpper(r):
		t.currentDoctype.Name += string(toASCIILower(r))
	case r == 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.currentDoctype.Name += string(replacementChar)
	case r == cursor.EOF:
		t.errs.Report(parseerror.EofInDoctype)
		t.currentDoctype.ForceQuirks = true
		t.emitCurrentDoctype()
		t.emit(eofToken())
	default:
		t.currentDoctype.Name += string(r)
	}
}

func (t *Tokenizer) stepAfterDOCTYPEName() {
	switch r := t.readNext(); {
	case isWhitespace(r):
		// Ignore.
	case r == '>':
		t.switchTo(stateData)
		t.emitCurrentDoctype()
	case r == cursor.EOF:
		t.errs.Report(parseerror.EofInDoctype)
		t.currentDoctype.ForceQuirks = true
		t.emitCurrentDoctype()
		t.emit(eofToken())
	default:
		rest := t.cur.Remaining()
		switch {
		case len(rest) >= 6 && strings.EqualFold(rest[:6], "PUBLIC"):
			t.cur.SetPosition(t.cur.Position() + 6)
			t.switchTo(stateAfterDOCTYPEPublicKeyword)
		case len(rest) >= 6 && strings.EqualFold(rest[:6], "SYSTEM"):
			t.cur.SetPosition(t.cur.Position() + 6)
			t.switchTo(stateAfterDOCTYPESystemKeyword)
		default:
			t.errs.Report(parseerror.InvalidCharacterSequenceAfterDoctypeName)
			t.currentDoctype.ForceQuirks = true
			t.switchTo(stateBogusDOCTYPE)
		}
	}
}

func (t *Tokenizer) stepAfterDOCTYPEPublicKeyword() {
	switch r := t.readNext(); r {
	case ' ', '\t', '\n', '\f':
		t.switchTo(stateBeforeDOCTYPEPublicIdentifier)
	case '"':
		t.errs.Report(parseerror.MissingWhitespaceAfterDoctypePublicKeyword)
		t.currentDoctype.HasPublicID = true
		t.switchTo(stateDOCTYPEPublicIdentifierDoublequoted)
	case '\'':
		t.errs.Report(parseerror.MissingWhitespaceAfterDoctypePublicKeyword)
		t.currentDoctype.HasPublicID = true
		t.switchTo(stateDOCTYPEPublicIdentifierSinglequoted)
	case '>':
		t.errs.Report(parseerror.MissingDoctypePublicIdentifier)
		t.currentDoctype.ForceQuirks = true
		t.switchTo(stateData)
		t.emitCurrentDoctype()
	case cursor.EOF:
		t.errs.Report(parseerror.EofInDoctype)
		t.currentDoctype.ForceQuirks = true
		t.emitCurrentDoctype()
		t.emit(eofToken())
	default:
		t.errs.Report(parseerror.MissingQuoteBeforeDoctypePublicIdentifier)
		t.currentDoctype.ForceQuirks = true
		t.reconsumeIn(stateBogusDOCTYPE)
	}
}

func (t *Tokenizer) stepBeforeDOCTYPEPublicIdentifier() {
	switch r := t.readNext(); r {
	case ' ', '\t', '\n', '\f':
		// Ignore.
	case '"':
		t.currentDoctype.HasPublicID = true
		t.switchTo(stateDOCTYPEPublicIdentifierDoublequoted)
	case '\'':
		t.currentDoctype.HasPublicID = true
		t.switchTo(stateDOCTYPEPublicIdentifierSinglequoted)
	case '>':
		t.errs.Report(parseerror.MissingDoctypePublicIdentifier)
		t.currentDoctype.ForceQuirks = true
		t.switchTo(stateData)
		t.emitCurrentDoctype()
	case cursor.EOF:
		t.errs.Report(parseerror.EofInDoctype)
		t.currentDoctype.ForceQuirks = true
		t.emitCurrentDoctype()
		t.emit(eofToken())
	default:
		t.errs.Report(parseerror.MissingQuoteBeforeDoctypePublicIdentifier)
		t.currentDoctype.ForceQuirks = true
		t.reconsumeIn(stateBogusDOCTYPE)
	}
}

func (t *Tokenizer) stepDOCTYPEPublicIdentifierQuoted(quote rune, nextState stateID) {
	switch r := t.readNext(); r {
	case quote:
		t.switchTo(nextState)
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.currentDoctype.PublicID += string(replacementChar)
	case '>':
		t.errs.Report(parseerror.AbruptDoctypePublicIdentifier)
		t.currentDoctype.ForceQuirks = true
		t.switchTo(stateData)
		t.emitCurrentDoctype()
	case cursor.EOF:
		t.errs.Report(parseerror.EofInDoctype)
		t.currentDoctype.ForceQuirks = true
		t.emitCurrentDoctype()
		t.emit(eofToken())
	default:
		t.currentDoctype.PublicID += string(r)
	}
}

func (t *Tokenizer) stepAfterDOCTYPEPublicIdentifier() {
	switch r := t.readNext(); r {
	case ' ', '\t', '\n', '\f':
		t.switchTo(stateBetweenDOCTYPEPublicAndSystemIdentifiers)
	case '>':
		t.switchTo(stateData)
		t.emitCurrentDoctype()
	case '"':
		t.errs.Report(parseerror.MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers)
		t.currentDoctype.HasSystemID = true
		t.switchTo(stateDOCTYPESystemIdentifierDoublequoted)
	case '\'':
		t.errs.Report(parseerror.MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers)
		t.currentDoctype.HasSystemID = true
		t.switchTo(stateDOCTYPESystemIdentifierSinglequoted)
	case cursor.EOF:
		t.errs.Report(parseerror.EofInDoctype)
		t.currentDoctype.ForceQuirks = true
		t.emitCurrentDoctype()
		t.emit(eofToken())
	default:
		t.errs.Report(parseerror.MissingQuoteBeforeDoctypeSystemIdentifier)
		t.currentDoctype.ForceQuirks = true
		t.reconsumeIn(stateBogusDOCTYPE)
	}
}

func (t *Tokenizer) stepBetweenDOCTYPEPublicAndSystemIdentifiers() {
	switch r := t.readNext(); r {
	case ' ', '\t', '\n', '\f':
		// Ignore.
	case '>':
		t.switchTo(stateData)
		t.emitCurrentDoctype()
	case '"':
		t.currentDoctype.HasSystemID = true
		t.switchTo(stateDOCTYPESystemIdentifierDoublequoted)
	case '\'':
		t.currentDoctype.HasSystemID = true
		t.switchTo(stateDOCTYPESystemIdentifierSinglequoted)
	case cursor.EOF:
		t.errs.Report(parseerror.EofInDoctype)
		t.currentDoctype.ForceQuirks = true
		t.emitCurrentDoctype()
		t.emit(eofToken())
	default:
		t.errs.Report(parseerror.MissingQuoteBeforeDoctypeSystemIdentifier)
		t.currentDoctype.ForceQuirks = true
		t.reconsumeIn(stateBogusDOCTYPE)
	}
}

func (t *Tokenizer) stepAfterDOCTYPESystemKeyword() {
	switch r := t.readNext(); r {
	case ' ', '\t', '\n', '\f':
		t.switchTo(stateBeforeDOCTYPESystemIdentifier)
	case '"':
		t.errs.Report(parseerror.MissingWhitespaceAfterDoctypeSystemKeyword)
		t.currentDoctype.HasSystemID = true
		t.switchTo(stateDOCTYPESystemIdentifierDoublequoted)
	case '\'':
		t.errs.Report(parseerror.MissingWhitespaceAfterDoctypeSystemKeyword)
		t.currentDoctype.HasSystemID = true
		t.switchTo(stateDOCTYPESystemIdentifierSinglequoted)
	case '>':
		t.errs.Report(parseerror.MissingDoctypeSystemIdentifier)
		t.currentDoctype.ForceQuirks = true
		t.switchTo(stateData)
		t.emitCurrentDoctype()
	case cursor.EOF:
		t.errs.Report(parseerror.EofInDoctype)
		t.currentDoctype.ForceQuirks = true
		t.emitCurrentDoctype()
		t.emit(eofToken())
	default:
		t.errs.Report(parseerror.MissingQuoteBeforeDoctypeSystemIdentifier)
		t.currentDoctype.ForceQuirks = true
		t.reconsumeIn(stateBogusDOCTYPE)
	}
}

func (t *Tokenizer) stepBeforeDOCTYPESystemIdentifier() {
	switch r := t.readNext(); r {
	case ' ', '\t', '\n', '\f':
		// Ignore.
	case '"':
		t.currentDoctype.HasSystemID = true
		t.switchTo(stateDOCTYPESystemIdentifierDoublequoted)
	case '\'':
		t.currentDoctype.HasSystemID = true
		t.switchTo(stateDOCTYPESystemIdentifierSinglequoted)
	case '>':
		t.errs.Report(parseerror.MissingDoctypeSystemIdentifier)
		t.currentDoctype.ForceQuirks = true
		t.switchTo(stateData)
		t.emitCurrentDoctype()
	case cursor.EOF:
		t.errs.Report(parseerror.EofInDoctype)
		t.currentDoctype.ForceQuirks = true
		t.emitCurrentDoctype()
		t.emit(eofToken())
	default:
		t.errs.Report(parseerror.MissingQuoteBeforeDoctypeSystemIdentifier)
		t.currentDoctype.ForceQuirks = true
		t.reconsumeIn(stateBogusDOCTYPE)
	}
}

func (t *Tokenizer) stepDOCTYPESystemIdentifierQuoted(quote rune) {
	switch r := t.readNext(); r {
	case quote:
		t.switchTo(stateAfterDOCTYPESystemIdentifier)
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.currentDoctype.SystemID += string(replacementChar)
	case '>':
		t.errs.Report(parseerror.AbruptDoctypeSystemIdentifier)
		t.currentDoctype.ForceQuirks = true
		t.switchTo(stateData)
		t.emitCurrentDoctype()
	case cursor.EOF:
		t.errs.Report(parseerror.EofInDoctype)
		t.currentDoctype.ForceQuirks = true
		t.emitCurrentDoctype()
		t.emit(eofToken())
	default:
		t.currentDoctype.SystemID += string(r)
	}
}

func (t *Tokenizer) stepAfterDOCTYPESystemIdentifier() {
	switch r := t.readNext(); r {
	case ' ', '\t', '\n', '\f':
		// Ignore.
	case '>':
		t.switchTo(stateData)
		t.emitCurrentDoctype()
	case cursor.EOF:
		t.errs.Report(parseerror.EofInDoctype)
		t.currentDoctype.ForceQuirks = true
		t.emitCurrentDoctype()
		t.emit(eofToken())
	default:
		t.errs.Report(parseerror.UnexpectedCharacterAfterDoctypeSystemIdentifier)
		t.reconsumeIn(stateBogusDOCTYPE)
	}
}

func (t *Tokenizer) stepBogusDOCTYPE() {
	switch r := t.readNext(); r {
	case '>':
		t.switchTo(stateData)
		t.emitCurrentDoctype()
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
	case cursor.EOF:
		t.emitCurrentDoctype()
		t.emit(eofToken())
	default:
		// Ignore.
	}
}

func (t *Tokenizer) stepCDATASection() {
	switch r := t.readNext(); r {
	case ']':
		t.switchTo(stateCDATASectionBracket)
	case cursor.EOF:
		t.errs.Report(parseerror.EofInCdata)
		t.emit(eofToken())
	default:
		t.emit(characterToken(r))
	}
}

func (t *Tokenizer) stepCDATASectionBracket() {
	if t.readNext() == ']' {
		t.switchTo(stateCDATASectionEnd)
		return
	}
	t.emit(characterToken(']'))
	t.reconsumeIn(stateCDATASection)
}

func (t *Tokenizer) stepCDATASectionEnd() {
	switch r := t.readNext(); r {
	case ']':
		t.emit(characterToken(']'))
	case '>':
		t.switchTo(stateData)
	default:
		t.emit(characterToken(']'))
		t.emit(characterToken(']'))
		t.reconsumeIn(stateCDATASection)
	}
}
