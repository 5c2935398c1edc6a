package htmltoken

import (
	"github.com/curol/network/cursor"
	"github.com/curol/network/parseerror"
)

// stepData implements the data state: the default text-content state
// outside of any tag, RCDATA/RAWTEXT/script-data element, or CDATA
// section.
func (t *Tokenizer) stepData() {
	switch r := t.readNext(); r {
	case '&':
		t.returnState = stateData
		t.consumedAsAttr = false
		t.switchTo(stateCharacterReference)
	case '<':
		t.switchTo(stateTagOpen)
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.emit(characterToken(replacementChar))
	case cursor.EOF:
		t.emit(eofToken())
	default:
		t.emit(characterToken(r))
	}
}

func (t *Tokenizer) stepRCDATA() {
	switch r := t.readNext(); r {
	case '&':
		t.returnState = stateRCDATA
		t.consumedAsAttr = false
		t.switchTo(stateCharacterReference)
	case '<':
		t.switchTo(stateRCDATALessThanSign)
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.emit(characterToken(replacementChar))
	case cursor.EOF:
		t.emit(eofToken())
	default:
		t.emit(characterToken(r))
	}
}

func (t *Tokenizer) stepRAWTEXT() {
	switch r := t.readNext(); r {
	case '<':
		t.switchTo(stateRAWTEXTLessThanSign)
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.emit(characterToken(replacementChar))
	case cursor.EOF:
		t.emit(eofToken())
	default:
		t.emit(characterToken(r))
	}
}

func (t *Tokenizer) stepScriptData() {
	switch r := t.readNext(); r {
	case '<':
		t.switchTo(stateScriptDataLessThanSign)
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.emit(characterToken(replacementChar))
	case cursor.EOF:
		t.emit(eofToken())
	default:
		t.emit(characterToken(r))
	}
}

func (t *Tokenizer) stepPLAINTEXT() {
	switch r := t.readNext(); r {
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.emit(characterToken(replacementChar))
	case cursor.EOF:
		t.emit(eofToken())
	default:
		t.emit(characterToken(r))
	}
}

func (t *Tokenizer) stepTagOpen() {
	switch r := t.readNext(); {
	case r == '!':
		t.switchTo(stateMarkupDeclarationOpen)
	case r == '/':
		t.switchTo(stateEndTagOpen)
	case isASCIIAlpha(r):
		t.startTag("")
		t.reconsumeIn(stateTagName)
	case r == '?':
		t.errs.Report(parseerror.UnexpectedQuestionMarkInsteadOfTagName)
		t.currentComment.Reset()
		t.reconsumeIn(stateBogusComment)
	case r == cursor.EOF:
		t.errs.Report(parseerror.EofBeforeTagName)
		t.emit(characterToken('<'))
		t.emit(eofToken())
	default:
		t.errs.Report(parseerror.InvalidFirstCharacterOfTagName)
		t.emit(characterToken('<'))
		t.reconsumeIn(stateData)
	}
}

func (t *Tokenizer) stepEndTagOpen() {
	switch r := t.readNext(); {
	case isASCIIAlpha(r):
		t.startEndTag()
		t.reconsumeIn(stateTagName)
	case r == '>':
		t.errs.Report(parseerror.MissingEndTagName)
		t.switchTo(stateData)
	case r == cursor.EOF:
		t.errs.Report(parseerror.EofBeforeTagName)
		t.emit(characterToken('<'))
		t.emit(characterToken('/'))
		t.emit(eofToken())
	default:
		t.errs.Report(parseerror.InvalidFirstCharacterOfTagName)
		t.currentComment.Reset()
		t.reconsumeIn(stateBogusComment)
	}
}

func (t *Tokenizer) stepTagName() {
	switch r := t.readNext(); {
	case isWhitespace(r):
		t.switchTo(stateBeforeAttributeName)
	case r == '/':
		t.switchTo(stateSelfClosingStartTag)
	case r == '>':
		t.switchTo(stateData)
		t.emitCurrentTag()
	case isASCIIUpper(r):
		t.addToTagName(toASCIILower(r))
	case r == 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.addToTagName(replacementChar)
	case r == cursor.EOF:
		t.errs.Report(parseerror.EofInTag)
		t.emit(eofToken())
	default:
		t.addToTagName(r)
	}
}

// stepTextLessThanSign implements the RCDATA/RAWTEXT less-than-sign
// states: a '<' inside RCDATA/RAWTEXT content might begin an end tag.
func (t *Tokenizer) stepTextLessThanSign(textState, endTagOpenState stateID) {
	if t.readNext() == '/' {
		t.buffer.Reset()
		t.switchTo(endTagOpenState)
		return
	}
	t.emit(characterToken('<'))
	t.reconsumeIn(textState)
}

// stepTextEndTagOpen implements the RCDATA/RAWTEXT/script-data end-tag-open
// states shared shape.
func (t *Tokenizer) stepTextEndTagOpen(textState, endTagNameState stateID) {
	if r := t.readNext(); isASCIIAlpha(r) {
		t.startEndTag()
		t.reconsumeIn(endTagNameState)
		return
	}
	t.emit(characterToken('<'))
	t.emit(characterToken('/'))
	t.reconsumeIn(textState)
}

// stepTextEndTagName implements the RCDATA/RAWTEXT/script-data(-escaped)
// end-tag-name states: only an appropriate end tag actually closes the
// element; otherwise the buffered "</name" is emitted as plain text.
func (t *Tokenizer) stepTextEndTagName(textState stateID) {
	switch r := t.readNext(); {
	case isWhitespace(r) && t.isAppropriateEndTag():
		t.switchTo(stateBeforeAttributeName)
	case r == '/' && t.isAppropriateEndTag():
		t.switchTo(stateSelfClosingStartTag)
	case r == '>' && t.isAppropriateEndTag():
		t.switchTo(stateData)
		t.emitCurrentTag()
	case isASCIIUpper(r):
		t.addToTagName(toASCIILower(r))
		t.buffer.WriteRune(r)
	case isASCIILower(r):
		t.addToTagName(r)
		t.buffer.WriteRune(r)
	default:
		t.emitBufferedCharactersLiterally()
		t.reconsumeIn(textState)
	}
}
