package htmltoken

import (
	"github.com/curol/network/cursor"
	"github.com/curol/network/parseerror"
)

func (t *Tokenizer) stepBeforeAttributeName() {
	switch r := t.readNext(); {
	case isWhitespace(r):
		// Ignore.
	case r == '/' || r == '>' || r == cursor.EOF:
		t.reconsumeIn(stateAfterAttributeName)
	case r == '=':
		t.errs.Report(parseerror.UnexpectedEqualsSignBeforeAttributeName)
		t.newAttribute()
		t.addToAttrName('=')
		t.switchTo(stateAttributeName)
	default:
		t.newAttribute()
		t.reconsumeIn(stateAttributeName)
	}
}

func (t *Tokenizer) stepAttributeName() {
	switch r := t.readNext(); {
	case isWhitespace(r) || r == '/' || r == '>' || r == cursor.EOF:
		t.reconsumeIn(stateAfterAttributeName)
	case r == '=':
		t.switchTo(stateBeforeAttributeValue)
	case isASCIIUpper(r):
		t.addToAttrName(toASCIILower(r))
	case r == 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.addToAttrName(replacementChar)
	case r == '"' || r == '\'' || r == '<':
		t.errs.Report(parseerror.UnexpectedCharacterInAttributeName)
		t.addToAttrName(r)
	default:
		t.addToAttrName(r)
	}
}

func (t *Tokenizer) stepAfterAttributeName() {
	switch r := t.readNext(); {
	case isWhitespace(r):
		// Ignore.
	case r == '/':
		t.switchTo(stateSelfClosingStartTag)
	case r == '=':
		t.switchTo(stateBeforeAttributeValue)
	case r == '>':
		t.switchTo(stateData)
		t.emitCurrentTag()
	case r == cursor.EOF:
		t.errs.Report(parseerror.EofInTag)
		t.emit(eofToken())
	default:
		t.newAttribute()
		t.reconsumeIn(stateAttributeName)
	}
}

func (t *Tokenizer) stepBeforeAttributeValue() {
	switch r := t.readNext(); {
	case isWhitespace(r):
		// Ignore.
	case r == '"':
		t.switchTo(stateAttributeValueDoublequoted)
	case r == '\'':
		t.switchTo(stateAttributeValueSinglequoted)
	case r == '>':
		t.errs.Report(parseerror.MissingAttributeValue)
		t.switchTo(stateData)
		t.emitCurrentTag()
	default:
		t.reconsumeIn(stateAttributeValueUnquoted)
	}
}

func (t *Tokenizer) stepAttributeValueQuoted(quote rune, selfState stateID) {
	switch r := t.readNext(); r {
	case quote:
		t.switchTo(stateAfterAttributeValueQuoted)
	case '&':
		t.returnState = selfState
		t.consumedAsAttr = true
		t.switchTo(stateCharacterReference)
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.addToAttrValue(replacementChar)
	case cursor.EOF:
		t.errs.Report(parseerror.EofInTag)
		t.emit(eofToken())
	default:
		t.addToAttrValue(r)
	}
}

func (t *Tokenizer) stepAttributeValueUnquoted() {
	switch r := t.readNext(); r {
	case ' ', '\t', '\n', '\f':
		t.switchTo(stateBeforeAttributeName)
	case '&':
		t.returnState = stateAttributeValueUnquoted
		t.consumedAsAttr = true
		t.switchTo(stateCharacterReference)
	case '>':
		t.switchTo(stateData)
		t.emitCurrentTag()
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.addToAttrValue(replacementChar)
	case '"', '\'', '<', '=', '`':
		t.errs.Report(parseerror.UnexpectedCharacterInUnquotedAttributeValue)
		t.addToAttrValue(r)
	case cursor.EOF:
		t.errs.Report(parseerror.EofInTag)
		t.emit(eofToken())
	default:
		t.addToAttrValue(r)
	}
}

func (t *Tokenizer) stepAfterAttributeValueQuoted() {
	switch r := t.readNext(); {
	case isWhitespace(r):
		t.switchTo(stateBeforeAttributeName)
	case r == '/':
		t.switchTo(stateSelfClosingStartTag)
	case r == '>':
		t.switchTo(stateData)
		t.emitCurrentTag()
	case r == cursor.EOF:
		t.errs.Report(parseerror.EofInTag)
		t.emit(eofToken())
	default:
		t.errs.Report(parseerror.MissingWhitespaceBetweenAttributes)
		t.reconsumeIn(stateBeforeAttributeName)
	}
}

func (t *Tokenizer) stepSelfClosingStartTag() {
	switch r := t.readNext(); r {
	case '>':
		t.currentTag.SelfClosing = true
		t.switchTo(stateData)
		t.emitCurrentTag()
	case cursor.EOF:
		t.errs.Report(parseerror.EofInTag)
		t.emit(eofToken())
	default:
		t.errs.Report(parseerror.UnexpectedSolidusInTag)
		t.reconsumeIn(stateBeforeAttributeName)
	}
}

func (t *Tokenizer) stepBogusComment() {
	switch r := t.readNext(); r {
	case '>':
		t.switchTo(stateData)
		t.emitCurrentComment()
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.currentComment.WriteRune(replacementChar)
	case cursor.EOF:
		t.emitCurrentComment()
		t.emit(eofToken())
	default:
		t.currentComment.WriteRune(r)
	}
}
