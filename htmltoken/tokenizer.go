package htmltoken

import (
	"strings"

	"github.com/curol/network/cursor"
	"github.com/curol/network/parseerror"
)

// Tokenizer turns an HTML source string into a stream of tokens, one
// state transition at a time. It never looks behind the tree builder's
// back: callers drive it with SwitchToRCDATA/SwitchToRAWTEXT/etc. when
// the tree builder's insertion mode demands a text-content mode, exactly
// as the spec's tokenizer/tree-builder feedback loop requires.
type Tokenizer struct {
	cur   *cursor.Cursor
	state stateID
	errs  parseerror.Handler

	returnState    stateID
	consumedAsAttr bool

	pending []Token
	done    bool

	currentTag     Tag
	currentDoctype Doctype
	currentComment strings.Builder

	buffer strings.Builder

	lastStartTagName string
	charRefCode      int32
}

// New returns a Tokenizer positioned at the start of input in the Data state.
func New(input string, errs parseerror.Handler) *Tokenizer {
	if errs == nil {
		errs = parseerror.NopHandler{}
	}
	return &Tokenizer{
		cur:   cursor.New(input),
		state: stateData,
		errs:  errs,
	}
}

// SwitchToRCDATA puts the tokenizer in RCDATA mode, for elements like
// <title> and <textarea> whose content is text but may contain character
// references.
func (t *Tokenizer) SwitchToRCDATA() { t.state = stateRCDATA }

// SwitchToRAWTEXT puts the tokenizer in RAWTEXT mode, for elements like
// <style> whose content is opaque text.
func (t *Tokenizer) SwitchToRAWTEXT() { t.state = stateRAWTEXT }

// SwitchToScriptData puts the tokenizer in script data mode, for <script>
// content.
func (t *Tokenizer) SwitchToScriptData() { t.state = stateScriptData }

// SwitchToPLAINTEXT puts the tokenizer in PLAINTEXT mode, for <plaintext>
// content; there is no way back to the data state from here.
func (t *Tokenizer) SwitchToPLAINTEXT() { t.state = statePLAINTEXT }

// Next returns the next token. Once an EOF token has been produced, every
// subsequent call returns another EOF token without re-running the state
// machine.
func (t *Tokenizer) Next() Token {
	if t.done && len(t.pending) == 0 {
		return eofToken()
	}
	for len(t.pending) == 0 {
		t.step()
	}
	tok := t.pending[0]
	t.pending = t.pending[1:]
	if tok.Kind == KindEOF {
		t.done = true
	}
	return tok
}

// readNext consumes and returns the next input code point, or cursor.EOF
// at the end of input.
func (t *Tokenizer) readNext() rune {
	return t.cur.Next()
}

// peekNext reports the code point after the current one, without consuming it.
func (t *Tokenizer) peekNext() rune {
	r := t.cur.Next()
	t.cur.GoBack()
	return r
}

// switchTo changes state without reconsuming the current character.
func (t *Tokenizer) switchTo(s stateID) { t.state = s }

// reconsumeIn rewinds the cursor by one code point and changes state, so
// the character just read will be read again under the new state.
func (t *Tokenizer) reconsumeIn(s stateID) {
	t.cur.GoBack()
	t.state = s
}

// emit appends tok to the pending output queue, tracking the name of the
// most recent start tag (needed by isAppropriateEndTag).
func (t *Tokenizer) emit(tok Token) {
	if tok.Kind == KindTag && tok.Tag.Opening {
		t.lastStartTagName = tok.Tag.Name
	}
	t.pending = append(t.pending, tok)
}

// startTag resets the current tag buffer to a fresh opening tag.
func (t *Tokenizer) startTag(name string) {
	t.currentTag = Tag{Opening: true, Name: name}
}

// startEndTag resets the current tag buffer to a fresh end tag.
func (t *Tokenizer) startEndTag() {
	t.currentTag = Tag{Opening: false}
}

func (t *Tokenizer) addToTagName(r rune) { t.currentTag.Name += string(r) }

func (t *Tokenizer) newAttribute() {
	t.currentTag.Attributes = append(t.currentTag.Attributes, Attribute{})
}

func (t *Tokenizer) addToAttrName(r rune) {
	n := len(t.currentTag.Attributes)
	t.currentTag.Attributes[n-1].Name += string(r)
}

func (t *Tokenizer) addToAttrValue(r rune) {
	n := len(t.currentTag.Attributes)
	t.currentTag.Attributes[n-1].Value += string(r)
}

func (t *Tokenizer) addToAttrValueString(s string) {
	n := len(t.currentTag.Attributes)
	t.currentTag.Attributes[n-1].Value += s
}

// emitCurrentTag drops later duplicate attribute names (the first
// occurrence wins, spec's duplicate-attribute handling) and emits the tag.
func (t *Tokenizer) emitCurrentTag() {
	deduped := Tag{Opening: t.currentTag.Opening, Name: t.currentTag.Name, SelfClosing: t.currentTag.SelfClosing}
	for _, a := range t.currentTag.Attributes {
		if deduped.hasAttr(a.Name) {
			continue
		}
		deduped.Attributes = append(deduped.Attributes, a)
	}
	t.emit(tagToken(deduped))
}

func (t *Tokenizer) emitCurrentComment() {
	t.emit(commentToken(t.currentComment.String()))
	t.currentComment.Reset()
}

func (t *Tokenizer) emitCurrentDoctype() {
	t.emit(docTypeToken(t.currentDoctype))
	t.currentDoctype = Doctype{}
}

// isAppropriateEndTag reports whether the end tag currently being built
// matches the name of the most recently emitted start tag (spec's
// "appropriate end tag token" check, which governs whether RCDATA/
// RAWTEXT/script-data end-tag-open states commit to tag parsing or fall
// back to emitting the buffered text literally).
func (t *Tokenizer) isAppropriateEndTag() bool {
	return t.lastStartTagName != "" && t.currentTag.Name == t.lastStartTagName
}

// flushBuffer emits the temporary buffer's contents either as
// character tokens, or appended to the in-progress attribute value, per
// the "flush code points consumed as a character reference" spec step.
func (t *Tokenizer) flushBuffer() {
	s := t.buffer.String()
	if t.consumedAsAttr {
		t.addToAttrValueString(s)
	} else {
		for _, r := range s {
			t.emit(characterToken(r))
		}
	}
	t.buffer.Reset()
}

// emitBufferedCharactersLiterally is used when a RCDATA/RAWTEXT/script
// data end-tag-open/name state determines the buffered "</name" text was
// not an appropriate end tag: it is emitted as literal character tokens
// instead of being treated as a tag.
func (t *Tokenizer) emitBufferedCharactersLiterally() {
	t.emit(characterToken('<'))
	t.emit(characterToken('/'))
	for _, r := range t.buffer.String() {
		t.emit(characterToken(r))
	}
	t.buffer.Reset()
}

func (t *Tokenizer) step() {
	switch t.state {
	case stateData:
		t.stepData()
	case stateRCDATA:
		t.stepRCDATA()
	case stateRAWTEXT:
		t.stepRAWTEXT()
	case stateScriptData:
		t.stepScriptData()
	case statePLAINTEXT:
		t.stepPLAINTEXT()
	case stateTagOpen:
		t.stepTagOpen()
	case stateEndTagOpen:
		t.stepEndTagOpen()
	case stateTagName:
		t.stepTagName()
	case stateRCDATALessThanSign:
		t.stepTextLessThanSign(stateRCDATA, stateRCDATAEndTagOpen)
	case stateRCDATAEndTagOpen:
		t.stepTextEndTagOpen(stateRCDATA, stateRCDATAEndTagName)
	case stateRCDATAEndTagName:
		t.stepTextEndTagName(stateRCDATA)
	case stateRAWTEXTLessThanSign:
		t.stepTextLessThanSign(stateRAWTEXT, stateRAWTEXTEndTagOpen)
	case stateRAWTEXTEndTagOpen:
		t.stepTextEndTagOpen(stateRAWTEXT, stateRAWTEXTEndTagName)
	case stateRAWTEXTEndTagName:
		t.stepTextEndTagName(stateRAWTEXT)
	case stateScriptDataLessThanSign:
		t.stepScriptDataLessThanSign()
	case stateScriptDataEndTagOpen:
		t.stepTextEndTagOpen(stateScriptData, stateScriptDataEndTagName)
	case stateScriptDataEndTagName:
		t.stepTextEndTagName(stateScriptData)
	case stateScriptDataEscapeStart:
		t.stepScriptDataEscapeStart()
	case stateScriptDataEscapeStartDash:
		t.stepScriptDataEscapeStartDash()
	case stateScriptDataEscaped:
		t.stepScriptDataEscaped()
	case stateScriptDataEscapedDash:
		t.stepScriptDataEscapedDash()
	case stateScriptDataEscapedDashDash:
		t.stepScriptDataEscapedDashDash()
	case stateScriptDataEscapedLessThanSign:
		t.stepScriptDataEscapedLessThanSign()
	case stateScriptDataEscapedEndTagOpen:
		t.stepTextEndTagOpen(stateScriptDataEscaped, stateScriptDataEscapedEndTagName)
	case stateScriptDataEscapedEndTagName:
		t.stepTextEndTagName(stateScriptDataEscaped)
	case stateScriptDataDoubleEscapeStart:
		t.stepScriptDataDoubleEscapeStart()
	case stateScriptDataDoubleEscaped:
		t.stepScriptDataDoubleEscaped()
	case stateScriptDataDoubleEscapedDash:
		t.stepScriptDataDoubleEscapedDash()
	case stateScriptDataDoubleEscapedDashDash:
		t.stepScriptDataDoubleEscapedDashDash()
	case stateScriptDataDoubleEscapedLessThanSign:
		t.stepScriptDataDoubleEscapedLessThanSign()
	case stateScriptDataDoubleEscapeEnd:
		t.stepScriptDataDoubleEscapeEnd()
	case stateBeforeAttributeName:
		t.stepBeforeAttributeName()
	case stateAttributeName:
		t.stepAttributeName()
	case stateAfterAttributeName:
		t.stepAfterAttributeName()
	case stateBeforeAttributeValue:
		t.stepBeforeAttributeValue()
	case stateAttributeValueDoublequoted:
		t.stepAttributeValueQuoted('"', stateAttributeValueDoublequoted)
	case stateAttributeValueSinglequoted:
		t.stepAttributeValueQuoted('\'', stateAttributeValueSinglequoted)
	case stateAttributeValueUnquoted:
		t.stepAttributeValueUnquoted()
	case stateAfterAttributeValueQuoted:
		t.stepAfterAttributeValueQuoted()
	case stateSelfClosingStartTag:
		t.stepSelfClosingStartTag()
	case stateBogusComment:
		t.stepBogusComment()
	case stateMarkupDeclarationOpen:
		t.stepMarkupDeclarationOpen()
	case stateCommentStart:
		t.stepCommentStart()
	case stateCommentStartDash:
		t.stepCommentStartDash()
	case stateComment:
		t.stepComment()
	case stateCommentLessThanSign:
		t.stepCommentLessThanSign()
	case stateCommentLessThanSignBang:
		t.stepCommentLessThanSignBang()
	case stateCommentLessThanSignBangDash:
		t.stepCommentLessThanSignBangDash()
	case stateCommentLessThanSignBangDashDash:
		t.stepCommentLessThanSignBangDashDash()
	case stateCommentEndDash:
		t.stepCommentEndDash()
	case stateCommentEnd:
		t.stepCommentEnd()
	case stateCommentEndBang:
		t.stepCommentEndBang()
	case stateDOCTYPE:
		t.stepDOCTYPE()
	case stateBeforeDOCTYPEName:
		t.stepBeforeDOCTYPEName()
	case stateDOCTYPEName:
		t.stepDOCTYPEName()
	case stateAfterDOCTYPEName:
		t.stepAfterDOCTYPEName()
	case stateAfterDOCTYPEPublicKeyword:
		t.stepAfterDOCTYPEPublicKeyword()
	case stateBeforeDOCTYPEPublicIdentifier:
		t.stepBeforeDOCTYPEPublicIdentifier()
	case stateDOCTYPEPublicIdentifierDoublequoted:
		t.stepDOCTYPEPublicIdentifierQuoted('"', stateAfterDOCTYPEPublicIdentifier)
	case stateDOCTYPEPublicIdentifierSinglequoted:
		t.stepDOCTYPEPublicIdentifierQuoted('\'', stateAfterDOCTYPEPublicIdentifier)
	case stateAfterDOCTYPEPublicIdentifier:
		t.stepAfterDOCTYPEPublicIdentifier()
	case stateBetweenDOCTYPEPublicAndSystemIdentifiers:
		t.stepBetweenDOCTYPEPublicAndSystemIdentifiers()
	case stateAfterDOCTYPESystemKeyword:
		t.stepAfterDOCTYPESystemKeyword()
	case stateBeforeDOCTYPESystemIdentifier:
		t.stepBeforeDOCTYPESystemIdentifier()
	case stateDOCTYPESystemIdentifierDoublequoted:
		t.stepDOCTYPESystemIdentifierQuoted('"')
	case stateDOCTYPESystemIdentifierSinglequoted:
		t.stepDOCTYPESystemIdentifierQuoted('\'')
	case stateAfterDOCTYPESystemIdentifier:
		t.stepAfterDOCTYPESystemIdentifier()
	case stateBogusDOCTYPE:
		t.stepBogusDOCTYPE()
	case stateCDATASection:
		t.stepCDATASection()
	case stateCDATASectionBracket:
		t.stepCDATASectionBracket()
	case stateCDATASectionEnd:
		t.stepCDATASectionEnd()
	case stateCharacterReference:
		t.stepCharacterReference()
	case stateNamedCharacterReference:
		t.stepNamedCharacterReference()
	case stateAmbiguousAmpersand:
		t.stepAmbiguousAmpersand()
	case stateNumericCharacterReference:
		t.stepNumericCharacterReference()
	case stateHexadecimalCharacterReferenceStart:
		t.stepHexadecimalCharacterReferenceStart()
	case stateDecimalCharacterReferenceStart:
		t.stepDecimalCharacterReferenceStart()
	case stateHexadecimalCharacterReference:
		t.stepHexadecimalCharacterReference()
	case stateDecimalCharacterReference:
		t.stepDecimalCharacterReference()
	case stateNumericCharacterReferenceEnd:
		t.stepNumericCharacterReferenceEnd()
	}
}
