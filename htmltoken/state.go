package htmltoken

// stateID names one of the tokenizer's states. The set and names mirror
// the WHATWG HTML parsing spec's tokenizer section one-for-one.
type stateID int

const (
	stateData stateID = iota
	stateRCDATA
	stateRAWTEXT
	stateScriptData
	statePLAINTEXT
	stateTagOpen
	stateEndTagOpen
	stateTagName
	stateRCDATALessThanSign
	stateRCDATAEndTagOpen
	stateRCDATAEndTagName
	stateRAWTEXTLessThanSign
	stateRAWTEXTEndTagOpen
	stateRAWTEXTEndTagName
	stateScriptDataLessThanSign
	stateScriptDataEndTagOpen
	stateScriptDataEndTagName
	stateScriptDataEscapeStart
	stateScriptDataEscapeStartDash
	stateScriptDataEscaped
	stateScriptDataEscapedDash
	stateScriptDataEscapedDashDash
	stateScriptDataEscapedLessThanSign
	stateScriptDataEscapedEndTagOpen
	stateScriptDataEscapedEndTagName
	stateScriptDataDoubleEscapeStart
	stateScriptDataDoubleEscaped
	stateScriptDataDoubleEscapedDash
	stateScriptDataDoubleEscapedDashDash
	stateScriptDataDoubleEscapedLessThanSign
	stateScriptDataDoubleEscapeEnd
	stateBeforeAttributeName
	stateAttributeName
	stateAfterAttributeName
	stateBeforeAttributeValue
	stateAttributeValueDoublequoted
	stateAttributeValueSinglequoted
	stateAttributeValueUnquoted
	stateAfterAttributeValueQuoted
	stateSelfClosingStartTag
	stateBogusComment
	stateMarkupDeclarationOpen
	stateCommentStart
	stateCommentStartDash
	stateComment
	stateCommentLessThanSign
	stateCommentLessThanSignBang
	stateCommentLessThanSignBangDash
	stateCommentLessThanSignBangDashDash
	stateCommentEndDash
	stateCommentEnd
	stateCommentEndBang
	stateDOCTYPE
	stateBeforeDOCTYPEName
	stateDOCTYPEName
	stateAfterDOCTYPEName
	stateAfterDOCTYPEPublicKeyword
	stateBeforeDOCTYPEPublicIdentifier
	stateDOCTYPEPublicIdentifierDoublequoted
	stateDOCTYPEPublicIdentifierSinglequoted
	stateAfterDOCTYPEPublicIdentifier
	stateBetweenDOCTYPEPublicAndSystemIdentifiers
	stateAfterDOCTYPESystemKeyword
	stateBeforeDOCTYPESystemIdentifier
	stateDOCTYPESystemIdentifierDoublequoted
	stateDOCTYPESystemIdentifierSinglequoted
	stateAfterDOCTYPESystemIdentifier
	stateBogusDOCTYPE
	stateCDATASection
	stateCDATASectionBracket
	stateCDATASectionEnd
	stateCharacterReference
	stateNamedCharacterReference
	stateAmbiguousAmpersand
	stateNumericCharacterReference
	stateHexadecimalCharacterReferenceStart
	stateDecimalCharacterReferenceStart
	stateHexadecimalCharacterReference
	stateDecimalCharacterReference
	stateNumericCharacterReferenceEnd
)

const replacementChar = '�'

func isWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', ' ':
		return true
	}
	return false
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIAlpha(r rune) bool { return isASCIIUpper(r) || isASCIILower(r) }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
func isASCIIAlnum(r rune) bool { return isASCIIAlpha(r) || isASCIIDigit(r) }
func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func toASCIILower(r rune) rune {
	if isASCIIUpper(r) {
		return r + 0x20
	}
	return r
}
