// Package parseerror defines the closed set of WHATWG validation errors
// shared by the URL parser and the HTML tokenizer/tree-builder, and the
// sink contract both accept to report them.
package parseerror

// Kind enumerates every validation error either parser can report. It is
// a closed set: consumers may safely switch over it exhaustively.
type Kind int

const (
	// URL parser errors.
	MissingSchemeNonRelativeUrl Kind = iota
	SpecialSchemeMissingFollowingSolidus
	InvalidReverseSolidus
	InvalidCredentials
	HostMissing
	PortOutOfRange
	PortInvalid
	InvalidUrlUnit
	FileInvalidWindowsDriveLetter
	FileInvalidWindowsDriveLetterHost

	// HTML tokenizer/tree-builder errors.
	UnexpectedNullCharacter
	EofBeforeTagName
	MissingEndTagName
	AbruptClosingOfEmptyComment
	EofInComment
	NestedComment
	IncorrectlyClosedComment
	IncorrectlyOpenedComment
	MissingDoctypeName
	EofInDoctype
	MissingQuoteBeforeDoctypePublicIdentifier
	MissingQuoteBeforeDoctypeSystemIdentifier
	AbruptDoctypePublicIdentifier
	AbruptDoctypeSystemIdentifier
	MissingDoctypeSystemIdentifier
	MissingDoctypePublicIdentifier
	MissingWhitespaceBeforeDoctypeName
	MissingWhitespaceAfterDoctypePublicKeyword
	MissingWhitespaceAfterDoctypeSystemKeyword
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers
	UnexpectedCharacterAfterDoctypeSystemIdentifier
	InvalidCharacterSequenceAfterDoctypeName
	UnexpectedQuestionMarkInsteadOfTagName
	InvalidFirstCharacterOfTagName
	UnexpectedEqualsSignBeforeAttributeName
	UnexpectedCharacterInAttributeName
	UnexpectedCharacterInUnquotedAttributeValue
	MissingAttributeValue
	MissingWhitespaceBetweenAttributes
	UnexpectedSolidusInTag
	EofInTag
	EofInCdata
	EofInScriptHtmlCommentLikeText
	AbsenceOfDigitsInNumericCharacterReference
	CharacterReferenceOutsideUnicodeRange
	SurrogateCharacterReference
	NoncharacterCharacterReference
	NullCharacterReference
	MissingSemicolonAfterCharacterReference
	UnknownNamedCharacterReference
	ControlCharacterReference
)

var names = map[Kind]string{
	MissingSchemeNonRelativeUrl:           "missing-scheme-non-relative-url",
	SpecialSchemeMissingFollowingSolidus:  "special-scheme-missing-following-solidus",
	InvalidReverseSolidus:                 "invalid-reverse-solidus",
	InvalidCredentials:                    "invalid-credentials",
	HostMissing:                           "host-missing",
	PortOutOfRange:                        "port-out-of-range",
	PortInvalid:                           "port-invalid",
	InvalidUrlUnit:                        "invalid-url-unit",
	FileInvalidWindowsDriveLetter:         "file-invalid-windows-drive-letter",
	FileInvalidWindowsDriveLetterHost:     "file-invalid-windows-drive-letter-host",
	UnexpectedNullCharacter:               "unexpected-null-character",
	EofBeforeTagName:                      "eof-before-tag-name",
	MissingEndTagName:                     "missing-end-tag-name",
	AbruptClosingOfEmptyComment:           "abrupt-closing-of-empty-comment",
	EofInComment:                          "eof-in-comment",
	NestedComment:                         "nested-comment",
	IncorrectlyClosedComment:              "incorrectly-closed-comment",
	IncorrectlyOpenedComment:              "incorrectly-opened-comment",
	MissingDoctypeName:                    "missing-doctype-name",
	EofInDoctype:                          "eof-in-doctype",
	MissingQuoteBeforeDoctypePublicIdentifier:                 "missing-quote-before-doctype-public-identifier",
	MissingQuoteBeforeDoctypeSystemIdentifier:                 "missing-quote-before-doctype-system-identifier",
	AbruptDoctypePublicIdentifier:                             "abrupt-doctype-public-identifier",
	AbruptDoctypeSystemIdentifier:                             "abrupt-doctype-system-identifier",
	MissingDoctypeSystemIdentifier:                            "missing-doctype-system-identifier",
	MissingDoctypePublicIdentifier:                            "missing-doctype-public-identifier",
	MissingWhitespaceBeforeDoctypeName:                        "missing-whitespace-before-doctype-name",
	MissingWhitespaceAfterDoctypePublicKeyword:                "missing-whitespace-after-doctype-public-keyword",
	MissingWhitespaceAfterDoctypeSystemKeyword:                "missing-whitespace-after-doctype-system-keyword",
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers: "missing-whitespace-between-doctype-public-and-system-identifiers",
	UnexpectedCharacterAfterDoctypeSystemIdentifier:           "unexpected-character-after-doctype-system-identifier",
	InvalidCharacterSequenceAfterDoctypeName:                  "invalid-character-sequence-after-doctype-name",
	UnexpectedQuestionMarkInsteadOfTagName:                    "unexpected-question-mark-instead-of-tag-name",
	InvalidFirstCharacterOfTagName:                            "invalid-first-character-of-tag-name",
	UnexpectedEqualsSignBeforeAttributeName:                   "unexpected-equals-sign-before-attribute-name",
	UnexpectedCharacterInAttributeName:                        "unexpected-character-in-attribute-name",
	UnexpectedCharacterInUnquotedAttributeValue:               "unexpected-character-in-unquoted-attribute-value",
	MissingAttributeValue:                                     "missing-attribute-value",
	MissingWhitespaceBetweenAttributes:                        "missing-whitespace-between-attributes",
	UnexpectedSolidusInTag:                                    "unexpected-solidus-in-tag",
	EofInTag:                                                  "eof-in-tag",
	EofInCdata:                                                "eof-in-cdata",
	EofInScriptHtmlCommentLikeText:                            "eof-in-script-html-comment-like-text",
	AbsenceOfDigitsInNumericCharacterReference:                "absence-of-digits-in-numeric-character-reference",
	CharacterReferenceOutsideUnicodeRange:                     "character-reference-outside-unicode-range",
	SurrogateCharacterReference:                               "surrogate-character-reference",
	NoncharacterCharacterReference:                            "noncharacter-character-reference",
	NullCharacterReference:                                    "null-character-reference",
	MissingSemicolonAfterCharacterReference:                   "missing-semicolon-after-character-reference",
	UnknownNamedCharacterReference:                            "unknown-named-character-reference",
	ControlCharacterReference:                                 "control-character-reference",
}

// String renders the kebab-case WHATWG name for the error kind.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown-validation-error"
}

// Handler receives validation errors as parsing proceeds. Validation
// errors are always recoverable: reporting one never alters control flow.
type Handler interface {
	Report(kind Kind)
}

// NopHandler discards every validation error. The zero value is ready to use.
type NopHandler struct{}

// Report implements Handler by doing nothing.
func (NopHandler) Report(Kind) {}

// Collector is a Handler that records every reported kind, in order, for
// tests and diagnostic tooling.
type Collector struct {
	Errors []Kind
}

// Report implements Handler.
func (c *Collector) Report(kind Kind) {
	c.Errors = append(c.Errors, kind)
}

// Count returns how many times kind was reported.
func (c *Collector) Count(kind Kind) int {
	n := 0
	for _, k := range c.Errors {
		if k == kind {
			n++
		}
	}
	return n
}
