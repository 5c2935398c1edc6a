package htmltoken

import (
	"github.com/curol/network/cursor"
	"github.com/curol/network/parseerror"
)

func (t *Tokenizer) stepScriptDataLessThanSign() {
	switch t.readNext() {
	case '/':
		t.buffer.Reset()
		t.switchTo(stateScriptDataEndTagOpen)
	case '!':
		t.switchTo(stateScriptDataEscapeStart)
		t.emit(characterToken('<'))
		t.emit(characterToken('!'))
	default:
		t.emit(characterToken('<'))
		t.reconsumeIn(stateScriptData)
	}
}

func (t *Tokenizer) stepScriptDataEscapeStart() {
	if t.readNext() == '-' {
		t.switchTo(stateScriptDataEscapeStartDash)
		t.emit(characterToken('-'))
		return
	}
	t.reconsumeIn(stateScriptData)
}

func (t *Tokenizer) stepScriptDataEscapeStartDash() {
	if t.readNext() == '-' {
		t.switchTo(stateScriptDataEscapedDashDash)
		t.emit(characterToken('-'))
		return
	}
	t.reconsumeIn(stateScriptData)
}

func (t *Tokenizer) stepScriptDataEscaped() {
	switch r := t.readNext(); r {
	case '-':
		t.switchTo(stateScriptDataEscapedDash)
		t.emit(characterToken('-'))
	case '<':
		t.switchTo(stateScriptDataEscapedLessThanSign)
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.emit(characterToken(replacementChar))
	case cursor.EOF:
		t.errs.Report(parseerror.EofInScriptHtmlCommentLikeText)
		t.emit(eofToken())
	default:
		t.emit(characterToken(r))
	}
}

func (t *Tokenizer) stepScriptDataEscapedDash() {
	switch r := t.readNext(); r {
	case '-':
		t.switchTo(stateScriptDataEscapedDashDash)
		t.emit(characterToken('-'))
	case '<':
		t.switchTo(stateScriptDataEscapedLessThanSign)
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.switchTo(stateScriptDataEscaped)
		t.emit(characterToken(replacementChar))
	case cursor.EOF:
		t.errs.Report(parseerror.EofInScriptHtmlCommentLikeText)
		t.emit(eofToken())
	default:
		t.switchTo(stateScriptDataEscaped)
		t.emit(characterToken(r))
	}
}

func (t *Tokenizer) stepScriptDataEscapedDashDash() {
	switch r := t.readNext(); r {
	case '-':
		t.emit(characterToken('-'))
	case '<':
		t.switchTo(stateScriptDataEscapedLessThanSign)
	case '>':
		t.switchTo(stateScriptData)
		t.emit(characterToken('>'))
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.switchTo(stateScriptDataEscaped)
		t.emit(characterToken(replacementChar))
	case cursor.EOF:
		t.errs.Report(parseerror.EofInScriptHtmlCommentLikeText)
		t.emit(eofToken())
	default:
		t.switchTo(stateScriptDataEscaped)
		t.emit(characterToken(r))
	}
}

func (t *Tokenizer) stepScriptDataEscapedLessThanSign() {
	switch r := t.readNext(); {
	case r == '/':
		t.buffer.Reset()
		t.switchTo(stateScriptDataEscapedEndTagOpen)
	case isASCIIAlpha(r):
		t.buffer.Reset()
		t.emit(characterToken('<'))
		t.reconsumeIn(stateScriptDataDoubleEscapeStart)
	default:
		t.emit(characterToken('<'))
		t.reconsumeIn(stateScriptDataEscaped)
	}
}

func (t *Tokenizer) stepScriptDataDoubleEscapeStart() {
	switch r := t.readNext(); {
	case isWhitespace(r) || r == '/' || r == '>':
		if t.buffer.String() == "script" {
			t.switchTo(stateScriptDataDoubleEscaped)
		} else {
			t.switchTo(stateScriptDataEscaped)
		}
		t.emit(characterToken(r))
	case isASCIIUpper(r):
		t.buffer.WriteRune(toASCIILower(r))
		t.emit(characterToken(r))
	case isASCIILower(r):
		t.buffer.WriteRune(r)
		t.emit(characterToken(r))
	default:
		t.reconsumeIn(stateScriptDataEscaped)
	}
}

func (t *Tokenizer) stepScriptDataDoubleEscaped() {
	switch r := t.readNext(); r {
	case '-':
		t.switchTo(stateScriptDataDoubleEscapedDash)
		t.emit(characterToken('-'))
	case '<':
		t.switchTo(stateScriptDataDoubleEscapedLessThanSign)
		t.emit(characterToken('<'))
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.emit(characterToken(replacementChar))
	case cursor.EOF:
		t.errs.Report(parseerror.EofInScriptHtmlCommentLikeText)
		t.emit(eofToken())
	default:
		t.emit(characterToken(r))
	}
}

func (t *Tokenizer) stepScriptDataDoubleEscapedDash() {
	switch r := t.readNext(); r {
	case '-':
		t.switchTo(stateScriptDataDoubleEscapedDashDash)
		t.emit(characterToken('-'))
	case '<':
		t.switchTo(stateScriptDataDoubleEscapedLessThanSign)
		t.emit(characterToken('<'))
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.switchTo(stateScriptDataDoubleEscaped)
		t.emit(characterToken(replacementChar))
	case cursor.EOF:
		t.errs.Report(parseerror.EofInScriptHtmlCommentLikeText)
		t.emit(eofToken())
	default:
		t.switchTo(stateScriptDataDoubleEscaped)
		t.emit(characterToken(r))
	}
}

func (t *Tokenizer) stepScriptDataDoubleEscapedDashDash() {
	switch r := t.readNext(); r {
	case '-':
		t.emit(characterToken('-'))
	case '<':
		t.switchTo(stateScriptDataDoubleEscapedLessThanSign)
		t.emit(characterToken('<'))
	case '>':
		t.switchTo(stateScriptData)
		t.emit(characterToken('>'))
	case 0:
		t.errs.Report(parseerror.UnexpectedNullCharacter)
		t.switchTo(stateScriptDataDoubleEscaped)
		t.emit(characterToken(replacementChar))
	case cursor.EOF:
		t.errs.Report(parseerror.EofInScriptHtmlCommentLikeText)
		t.emit(eofToken())
	default:
		t.switchTo(stateScriptDataDoubleEscaped)
		t.emit(characterToken(r))
	}
}

func (t *Tokenizer) stepScriptDataDoubleEscapedLessThanSign() {
	if t.readNext() == '/' {
		t.buffer.Reset()
		t.switchTo(stateScriptDataDoubleEscapeEnd)
		t.emit(characterToken('/'))
		return
	}
	t.reconsumeIn(stateScriptDataDoubleEscaped)
}

func (t *Tokenizer) stepScriptDataDoubleEscapeEnd() {
	switch r := t.readNext(); {
	case isWhitespace(r) || r == '/' || r == '>':
		if t.buffer.String() == "script" {
			t.switchTo(stateScriptDataEscaped)
		} else {
			t.switchTo(stateScriptDataDoubleEscaped)
		}
		t.emit(characterToken(r))
	case isASCIIUpper(r):
		t.buffer.WriteRune(toASCIILower(r))
		t.emit(characterToken(r))
	case isASCIILower(r):
		t.buffer.WriteRune(r)
		t.emit(characterToken(r))
	default:
		t.reconsumeIn(stateScriptDataDoubleEscaped)
	}
}
