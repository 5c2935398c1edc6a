package htmltree

import "github.com/curol/network/htmltoken"

func isTabLineFeedFormFeedSpace(c rune) bool {
	switch c {
	case '\t', '\n', '\f', ' ':
		return true
	}
	return false
}

// modeInitial implements
// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
func (b *Builder) modeInitial(tok htmltoken.Token) {
	switch tok.Kind {
	case htmltoken.KindCharacter:
		if isTabLineFeedFormFeedSpace(tok.Character) {
			return
		}
	case htmltoken.KindComment:
		b.insertComment(tok.Comment, b.document)
		return
	case htmltoken.KindDoctype:
		doctype := b.sink.CreateDoctype(tok.Doctype.Name, tok.Doctype.PublicID, tok.Doctype.SystemID)
		b.sink.AppendChild(b.document, doctype)
		b.mode = ModeBeforeHTML
		return
	}
	b.mode = ModeBeforeHTML
	b.consume(tok)
}

// modeBeforeHTML implements
// https://html.spec.whatwg.org/multipage/parsing.html#the-before-html-insertion-mode
func (b *Builder) modeBeforeHTML(tok htmltoken.Token) {
	switch tok.Kind {
	case htmltoken.KindCharacter:
		if isTabLineFeedFormFeedSpace(tok.Character) {
			return
		}
	case htmltoken.KindComment:
		b.insertComment(tok.Comment, b.document)
		return
	case htmltoken.KindDoctype:
		return
	case htmltoken.KindTag:
		if tok.Tag.Opening && tok.Tag.Name == "html" {
			element := b.createElementForToken(tok.Tag, NamespaceHTML, b.document)
			b.sink.AppendChild(b.document, element)
			b.pushOpenElement(element)
			b.mode = ModeBeforeHead
			return
		}
		if !tok.Tag.Opening && !isOneOf(tok.Tag.Name, "head", "body", "html", "br") {
			return
		}
	}

	html := htmltoken.Tag{Opening: true, Name: "html"}
	element := b.createElementForToken(html, NamespaceHTML, b.document)
	b.sink.AppendChild(b.document, element)
	b.pushOpenElement(element)
	b.mode = ModeBeforeHead
	b.consume(tok)
}

// modeBeforeHead implements
// https://html.spec.whatwg.org/multipage/parsing.html#the-before-head-insertion-mode
func (b *Builder) modeBeforeHead(tok htmltoken.Token) {
	switch tok.Kind {
	case htmltoken.KindCharacter:
		if isTabLineFeedFormFeedSpace(tok.Character) {
			return
		}
	case htmltoken.KindComment:
		b.insertComment(tok.Comment, b.currentNode())
		return
	case htmltoken.KindDoctype:
		return
	case htmltoken.KindTag:
		if tok.Tag.Opening && tok.Tag.Name == "html" {
			b.modeInBody(tok)
			return
		}
		if tok.Tag.Opening && tok.Tag.Name == "head" {
			head := b.insertHTMLElement(tok.Tag)
			b.head = head
			b.hasHead = true
			b.mode = ModeInHead
			return
		}
		if !tok.Tag.Opening && !isOneOf(tok.Tag.Name, "head", "body", "html", "br") {
			return
		}
	}

	headTag := htmltoken.Tag{Opening: true, Name: "head"}
	head := b.insertHTMLElement(headTag)
	b.head = head
	b.hasHead = true
	b.mode = ModeInHead
	b.consume(tok)
}

// modeInHead implements
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inhead
func (b *Builder) modeInHead(tok htmltoken.Token) {
	switch tok.Kind {
	case htmltoken.KindCharacter:
		if isTabLineFeedFormFeedSpace(tok.Character) {
			b.insertCharacter(tok.Character)
			return
		}
	case htmltoken.KindComment:
		b.insertComment(tok.Comment, b.currentNode())
		return
	case htmltoken.KindDoctype:
		return
	case htmltoken.KindTag:
		if tok.Tag.Opening && tok.Tag.Name == "html" {
			b.modeInBody(tok)
			return
		}
		if tok.Tag.Opening && isOneOf(tok.Tag.Name, "base", "basefont", "bgsound", "link") {
			b.insertHTMLElement(tok.Tag)
			b.popOpenElement()
			return
		}
		if tok.Tag.Opening && tok.Tag.Name == "meta" {
			b.insertHTMLElement(tok.Tag)
			b.popOpenElement()
			return
		}
		if tok.Tag.Opening && tok.Tag.Name == "title" {
			b.insertHTMLElement(tok.Tag)
			b.tok.SwitchToRCDATA()
			b.originalMode = b.mode
			b.mode = ModeText
			return
		}
		if tok.Tag.Opening && (tok.Tag.Name == "noframes" || tok.Tag.Name == "style") {
			b.insertHTMLElement(tok.Tag)
			b.tok.SwitchToRAWTEXT()
			b.originalMode = b.mode
			b.mode = ModeText
			return
		}
		if tok.Tag.Opening && tok.Tag.Name == "noscript" {
			b.insertHTMLElement(tok.Tag)
			if b.scripting {
				b.tok.SwitchToRAWTEXT()
				b.originalMode = b.mode
				b.mode = ModeText
			} else {
				b.mode = ModeInHeadNoscript
			}
			return
		}
		if tok.Tag.Opening && tok.Tag.Name == "script" {
			b.insertHTMLElement(tok.Tag)
			b.tok.SwitchToScriptData()
			b.originalMode = b.mode
			b.mode = ModeText
			return
		}
		if !tok.Tag.Opening && tok.Tag.Name == "head" {
			b.popOpenElement()
			b.mode = ModeAfterHead
			return
		}
		if !tok.Tag.Opening && isOneOf(tok.Tag.Name, "body", "html", "br") {
			b.popOpenElement()
			b.mode = ModeAfterHead
			b.consume(tok)
			return
		}
		if tok.Tag.Opening && tok.Tag.Name == "template" {
			b.afe.insertMarker()
			b.framesetOK = false
			b.insertHTMLElement(tok.Tag)
			b.mode = ModeInTemplate
			return
		}
		if !tok.Tag.Opening && tok.Tag.Name == "template" {
			if !b.hasElementInScope("template") {
				return
			}
			b.generateImpliedEndTags()
			for b.currentNodeName() != "template" {
				b.popOpenElement()
			}
			b.popOpenElement()
			b.afe.clearToLastMarker()
			return
		}
		if (tok.Tag.Opening && tok.Tag.Name == "head") || (!tok.Tag.Opening) {
			return
		}
	}

	b.popOpenElement()
	b.mode = ModeAfterHead
	b.consume(tok)
}

// modeInHeadNoscript implements
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inheadnoscript
func (b *Builder) modeInHeadNoscript(tok htmltoken.Token) {
	switch tok.Kind {
	case htmltoken.KindDoctype:
		return
	case htmltoken.KindComment:
		b.modeInHead(tok)
		return
	case htmltoken.KindCharacter:
		if isTabLineFeedFormFeedSpace(tok.Character) {
			b.modeInHead(tok)
			return
		}
	case htmltoken.KindTag:
		if tok.Tag.Opening && tok.Tag.Name == "html" {
			b.modeInBody(tok)
			return
		}
		if !tok.Tag.Opening && tok.Tag.Name == "noscript" {
			b.popOpenElement()
			b.mode = ModeInHead
			return
		}
		if tok.Tag.Opening && isOneOf(tok.Tag.Name, "basefont", "bgsound", "link", "meta", "noframes", "style") {
			b.modeInHead(tok)
			return
		}
		if !tok.Tag.Opening && tok.Tag.Name == "br" {
			// falls through to anything-else below
		} else if tok.Tag.Opening && isOneOf(tok.Tag.Name, "head", "noscript") {
			return
		} else if !tok.Tag.Opening {
			return
		}
	}

	b.popOpenElement()
	b.mode = ModeInHead
	b.consume(tok)
}

// modeAfterHead implements
// https://html.spec.whatwg.org/multipage/parsing.html#the-after-head-insertion-mode
func (b *Builder) modeAfterHead(tok htmltoken.Token) {
	switch tok.Kind {
	case htmltoken.KindCharacter:
		if isTabLineFeedFormFeedSpace(tok.Character) {
			b.insertCharacter(tok.Character)
			return
		}
	case htmltoken.KindComment:
		b.insertComment(tok.Comment, b.currentNode())
		return
	case htmltoken.KindDoctype:
		return
	case htmltoken.KindTag:
		if tok.Tag.Opening && tok.Tag.Name == "html" {
			b.modeInBody(tok)
			return
		}
		if tok.Tag.Opening && tok.Tag.Name == "body" {
			b.insertHTMLElement(tok.Tag)
			b.framesetOK = false
			b.mode = ModeInBody
			return
		}
		if tok.Tag.Opening && tok.Tag.Name == "frameset" {
			b.insertHTMLElement(tok.Tag)
			b.mode = ModeInFrameset
			return
		}
		if tok.Tag.Opening && isOneOf(tok.Tag.Name,
			"base", "basefont", "bgsound", "link", "meta", "noframes",
			"script", "style", "template", "title") {
			b.pushOpenElement(b.head)
			b.modeInHead(tok)
			if idx, ok := b.indexInOpenElements(b.head); ok {
				b.removeOpenElementAt(idx)
			}
			return
		}
		if !tok.Tag.Opening && tok.Tag.Name == "template" {
			b.modeInHead(tok)
			return
		}
		if !tok.Tag.Opening && isOneOf(tok.Tag.Name, "body", "html", "br") {
			// fall through to anything-else
		} else if tok.Tag.Opening && tok.Tag.Name == "head" {
			return
		} else if !tok.Tag.Opening {
			return
		}
	}

	bodyTag := htmltoken.Tag{Opening: true, Name: "body"}
	b.insertHTMLElement(bodyTag)
	b.mode = ModeInBody
	b.consume(tok)
}

func isOneOf(name string, candidates ...string) bool {
	for _, c := range candidates {
		if name == c {
			return true
		}
	}
	return false
}
