package htmltree

import "github.com/curol/network/htmltoken"

var addressFamilyElements = []string{
	"address", "article", "aside", "blockquote", "center", "details", "dialog",
	"dir", "div", "dl", "fieldset", "figcaption", "figure", "footer", "header",
	"hgroup", "main", "menu", "nav", "ol", "p", "section", "summary", "ul",
}

var headingElements = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

var formattingTags = []string{
	"a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small",
	"strike", "strong", "tt", "u",
}

var voidLikeTags = []string{"area", "br", "embed", "img", "keygen", "wbr"}

// modeInBody implements
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inbody
func (b *Builder) modeInBody(tok htmltoken.Token) {
	switch tok.Kind {
	case htmltoken.KindCharacter:
		if tok.Character == 0 {
			return
		}
		b.reconstructActiveFormattingElements()
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
		b.modeInBodyTag(tok.Tag)
		return
	}
}

func (b *Builder) modeInBodyTag(tag htmltoken.Tag) {
	name := tag.Name

	if tag.Opening && name == "html" {
		return
	}
	if tag.Opening && isOneOf(name, "base", "basefont", "bgsound", "link", "meta",
		"noframes", "script", "style", "template", "title") {
		b.modeInHead(htmltoken.Token{Kind: htmltoken.KindTag, Tag: tag})
		return
	}
	if !tag.Opening && name == "template" {
		b.modeInHead(htmltoken.Token{Kind: htmltoken.KindTag, Tag: tag})
		return
	}
	if tag.Opening && name == "body" {
		b.framesetOK = false
		return
	}
	if tag.Opening && name == "frameset" {
		return
	}
	if !tag.Opening && name == "body" {
		if !b.hasElementInScope("body") {
			return
		}
		b.mode = ModeAfterBody
		return
	}
	if !tag.Opening && name == "html" {
		if !b.hasElementInScope("body") {
			return
		}
		b.mode = ModeAfterBody
		b.consume(htmltoken.Token{Kind: htmltoken.KindTag, Tag: tag})
		return
	}
	if tag.Opening && isOneOf(name, addressFamilyElements...) {
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(tag)
		return
	}
	if tag.Opening && isOneOf(name, headingElements...) {
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		if isOneOf(b.currentNodeName(), headingElements...) {
			b.popOpenElement()
		}
		b.insertHTMLElement(tag)
		return
	}
	if !tag.Opening && isOneOf(name, headingElements...) {
		if !b.hasElementInScopeAny(headingElements) {
			return
		}
		b.generateImpliedEndTags()
		for !isOneOf(b.currentNodeName(), headingElements...) {
			b.popOpenElement()
		}
		b.popOpenElement()
		return
	}
	if tag.Opening && isOneOf(name, "pre", "listing") {
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(tag)
		b.framesetOK = false
		return
	}
	if tag.Opening && name == "form" {
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(tag)
		return
	}
	if !tag.Opening && name == "form" {
		if !b.hasElementInScope("form") {
			return
		}
		b.generateImpliedEndTags()
		if idx, ok := b.indexInOpenElements(b.topMostNamed("form")); ok {
			b.removeOpenElementAt(idx)
		}
		return
	}
	if tag.Opening && name == "li" {
		b.closeListItem("li")
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(tag)
		return
	}
	if !tag.Opening && name == "li" {
		if !b.hasElementInListItemScope("li") {
			return
		}
		b.generateImpliedEndTagsExcept("li")
		for b.currentNodeName() != "li" {
			b.popOpenElement()
		}
		b.popOpenElement()
		return
	}
	if tag.Opening && isOneOf(name, "dd", "dt") {
		b.closeListItem(name)
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(tag)
		return
	}
	if !tag.Opening && isOneOf(name, "dd", "dt") {
		if !b.hasElementInScope(name) {
			return
		}
		b.generateImpliedEndTagsExcept(name)
		for b.currentNodeName() != name {
			b.popOpenElement()
		}
		b.popOpenElement()
		return
	}
	if tag.Opening && name == "plaintext" {
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(tag)
		b.tok.SwitchToPLAINTEXT()
		return
	}
	if tag.Opening && name == "button" {
		if b.hasElementInScope("button") {
			b.generateImpliedEndTags()
			b.popUntilPopped("button")
		}
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(tag)
		b.framesetOK = false
		return
	}
	if !tag.Opening && isOneOf(name, addressFamilyElements...) && name != "p" {
		if !b.hasElementInScope(name) {
			return
		}
		b.generateImpliedEndTags()
		for b.currentNodeName() != name {
			b.popOpenElement()
		}
		b.popOpenElement()
		return
	}
	if !tag.Opening && name == "p" {
		if !b.hasElementInButtonScope("p") {
			b.insertHTMLElement(htmltoken.Tag{Opening: true, Name: "p"})
		}
		b.closePElement()
		return
	}
	if tag.Opening && name == "a" {
		if _, entry, found := b.afe.lastMatchSinceMarker("a"); found {
			b.runAdoptionAgency(htmltoken.Tag{Opening: false, Name: "a"})
			b.afe.removeHandle(entry.handle)
			b.removeOpenElementByHandle(entry.handle)
		}
		b.reconstructActiveFormattingElements()
		element := b.insertHTMLElement(tag)
		b.afe.push(element, tag)
		return
	}
	if tag.Opening && isOneOf(name, formattingTags...) {
		b.reconstructActiveFormattingElements()
		element := b.insertHTMLElement(tag)
		b.afe.push(element, tag)
		return
	}
	if !tag.Opening && isOneOf(name, formattingTags...) {
		b.runAdoptionAgency(tag)
		return
	}
	if tag.Opening && isOneOf(name, "applet", "marquee", "object") {
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(tag)
		b.afe.insertMarker()
		b.framesetOK = false
		return
	}
	if !tag.Opening && isOneOf(name, "applet", "marquee", "object") {
		if !b.hasElementInScope(name) {
			return
		}
		b.generateImpliedEndTags()
		for b.currentNodeName() != name {
			b.popOpenElement()
		}
		b.popOpenElement()
		b.afe.clearToLastMarker()
		return
	}
	if tag.Opening && name == "table" {
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(tag)
		b.framesetOK = false
		b.mode = ModeInTable
		return
	}
	if !tag.Opening && name == "br" {
		tag.Attributes = nil
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(tag)
		b.popOpenElement()
		b.framesetOK = false
		return
	}
	if tag.Opening && isOneOf(name, voidLikeTags...) {
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(tag)
		b.popOpenElement()
		b.framesetOK = false
		return
	}
	if tag.Opening && name == "input" {
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(tag)
		b.popOpenElement()
		if !isHiddenInputType(tag) {
			b.framesetOK = false
		}
		return
	}
	if tag.Opening && isOneOf(name, "param", "source", "track") {
		b.insertHTMLElement(tag)
		b.popOpenElement()
		return
	}
	if tag.Opening && name == "hr" {
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(tag)
		b.popOpenElement()
		b.framesetOK = false
		return
	}
	if tag.Opening && name == "image" {
		tag.Name = "img"
		b.consume(htmltoken.Token{Kind: htmltoken.KindTag, Tag: tag})
		return
	}
	if tag.Opening && name == "textarea" {
		b.insertHTMLElement(tag)
		b.tok.SwitchToRCDATA()
		b.originalMode = b.mode
		b.framesetOK = false
		b.mode = ModeText
		return
	}
	if tag.Opening && isOneOf(name, "xmp", "iframe") {
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		b.reconstructActiveFormattingElements()
		b.framesetOK = false
		b.insertHTMLElement(tag)
		b.tok.SwitchToRAWTEXT()
		b.originalMode = b.mode
		b.mode = ModeText
		return
	}
	if tag.Opening && isOneOf(name, "noembed", "noframes") {
		b.insertHTMLElement(tag)
		b.tok.SwitchToRAWTEXT()
		b.originalMode = b.mode
		b.mode = ModeText
		return
	}
	if tag.Opening && name == "select" {
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(tag)
		b.framesetOK = false
		switch b.mode {
		case ModeInTable, ModeInCaption, ModeInTableBody, ModeInRow, ModeInCell:
			b.mode = ModeInSelectInTable
		default:
			b.mode = ModeInSelect
		}
		return
	}
	if tag.Opening && isOneOf(name, "optgroup", "option") {
		if b.currentNodeName() == "option" {
			b.popOpenElement()
		}
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(tag)
		return
	}
	if tag.Opening && isOneOf(name, "rb", "rtc") {
		if b.hasElementInScope("ruby") {
			b.generateImpliedEndTags()
		}
		b.insertHTMLElement(tag)
		return
	}
	if tag.Opening && isOneOf(name, "rp", "rt") {
		if b.hasElementInScope("ruby") {
			b.generateImpliedEndTagsExcept("rtc")
		}
		b.insertHTMLElement(tag)
		return
	}
	if tag.Opening && isOneOf(name, "math", "svg") {
		ns := NamespaceMathML
		if name == "svg" {
			ns = NamespaceSVG
		}
		b.reconstructActiveFormattingElements()
		b.insertForeignElement(tag, ns)
		if tag.SelfClosing {
			b.popOpenElement()
		}
		return
	}
	if tag.Opening && isOneOf(name, "caption", "col", "colgroup", "frame", "head",
		"tbody", "td", "tfoot", "th", "thead", "tr") {
		return
	}
	if tag.Opening {
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(tag)
		return
	}
	// Any other end tag.
	if isOneOf(name, formattingTags...) {
		b.runAdoptionAgency(tag)
		return
	}
	b.anyOtherEndTagInBody(tag)
}

func (b *Builder) hasElementInScopeAny(names []string) bool {
	for _, n := range names {
		if b.hasElementInScope(n) {
			return true
		}
	}
	return false
}

func (b *Builder) topMostNamed(name string) NodeHandle {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		if b.sink.ElementLocalName(b.openElements[i]) == name {
			return b.openElements[i]
		}
	}
	return nil
}

func (b *Builder) removeOpenElementByHandle(h NodeHandle) {
	if idx, ok := b.indexInOpenElements(h); ok {
		b.removeOpenElementAt(idx)
	}
}

func (b *Builder) popUntilPopped(name string) {
	for {
		popped := b.popOpenElement()
		if b.sink.ElementLocalName(popped) == name {
			return
		}
	}
}

// closeListItem implements the li/dd/dt "in scope" loop from
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inbody
// prior to inserting a new li/dd/dt element.
func (b *Builder) closeListItem(kind string) {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		name := b.sink.ElementLocalName(b.openElements[i])
		if kind == "li" && name == "li" {
			b.generateImpliedEndTagsExcept("li")
			for b.currentNodeName() != "li" {
				b.popOpenElement()
			}
			b.popOpenElement()
			return
		}
		if kind != "li" && (name == "dd" || name == "dt") {
			b.generateImpliedEndTagsExcept(name)
			for b.currentNodeName() != name {
				b.popOpenElement()
			}
			b.popOpenElement()
			return
		}
		if specialElements[name] && !isOneOf(name, "address", "div", "p") {
			return
		}
	}
}

func isHiddenInputType(tag htmltoken.Tag) bool {
	for _, a := range tag.Attributes {
		if a.Name == "type" {
			return equalFoldASCII(a.Value, "hidden")
		}
	}
	return false
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// modeText implements
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incdata
func (b *Builder) modeText(tok htmltoken.Token) {
	switch tok.Kind {
	case htmltoken.KindCharacter:
		b.insertCharacter(tok.Character)
	case htmltoken.KindEOF:
		b.popOpenElement()
		b.mode = b.originalMode
		b.consume(tok)
	case htmltoken.KindTag:
		if !tok.Tag.Opening {
			b.popOpenElement()
			b.mode = b.originalMode
			return
		}
	}
}

// modeAfterBody implements
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterbody
func (b *Builder) modeAfterBody(tok htmltoken.Token) {
	switch tok.Kind {
	case htmltoken.KindCharacter:
		if isTabLineFeedFormFeedSpace(tok.Character) {
			b.modeInBody(tok)
			return
		}
	case htmltoken.KindComment:
		b.insertComment(tok.Comment, b.openElements[0])
		return
	case htmltoken.KindDoctype:
		return
	case htmltoken.KindTag:
		if tok.Tag.Opening && tok.Tag.Name == "html" {
			b.modeInBody(tok)
			return
		}
		if !tok.Tag.Opening && tok.Tag.Name == "html" {
			b.mode = ModeAfterAfterBody
			return
		}
	case htmltoken.KindEOF:
		b.done = true
		return
	}
	b.mode = ModeInBody
	b.consume(tok)
}

// modeAfterAfterBody implements
// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-body-insertion-mode
func (b *Builder) modeAfterAfterBody(tok htmltoken.Token) {
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
			return
		}
	case htmltoken.KindTag:
		if tok.Tag.Opening && tok.Tag.Name == "html" {
			b.modeInBody(tok)
			return
		}
	case htmltoken.KindEOF:
		b.done = true
		return
	}
	b.mode = ModeInBody
	b.consume(tok)
}
