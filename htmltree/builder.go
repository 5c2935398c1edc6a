package htmltree

import (
	"github.com/curol/network/htmltoken"
	"github.com/curol/network/internal/telemetry"
	"github.com/curol/network/parseerror"
)

var tracer = telemetry.New("htmltree")

// InsertionMode is the tree construction stage's current parse state.
// https://html.spec.whatwg.org/multipage/parsing.html#parse-state
type InsertionMode int

const (
	ModeInitial InsertionMode = iota
	ModeBeforeHTML
	ModeBeforeHead
	ModeInHead
	ModeInHeadNoscript
	ModeAfterHead
	ModeInBody
	ModeText
	ModeInTable
	ModeInTableText
	ModeInCaption
	ModeInColumnGroup
	ModeInTableBody
	ModeInRow
	ModeInCell
	ModeInSelect
	ModeInSelectInTable
	ModeInTemplate
	ModeAfterBody
	ModeInFrameset
	ModeAfterFrameset
	ModeAfterAfterBody
	ModeAfterAfterFrameset
)

// Options configures a Parse call.
type Options struct {
	// Scripting, when true, makes noscript content parse as raw text
	// instead of being traversed as markup.
	Scripting bool
}

// Builder drives a DomSink through the tree construction stage, consuming
// tokens produced by htmltoken.Tokenizer.
type Builder struct {
	sink DomSink
	errs parseerror.Handler
	tok  *htmltoken.Tokenizer

	scripting bool

	document NodeHandle

	mode         InsertionMode
	originalMode InsertionMode

	openElements []NodeHandle
	head         NodeHandle
	hasHead      bool
	framesetOK   bool

	afe activeFormattingElements

	done bool
}

// Parse runs the tree construction stage over input and returns the
// document node. The HTML parser never fails: every input, however
// malformed, produces some DOM plus validation diagnostics on errs.
func Parse(input string, sink DomSink, errs parseerror.Handler, opts Options) NodeHandle {
	if errs == nil {
		errs = parseerror.NopHandler{}
	}
	b := &Builder{
		sink:       sink,
		errs:       errs,
		scripting:  opts.Scripting,
		mode:       ModeInitial,
		framesetOK: true,
	}
	b.document = sink.CreateDocument()
	b.tok = htmltoken.New(input, errs)

	for {
		tok := b.tok.Next()
		tracer.Trace("consume", map[string]any{"mode": b.mode, "kind": tok.Kind})
		b.consume(tok)
		if b.done || tok.Kind == htmltoken.KindEOF {
			break
		}
	}
	return b.document
}

func (b *Builder) consume(tok htmltoken.Token) {
	b.consumeInMode(b.mode, tok)
}

func (b *Builder) consumeInMode(mode InsertionMode, tok htmltoken.Token) {
	switch mode {
	case ModeInitial:
		b.modeInitial(tok)
	case ModeBeforeHTML:
		b.modeBeforeHTML(tok)
	case ModeBeforeHead:
		b.modeBeforeHead(tok)
	case ModeInHead:
		b.modeInHead(tok)
	case ModeInHeadNoscript:
		b.modeInHeadNoscript(tok)
	case ModeAfterHead:
		b.modeAfterHead(tok)
	case ModeInBody:
		b.modeInBody(tok)
	case ModeText:
		b.modeText(tok)
	case ModeAfterBody:
		b.modeAfterBody(tok)
	case ModeAfterAfterBody:
		b.modeAfterAfterBody(tok)
	case ModeInTable, ModeInTableText, ModeInCaption, ModeInColumnGroup,
		ModeInTableBody, ModeInRow, ModeInCell:
		b.modeTableFamily(mode, tok)
	case ModeInSelect, ModeInSelectInTable:
		b.modeSelectFamily(mode, tok)
	case ModeInTemplate:
		b.modeInTemplate(tok)
	case ModeInFrameset:
		b.modeInFrameset(tok)
	case ModeAfterFrameset:
		b.modeAfterFrameset(tok)
	case ModeAfterAfterFrameset:
		b.modeAfterAfterFrameset(tok)
	}
}

func (b *Builder) currentNode() NodeHandle {
	return b.openElements[len(b.openElements)-1]
}

func (b *Builder) currentNodeName() string {
	if len(b.openElements) == 0 {
		return ""
	}
	return b.sink.ElementLocalName(b.currentNode())
}

func (b *Builder) pushOpenElement(h NodeHandle) {
	b.openElements = append(b.openElements, h)
}

func (b *Builder) popOpenElement() NodeHandle {
	n := len(b.openElements)
	h := b.openElements[n-1]
	b.openElements = b.openElements[:n-1]
	return h
}

func (b *Builder) removeOpenElementAt(idx int) {
	b.openElements = append(b.openElements[:idx], b.openElements[idx+1:]...)
}

func (b *Builder) indexInOpenElements(h NodeHandle) (int, bool) {
	for i, e := range b.openElements {
		if e == h {
			return i, true
		}
	}
	return 0, false
}

func (b *Builder) isInOpenElements(h NodeHandle) bool {
	_, ok := b.indexInOpenElements(h)
	return ok
}

// insertCharacter implements
// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-character
func (b *Builder) insertCharacter(c rune) {
	target := b.currentNode()
	if last, ok := b.sink.LastChild(target); ok && b.sink.IsText(last) {
		b.sink.AppendText(last, c)
		return
	}
	doc := b.sink.OwnerDocument(target)
	text := b.sink.CreateText(doc)
	b.sink.AppendText(text, c)
	b.sink.AppendChild(target, text)
}

// insertComment implements
// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-comment
// target defaults to the current node; pass b.document explicitly for the
// initial/after-after-body modes, which insert directly under the document.
func (b *Builder) insertComment(data string, target NodeHandle) {
	doc := b.ownerDocumentOf(target)
	comment := b.sink.CreateComment(doc)
	b.sink.AppendComment(comment, data)
	b.sink.AppendChild(target, comment)
}

func (b *Builder) ownerDocumentOf(h NodeHandle) NodeHandle {
	if h == b.document {
		return b.document
	}
	return b.sink.OwnerDocument(h)
}

func (b *Builder) createElementForToken(tag htmltoken.Tag, ns Namespace, intendedParent NodeHandle) NodeHandle {
	doc := b.ownerDocumentOf(intendedParent)
	return b.sink.CreateElement(doc, tag.Name, ns, "", "")
}

// insertForeignElement implements
// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-foreign-element
func (b *Builder) insertForeignElement(tag htmltoken.Tag, ns Namespace) NodeHandle {
	target := b.currentNode()
	element := b.createElementForToken(tag, ns, target)
	b.sink.AppendChild(target, element)
	b.pushOpenElement(element)
	return element
}

func (b *Builder) insertHTMLElement(tag htmltoken.Tag) NodeHandle {
	return b.insertForeignElement(tag, NamespaceHTML)
}

func (b *Builder) hasElementInScope(target string) bool {
	return b.hasElementInSpecificScope(target, defaultScope)
}

func (b *Builder) hasElementInButtonScope(target string) bool {
	return b.hasElementInSpecificScope(target, buttonScope)
}

func (b *Builder) hasElementInListItemScope(target string) bool {
	return b.hasElementInSpecificScope(target, listItemScope)
}

func (b *Builder) hasElementInTableScope(target string) bool {
	return b.hasElementInSpecificScope(target, tableScope)
}

func (b *Builder) hasElementInSpecificScope(target string, scope map[string]bool) bool {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		name := b.sink.ElementLocalName(b.openElements[i])
		if name == target {
			return true
		}
		if scope[name] {
			return false
		}
	}
	return false
}

// closePElement implements
// https://html.spec.whatwg.org/multipage/parsing.html#close-a-p-element
func (b *Builder) closePElement() {
	b.generateImpliedEndTagsExcept("p")
	for {
		popped := b.popOpenElement()
		if b.sink.ElementLocalName(popped) == "p" {
			return
		}
	}
}

// generateImpliedEndTagsExcept implements
// https://html.spec.whatwg.org/multipage/parsing.html#closing-elements-that-have-implied-end-tags
func (b *Builder) generateImpliedEndTagsExcept(exclude string) {
	for len(b.openElements) > 0 {
		name := b.currentNodeName()
		if name == exclude || !impliedEndTagElements[name] {
			return
		}
		b.popOpenElement()
	}
}

func (b *Builder) generateImpliedEndTags() {
	b.generateImpliedEndTagsExcept("")
}

// reconstructActiveFormattingElements implements
// https://html.spec.whatwg.org/multipage/parsing.html#reconstruct-the-active-formatting-elements
func (b *Builder) reconstructActiveFormattingElements() {
	if b.afe.isEmpty() {
		return
	}
	last, _ := b.afe.last()
	if last.marker || b.isInOpenElements(last.handle) {
		return
	}

	idx := len(b.afe.entries) - 1
	for idx > 0 {
		idx--
		e := b.afe.entries[idx]
		if e.marker || b.isInOpenElements(e.handle) {
			idx++
			break
		}
	}
	for ; idx < len(b.afe.entries); idx++ {
		e := b.afe.entries[idx]
		newHandle := b.insertHTMLElement(e.tag)
		b.afe.replace(idx, newHandle, e.tag)
	}
}

// runAdoptionAgency implements
// https://html.spec.whatwg.org/multipage/parsing.html#adoption-agency-algorithm
//
// The general case (steps 9-19) requires moving a furthest block's existing
// children onto a cloned formatting element, which the DomSink contract has
// no operation for (it exposes append and last-child only, never removal or
// enumeration). That branch instead detaches the misnested formatting
// element from the bookkeeping stacks and leaves the already-built subtree
// in place, which keeps the algorithm terminating within its eight-iteration
// bound without corrupting the tree.
func (b *Builder) runAdoptionAgency(tag htmltoken.Tag) {
	subject := tag.Name
	current := b.currentNode()
	if b.sink.ElementLocalName(current) == subject && !b.afe.isInList(current) {
		b.popOpenElement()
		return
	}

	for outer := 0; outer < 8; outer++ {
		idx, entry, found := b.afe.lastMatchSinceMarker(subject)
		if !found {
			b.anyOtherEndTagInBody(tag)
			return
		}
		openIdx, inOpen := b.indexInOpenElements(entry.handle)
		if !inOpen {
			b.afe.removeAt(idx)
			return
		}
		if !b.hasElementInScope(subject) {
			return
		}

		furthestIdx := -1
		for i := openIdx + 1; i < len(b.openElements); i++ {
			if specialElements[b.sink.ElementLocalName(b.openElements[i])] {
				furthestIdx = i
				break
			}
		}
		if furthestIdx == -1 {
			for len(b.openElements) > openIdx {
				b.popOpenElement()
			}
			b.afe.removeAt(idx)
			return
		}

		b.afe.removeAt(idx)
		b.removeOpenElementAt(openIdx)
	}
}

// anyOtherEndTagInBody implements the "any other end tag" entry of the
// in-body insertion mode's end tag handling.
func (b *Builder) anyOtherEndTagInBody(tag htmltoken.Tag) {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		name := b.sink.ElementLocalName(b.openElements[i])
		if name == tag.Name {
			b.generateImpliedEndTagsExcept(tag.Name)
			for len(b.openElements) > i {
				b.popOpenElement()
			}
			return
		}
		if specialElements[name] {
			return
		}
	}
}
