// Package domref is a minimal reference implementation of htmltree.DomSink:
// an arena-indexed node store suitable for tests, examples and the
// htmlcheck CLI. It exercises the handle/lifetime model the tree builder
// expects without pulling in a real layout-capable DOM.
package domref

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/curol/network/htmltree"
)

// NodeKind discriminates the tagged node variant stored in the arena.
type NodeKind int

const (
	KindDocument NodeKind = iota
	KindDoctype
	KindElement
	KindText
	KindComment
)

// Node is one arena slot. Every handle the sink hands back to the tree
// builder is a *Node; the builder never inspects it beyond passing it back.
type Node struct {
	Kind NodeKind

	// Doctype fields.
	Name, PublicID, SystemID string

	// Element fields.
	LocalName string
	Namespace htmltree.Namespace
	Attrs     []Attr

	// Text/comment fields.
	Data strings.Builder

	Parent   *Node
	Children []*Node

	doc *Document
}

// Attr is a single element attribute in source order.
type Attr struct {
	Name, Value string
}

// Document is the root handle returned by CreateDocument. It stamps a UUID
// purely for human-readable diagnostics; node identity and scope-stack
// membership are always pointer-based and never touch it.
type Document struct {
	ID   uuid.UUID
	Root *Node
}

func (d *Document) String() string { return d.ID.String() }

// Sink implements htmltree.DomSink over the Node/Document arena above.
type Sink struct{}

// New returns a ready-to-use Sink. The zero value works too; New exists for
// symmetry with constructors elsewhere in this module.
func New() *Sink { return &Sink{} }

func (s *Sink) CreateDocument() htmltree.NodeHandle {
	doc := &Document{ID: uuid.New()}
	root := &Node{Kind: KindDocument, doc: doc}
	doc.Root = root
	return root
}

func (s *Sink) CreateDoctype(name, publicID, systemID string) htmltree.NodeHandle {
	return &Node{Kind: KindDoctype, Name: name, PublicID: publicID, SystemID: systemID}
}

func (s *Sink) CreateElement(doc htmltree.NodeHandle, localName string, ns htmltree.Namespace, prefix, is string) htmltree.NodeHandle {
	docNode := doc.(*Node)
	return &Node{Kind: KindElement, LocalName: localName, Namespace: ns, doc: docNode.doc}
}

func (s *Sink) CreateText(doc htmltree.NodeHandle) htmltree.NodeHandle {
	return &Node{Kind: KindText, doc: doc.(*Node).doc}
}

func (s *Sink) CreateComment(doc htmltree.NodeHandle) htmltree.NodeHandle {
	return &Node{Kind: KindComment, doc: doc.(*Node).doc}
}

func (s *Sink) AppendChild(parent, child htmltree.NodeHandle) {
	p, c := parent.(*Node), child.(*Node)
	c.Parent = p
	p.Children = append(p.Children, c)
}

func (s *Sink) LastChild(parent htmltree.NodeHandle) (htmltree.NodeHandle, bool) {
	p := parent.(*Node)
	if len(p.Children) == 0 {
		return nil, false
	}
	return p.Children[len(p.Children)-1], true
}

func (s *Sink) IsText(h htmltree.NodeHandle) bool {
	return h.(*Node).Kind == KindText
}

func (s *Sink) AppendText(textHandle htmltree.NodeHandle, c rune) {
	textHandle.(*Node).Data.WriteRune(c)
}

func (s *Sink) AppendComment(commentHandle htmltree.NodeHandle, str string) {
	commentHandle.(*Node).Data.WriteString(str)
}

func (s *Sink) OwnerDocument(h htmltree.NodeHandle) htmltree.NodeHandle {
	n := h.(*Node)
	if n.doc == nil {
		return nil
	}
	return n.doc.Root
}

func (s *Sink) ElementLocalName(h htmltree.NodeHandle) string {
	return h.(*Node).LocalName
}

func (s *Sink) ElementNamespace(h htmltree.NodeHandle) htmltree.Namespace {
	return h.(*Node).Namespace
}

// Dump renders the node and its descendants as an indented tree, for CLI
// and debugging use.
func Dump(h htmltree.NodeHandle) string {
	var b strings.Builder
	dump(&b, h.(*Node), 0)
	return b.String()
}

func dump(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.Kind {
	case KindDocument:
		fmt.Fprintf(b, "%s#document\n", indent)
	case KindDoctype:
		fmt.Fprintf(b, "%s<!DOCTYPE %s>\n", indent, n.Name)
	case KindElement:
		fmt.Fprintf(b, "%s<%s>\n", indent, n.LocalName)
	case KindText:
		fmt.Fprintf(b, "%s%q\n", indent, n.Data.String())
	case KindComment:
		fmt.Fprintf(b, "%s<!--%s-->\n", indent, n.Data.String())
	}
	for _, c := range n.Children {
		dump(b, c, depth+1)
	}
}
