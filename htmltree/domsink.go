// Package htmltree implements the WHATWG HTML tree construction stage: an
// insertion-mode state machine that consumes a token stream from htmltoken
// and drives an arbitrary DOM implementation through the DomSink contract.
package htmltree

// Namespace identifies the element namespace a node was created in.
type Namespace int

const (
	NamespaceHTML Namespace = iota
	NamespaceMathML
	NamespaceSVG
)

// NodeHandle is an opaque reference to a DOM node. The tree builder never
// inspects a handle's representation; it only ever passes handles back to
// the sink that produced them.
type NodeHandle any

// DomSink is the only coupling between the tree builder and a DOM
// implementation. It is intentionally minimal: the builder tracks element
// identity and structure itself (open elements stack, active formatting
// elements) and only asks the sink to create nodes and link them into the
// tree.
type DomSink interface {
	CreateDocument() NodeHandle
	CreateDoctype(name, publicID, systemID string) NodeHandle
	CreateElement(doc NodeHandle, localName string, ns Namespace, prefix, is string) NodeHandle
	CreateText(doc NodeHandle) NodeHandle
	CreateComment(doc NodeHandle) NodeHandle
	AppendChild(parent, child NodeHandle)
	LastChild(parent NodeHandle) (NodeHandle, bool)
	IsText(h NodeHandle) bool
	AppendText(textHandle NodeHandle, c rune)
	AppendComment(commentHandle NodeHandle, s string)
	OwnerDocument(h NodeHandle) NodeHandle
	ElementLocalName(h NodeHandle) string
	ElementNamespace(h NodeHandle) Namespace
}
