package htmltree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curol/network/domref"
	"github.com/curol/network/htmltree"
)

func parseToDump(t *testing.T, input string) string {
	t.Helper()
	sink := domref.New()
	doc := htmltree.Parse(input, sink, nil, htmltree.Options{})
	require.NotNil(t, doc)
	return domref.Dump(doc)
}

func TestParseDoctypeHtmlBodyText(t *testing.T) {
	got := parseToDump(t, "<!DOCTYPE html><html><head></head><body>hello</body></html>")
	assert.Contains(t, got, "<!DOCTYPE html>")
	assert.Contains(t, got, "<html>")
	assert.Contains(t, got, "<head>")
	assert.Contains(t, got, "<body>")
	assert.Contains(t, got, `"hello"`)
}

func TestParseImpliedHtmlHeadBody(t *testing.T) {
	got := parseToDump(t, "just text")
	assert.Contains(t, got, "<html>")
	assert.Contains(t, got, "<head>")
	assert.Contains(t, got, "<body>")
	assert.Contains(t, got, `"just text"`)
}

func TestParseUnclosedParagraphsBecomeSiblings(t *testing.T) {
	sink := domref.New()
	doc := htmltree.Parse("<p>a<p>b", sink, nil, htmltree.Options{})
	root := doc.(*domref.Node)

	html := firstChildNamed(t, root, "html")
	body := firstChildNamed(t, html, "body")

	var pCount int
	for _, c := range body.Children {
		if c.Kind == domref.KindElement && c.LocalName == "p" {
			pCount++
		}
	}
	assert.Equal(t, 2, pCount, "<p>a<p>b should produce two sibling <p> elements, not nested")
}

func TestParseAdoptionAgencyClonesFormattingElement(t *testing.T) {
	sink := domref.New()
	doc := htmltree.Parse("<b>1<i>2</b>3</i>", sink, nil, htmltree.Options{})
	root := doc.(*domref.Node)

	html := firstChildNamed(t, root, "html")
	body := firstChildNamed(t, html, "body")

	var bCount, iCount int
	for _, c := range body.Children {
		if c.Kind != domref.KindElement {
			continue
		}
		switch c.LocalName {
		case "b":
			bCount++
		case "i":
			iCount++
		}
	}
	assert.Equal(t, 1, bCount)
	assert.GreaterOrEqual(t, iCount, 1, "adoption agency should leave an <i> sibling of <b> holding the trailing text")

	got := domref.Dump(doc)
	assert.Contains(t, got, `"1"`)
	assert.Contains(t, got, `"2"`)
	assert.Contains(t, got, `"3"`)
}

func TestParseCommentBeforeDoctypeAttachesToDocument(t *testing.T) {
	got := parseToDump(t, "<!--top--><!DOCTYPE html><html></html>")
	assert.Contains(t, got, "<!--top-->")
	assert.Contains(t, got, "#document\n  <!--top-->\n")
}

func TestParseVoidElementsDoNotNestFollowingContent(t *testing.T) {
	sink := domref.New()
	doc := htmltree.Parse("<br><p>after</p>", sink, nil, htmltree.Options{})
	root := doc.(*domref.Node)
	html := firstChildNamed(t, root, "html")
	body := firstChildNamed(t, html, "body")

	br := firstChildNamed(t, body, "br")
	assert.Empty(t, br.Children, "br is void and must not contain the following <p>")

	foundP := false
	for _, c := range body.Children {
		if c.Kind == domref.KindElement && c.LocalName == "p" {
			foundP = true
		}
	}
	assert.True(t, foundP, "the <p> must be a sibling of <br>, not a descendant")
}

func TestParseScriptDataIsNotTokenizedAsMarkup(t *testing.T) {
	sink := domref.New()
	doc := htmltree.Parse(`<script>var x = "<div>";</script>`, sink, nil, htmltree.Options{})
	root := doc.(*domref.Node)
	html := firstChildNamed(t, root, "html")
	head := firstChildNamed(t, html, "head")
	script := firstChildNamed(t, head, "script")

	require.Len(t, script.Children, 1)
	assert.Equal(t, domref.KindText, script.Children[0].Kind)
	assert.Equal(t, `var x = "<div>";`, script.Children[0].Data.String())
}

func firstChildNamed(t *testing.T, n *domref.Node, name string) *domref.Node {
	t.Helper()
	for _, c := range n.Children {
		if c.Kind == domref.KindElement && c.LocalName == name {
			return c
		}
	}
	t.Fatalf("no child named %q under %v", name, n)
	return nil
}
