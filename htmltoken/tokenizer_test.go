package htmltoken

import (
	"testing"

	"github.com/curol/network/parseerror"
)

func collectAll(tk *Tokenizer) []Token {
	var toks []Token
	for {
		tok := tk.Next()
		toks = append(toks, tok)
		if tok.Kind == KindEOF {
			return toks
		}
	}
}

func TestTokenizeDoctypeHtmlBodyText(t *testing.T) {
	tk := New("<!DOCTYPE html><html><body>hi</body></html>", nil)
	toks := collectAll(tk)

	if toks[0].Kind != KindDoctype || toks[0].Doctype.Name != "html" {
		t.Fatalf("first token = %+v, want doctype html", toks[0])
	}

	var tagNames []string
	var chars []rune
	for _, tok := range toks[1:] {
		switch tok.Kind {
		case KindTag:
			tagNames = append(tagNames, tok.Tag.Name)
		case KindCharacter:
			chars = append(chars, tok.Character)
		}
	}
	want := []string{"html", "body", "body", "html"}
	if len(tagNames) != len(want) {
		t.Fatalf("tag names = %v, want %v", tagNames, want)
	}
	for i, n := range want {
		if tagNames[i] != n {
			t.Errorf("tag[%d] = %q, want %q", i, tagNames[i], n)
		}
	}
	if string(chars) != "hi" {
		t.Fatalf("character data = %q, want hi", string(chars))
	}
}

func TestTokenizeScriptDataCapturesRawText(t *testing.T) {
	tk := New("<script>a<b></script>", nil)
	first := tk.Next()
	// The tokenizer enters script data only when its caller switches it, as
	// the tree builder does after a <script> start tag.
	tk.SwitchToScriptData()
	toks := append([]Token{first}, collectAll(tk)...)

	if toks[0].Kind != KindTag || toks[0].Tag.Name != "script" || !toks[0].Tag.Opening {
		t.Fatalf("first token = %+v, want <script>", toks[0])
	}

	var chars []rune
	i := 1
	for ; toks[i].Kind == KindCharacter; i++ {
		chars = append(chars, toks[i].Character)
	}
	if string(chars) != "a<b>" {
		t.Fatalf("script text = %q, want a<b>", string(chars))
	}
	if toks[i].Kind != KindTag || toks[i].Tag.Opening || toks[i].Tag.Name != "script" {
		t.Fatalf("closing token = %+v, want </script>", toks[i])
	}
}

func TestTokenizeNamedAndAmbiguousCharacterReferences(t *testing.T) {
	c := &parseerror.Collector{}
	tk := New("&amp;&am;", c)
	toks := collectAll(tk)

	var chars []rune
	for _, tok := range toks {
		if tok.Kind == KindCharacter {
			chars = append(chars, tok.Character)
		}
	}
	if string(chars) != "&&am;" {
		t.Fatalf("character data = %q, want &&am;", string(chars))
	}
}

func TestTokenizeAttributesAndSelfClosing(t *testing.T) {
	tk := New(`<img src="a.png" alt='b' data-x>`, nil)
	tok := tk.Next()
	if tok.Kind != KindTag || tok.Tag.Name != "img" {
		t.Fatalf("token = %+v, want <img>", tok)
	}
	want := map[string]string{"src": "a.png", "alt": "b", "data-x": ""}
	if len(tok.Tag.Attributes) != len(want) {
		t.Fatalf("attributes = %+v, want %d entries", tok.Tag.Attributes, len(want))
	}
	for _, a := range tok.Tag.Attributes {
		if v, ok := want[a.Name]; !ok || v != a.Value {
			t.Errorf("attribute %q = %q, want %q", a.Name, a.Value, want[a.Name])
		}
	}
}

func TestTokenizeDuplicateAttributeDropped(t *testing.T) {
	tk := New(`<a href="first" href="second">`, nil)
	tok := tk.Next()
	if len(tok.Tag.Attributes) != 1 {
		t.Fatalf("attributes = %+v, want 1 (duplicate dropped)", tok.Tag.Attributes)
	}
	if tok.Tag.Attributes[0].Value != "first" {
		t.Fatalf("href = %q, want first (first occurrence wins)", tok.Tag.Attributes[0].Value)
	}
}

func TestTokenizeComment(t *testing.T) {
	tk := New("<!-- hello -->", nil)
	tok := tk.Next()
	if tok.Kind != KindComment || tok.Comment != " hello " {
		t.Fatalf("token = %+v, want comment ' hello '", tok)
	}
}

func TestTokenizeNumericCharacterReference(t *testing.T) {
	tk := New("&#65;&#x42;", nil)
	var chars []rune
	for {
		tok := tk.Next()
		if tok.Kind == KindEOF {
			break
		}
		chars = append(chars, tok.Character)
	}
	if string(chars) != "AB" {
		t.Fatalf("character data = %q, want AB", string(chars))
	}
}

func TestTokenizeNullCharacterReplaced(t *testing.T) {
	tk := New("a\x00b", nil)
	var chars []rune
	for {
		tok := tk.Next()
		if tok.Kind == KindEOF {
			break
		}
		chars = append(chars, tok.Character)
	}
	if string(chars) != "a�b" {
		t.Fatalf("character data = %q, want a\\ufffdb", string(chars))
	}
}

func TestTokenizeEofIsStable(t *testing.T) {
	tk := New("", nil)
	first := tk.Next()
	second := tk.Next()
	if first.Kind != KindEOF || second.Kind != KindEOF {
		t.Fatalf("expected repeated EOF tokens, got %+v then %+v", first, second)
	}
}
