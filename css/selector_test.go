package css

import (
	"testing"

	"github.com/inkwellrender/inkwell/dom"
	tu "github.com/inkwellrender/inkwell/utils/testutils"
)

// buildDoc returns <html><body><div class="box" id="main"><p class="x y">
// with the ids of each element.
func buildDoc() (doc *dom.Document, body, div, p dom.NodeID) {
	doc = dom.NewDocument("html")
	body = doc.CreateElement("body", nil, doc.Root())
	div = doc.CreateElement("div", []dom.Attr{{Name: "class", Value: "box"}, {Name: "id", Value: "main"}}, body)
	p = doc.CreateElement("p", []dom.Attr{{Name: "class", Value: "x y"}, {Name: "data-k", Value: "v"}}, div)
	return doc, body, div, p
}

func TestSpecificity(t *testing.T) {
	for _, test := range []struct {
		selector string
		exp      Specificity
	}{
		{"p", Specificity{0, 0, 1}},
		{".x", Specificity{0, 1, 0}},
		{"#main", Specificity{1, 0, 0}},
		{"div.box#main", Specificity{1, 1, 1}},
		{"body div > p.x", Specificity{0, 1, 3}},
		{"*", Specificity{0, 0, 0}},
		{"[data-k=v]", Specificity{0, 1, 0}},
	} {
		sel, err := ParseSelector(test.selector)
		if err != nil {
			t.Fatalf("ParseSelector(%q): %s", test.selector, err)
		}
		tu.AssertEqual(t, sel.Specificity(), test.exp)
	}

	if !(Specificity{0, 1, 0}).Less(Specificity{1, 0, 0}) {
		t.Fatal("one class should weigh less than one id")
	}
	if (Specificity{0, 0, 2}).Less(Specificity{0, 0, 2}) {
		t.Fatal("equal specificities must not compare less")
	}
}

func TestSelectorMatch(t *testing.T) {
	doc, body, div, p := buildDoc()
	for _, test := range []struct {
		selector string
		node     dom.NodeID
		exp      bool
	}{
		{"p", p, true},
		{"p", div, false},
		{"*", div, true},
		{".x", p, true},
		{".y", p, true},
		{".box", p, false},
		{"#main", div, true},
		{"div p", p, true},
		{"body p", p, true},
		{"html body div p", p, true},
		{"body > p", p, false},
		{"div > p", p, true},
		{"body > div", div, true},
		{"[data-k]", p, true},
		{"[data-k=v]", p, true},
		{"[data-k=other]", p, false},
		{"p.x.y", p, true},
		{"body", body, true},
	} {
		sel, err := ParseSelector(test.selector)
		if err != nil {
			t.Fatalf("ParseSelector(%q): %s", test.selector, err)
		}
		if got := sel.Match(doc, test.node); got != test.exp {
			t.Fatalf("%q on node %d: got %v, expected %v", test.selector, test.node, got, test.exp)
		}
	}
}

func TestSelectorMatchTextNode(t *testing.T) {
	doc := dom.NewDocument("html")
	text := doc.CreateText("hello", doc.Root())
	sel, err := ParseSelector("*")
	if err != nil {
		t.Fatal(err)
	}
	if sel.Match(doc, text) {
		t.Fatal("selectors never match text nodes")
	}
}

func TestParseSelectorErrors(t *testing.T) {
	for _, input := range []string{
		"", "p:hover", "p::before", "a + b", "a ~ b", "> p", "p >", "div[", "p{",
	} {
		if _, err := ParseSelector(input); err == nil {
			t.Fatalf("ParseSelector(%q): expected an error", input)
		}
	}
}

func TestSelectorString(t *testing.T) {
	for _, input := range []string{"div#main.box", "body > p", "div p.x"} {
		sel, err := ParseSelector(input)
		if err != nil {
			t.Fatal(err)
		}
		tu.AssertEqual(t, sel.String(), input)
	}
}
