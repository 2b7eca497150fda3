package layout

import (
	"testing"

	"github.com/inkwellrender/inkwell/dom"
	tu "github.com/inkwellrender/inkwell/utils/testutils"
)

func TestReplacedDefaultPlaceholderSize(t *testing.T) {
	doc := dom.NewDocument("html")
	p := doc.CreateElement("p", nil, doc.Root())
	doc.CreateText("xx ", p)
	img := doc.CreateElement("img", nil, p)

	root := layoutSource(t, doc, `html,p{display:block}`, Viewport{Width: 400, Height: 300}, nil)

	box := mustFind(t, root, img)
	tu.AssertEqual(t, box.Type, ReplacedBox)
	tu.AssertEqual(t, box.Dimensions.Content.Width, Fl(100))
	tu.AssertEqual(t, box.Dimensions.Content.Height, Fl(80))
	// the placeholder advances past "xx " (16) and its space (4)
	tu.AssertEqual(t, box.Dimensions.MarginBox().X, Fl(20))

	pBox := mustFind(t, root, p)
	if len(pBox.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(pBox.Lines))
	}
	// the tallest token sets the line height
	tu.AssertEqual(t, pBox.Lines[0].Height, Fl(80))
}

func TestReplacedSizedFromAttributesAndStyle(t *testing.T) {
	doc := dom.NewDocument("html")
	p := doc.CreateElement("p", nil, doc.Root())
	attrImg := doc.CreateElement("img", []dom.Attr{
		{Name: "width", Value: "50"}, {Name: "height", Value: "40"},
	}, p)
	styledImg := doc.CreateElement("img", []dom.Attr{
		{Name: "id", Value: "styled"},
		{Name: "width", Value: "50"}, {Name: "height", Value: "40"},
	}, p)

	root := layoutSource(t, doc, `
		html,p{display:block}
		#styled{width:30px;height:20px}
	`, Viewport{Width: 400, Height: 300}, nil)

	attrBox := mustFind(t, root, attrImg)
	tu.AssertEqual(t, attrBox.Dimensions.Content.Width, Fl(50))
	tu.AssertEqual(t, attrBox.Dimensions.Content.Height, Fl(40))

	// a stylesheet length overrides the presentational attribute
	styledBox := mustFind(t, root, styledImg)
	tu.AssertEqual(t, styledBox.Dimensions.Content.Width, Fl(30))
	tu.AssertEqual(t, styledBox.Dimensions.Content.Height, Fl(20))
}

func TestReplacedAbsolutelyPositioned(t *testing.T) {
	doc := dom.NewDocument("html")
	body := doc.CreateElement("body", nil, doc.Root())
	img := doc.CreateElement("img", []dom.Attr{
		{Name: "width", Value: "50"}, {Name: "height", Value: "40"},
	}, body)

	root := layoutSource(t, doc, `
		html,body{display:block}
		img{position:absolute;left:30px;top:20px}
	`, Viewport{Width: 400, Height: 300}, nil)

	box := mustFind(t, root, img).Dimensions.BorderBox()
	tu.AssertEqual(t, box, Rect{X: 30, Y: 20, Width: 50, Height: 40})
}

func TestReplacedFollowedByText(t *testing.T) {
	doc := dom.NewDocument("html")
	p := doc.CreateElement("p", nil, doc.Root())
	doc.CreateText("aa ", p)
	doc.CreateElement("img", []dom.Attr{
		{Name: "width", Value: "60"}, {Name: "height", Value: "10"},
	}, p)
	doc.CreateText(" bb", p)

	root := layoutSource(t, doc, `html,p{display:block}`, Viewport{Width: 400, Height: 300}, nil)

	box := mustFind(t, root, p)
	if len(box.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(box.Lines))
	}
	// aa(16) space(4) [img 60] space(4) bb
	last := box.Lines[0].Runs[len(box.Lines[0].Runs)-1]
	tu.AssertEqual(t, last.Text, "bb")
	tu.AssertEqual(t, last.X, Fl(84))
}
