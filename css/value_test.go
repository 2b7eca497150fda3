package css

import (
	"testing"

	tu "github.com/inkwellrender/inkwell/utils/testutils"
)

func TestParseValue(t *testing.T) {
	for _, test := range []struct {
		input string
		exp   Value
	}{
		{"auto", AutoValue},
		{" AUTO ", AutoValue},
		{"12px", PxValue(12)},
		{"-4px", PxValue(-4)},
		{"2.5em", Value{Kind: ValueDimension, Dimension: Dimension{Value: 2.5, Unit: Em}}},
		{"60vw", Value{Kind: ValueDimension, Dimension: Dimension{Value: 60, Unit: Vw}}},
		{"50%", Value{Kind: ValueDimension, Dimension: Dimension{Value: 50, Unit: Perc}}},
		{"1.5rem", Value{Kind: ValueDimension, Dimension: Dimension{Value: 1.5, Unit: Rem}}},
		{"10vh", Value{Kind: ValueDimension, Dimension: Dimension{Value: 10, Unit: Vh}}},
		{"0", Value{Kind: ValueNumber, Number: 0}},
		{"1.2", Value{Kind: ValueNumber, Number: 1.2}},
		{"inline-block", Value{Kind: ValueKeyword, Keyword: "inline-block"}},
		{"red", Value{Kind: ValueColor, Color: Color{255, 0, 0, 255}}},
		{"#0000ff", Value{Kind: ValueColor, Color: Color{0, 0, 255, 255}}},
	} {
		got, err := ParseValue(test.input)
		if err != nil {
			t.Fatalf("ParseValue(%q): %s", test.input, err)
		}
		tu.AssertEqual(t, got, test.exp)
	}
}

func TestParseValueInvalid(t *testing.T) {
	for _, input := range []string{"", "12quux", "1 2", "#zzz"} {
		if _, err := ParseValue(input); err == nil {
			t.Fatalf("ParseValue(%q): expected an error", input)
		}
	}
}

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		input string
		exp   Color
	}{
		{"black", Color{0, 0, 0, 255}},
		{"white", Color{255, 255, 255, 255}},
		{"transparent", Color{}},
		{"#fff", Color{255, 255, 255, 255}},
		{"#fff8", Color{255, 255, 255, 0x88}},
		{"#1a2b3c", Color{0x1a, 0x2b, 0x3c, 255}},
		{"#1a2b3c80", Color{0x1a, 0x2b, 0x3c, 0x80}},
		{"rgb(1, 2, 3)", Color{1, 2, 3, 255}},
		{"rgba(1, 2, 3, 0.5)", Color{1, 2, 3, 128}},
	} {
		got, err := ParseColor(test.input)
		if err != nil {
			t.Fatalf("ParseColor(%q): %s", test.input, err)
		}
		tu.AssertEqual(t, got, test.exp)
	}

	if !(Color{}).IsTransparent() {
		t.Fatal("zero color should be transparent")
	}
	if Black.IsTransparent() {
		t.Fatal("black should be opaque")
	}
}
