package css

import (
	"fmt"
	"strings"

	"github.com/inkwellrender/inkwell/dom"
)

// Specificity is the weight of a selector: id count, class and attribute
// count, type count. Comparison is lexicographic.
type Specificity [3]int

func (s Specificity) Less(other Specificity) bool {
	for i := range s {
		if s[i] != other[i] {
			return s[i] < other[i]
		}
	}
	return false
}

// Combinator joins two compound selectors.
type Combinator uint8

const (
	Descendant Combinator = iota // whitespace
	Child                        // '>'
)

// AttrSelector matches an attribute: [name] or [name=value].
type AttrSelector struct {
	Name     string
	Value    string
	HasValue bool
}

// Compound is one compound selector: an optional type (or universal)
// with any number of id, class and attribute predicates.
type Compound struct {
	Tag       string // lowercase, empty unless set
	ID        string
	Classes   []string
	Attrs     []AttrSelector
	Universal bool
}

func (c Compound) isEmpty() bool {
	return !c.Universal && c.Tag == "" && c.ID == "" && len(c.Classes) == 0 && len(c.Attrs) == 0
}

// Selector is a chain of compounds joined by combinators, stored
// leftmost-first: Combinators[i] relates Compounds[i] (ancestor side)
// to Compounds[i+1]. The subject is the last compound.
type Selector struct {
	Compounds   []Compound
	Combinators []Combinator
}

// Specificity counts ids, classes/attributes and types over the chain.
func (s Selector) Specificity() Specificity {
	var out Specificity
	for _, c := range s.Compounds {
		if c.ID != "" {
			out[0]++
		}
		out[1] += len(c.Classes) + len(c.Attrs)
		if c.Tag != "" {
			out[2]++
		}
	}
	return out
}

func (s Selector) String() string {
	var b strings.Builder
	for i, c := range s.Compounds {
		if i > 0 {
			if s.Combinators[i-1] == Child {
				b.WriteString(" > ")
			} else {
				b.WriteString(" ")
			}
		}
		if c.Universal {
			b.WriteString("*")
		}
		b.WriteString(c.Tag)
		if c.ID != "" {
			b.WriteString("#" + c.ID)
		}
		for _, cl := range c.Classes {
			b.WriteString("." + cl)
		}
		for _, a := range c.Attrs {
			if a.HasValue {
				fmt.Fprintf(&b, "[%s=%s]", a.Name, a.Value)
			} else {
				fmt.Fprintf(&b, "[%s]", a.Name)
			}
		}
	}
	return b.String()
}

// Match reports whether the selector matches the given element, walking
// the ancestor chain for descendant and child combinators.
func (s Selector) Match(doc *dom.Document, node dom.NodeID) bool {
	if len(s.Compounds) == 0 || !doc.IsElement(node) {
		return false
	}
	last := len(s.Compounds) - 1
	if !s.Compounds[last].match(doc, node) {
		return false
	}
	return s.matchAncestors(doc, doc.Node(node).Parent, last-1)
}

// matchAncestors matches Compounds[idx] and its left context against the
// ancestors of node, starting at candidate.
func (s Selector) matchAncestors(doc *dom.Document, candidate dom.NodeID, idx int) bool {
	if idx < 0 {
		return true
	}
	combinator := s.Combinators[idx]
	for candidate != dom.None {
		if doc.IsElement(candidate) && s.Compounds[idx].match(doc, candidate) &&
			s.matchAncestors(doc, doc.Node(candidate).Parent, idx-1) {
			return true
		}
		if combinator == Child {
			return false // only the direct parent may match
		}
		candidate = doc.Node(candidate).Parent
	}
	return false
}

func (c Compound) match(doc *dom.Document, node dom.NodeID) bool {
	el := doc.Node(node)
	if c.Tag != "" && el.Tag != c.Tag {
		return false
	}
	if c.ID != "" && doc.ID(node) != c.ID {
		return false
	}
	for _, class := range c.Classes {
		if !doc.HasClass(node, class) {
			return false
		}
	}
	for _, attr := range c.Attrs {
		v, ok := doc.Attr(node, attr.Name)
		if !ok || (attr.HasValue && v != attr.Value) {
			return false
		}
	}
	return true
}

// ParseSelector parses one selector chain (no selector groups).
// Pseudo classes/elements and sibling combinators are unsupported and
// reported as errors, to be recorded as InvalidSelector diagnostics.
func ParseSelector(input string) (Selector, error) {
	var out Selector
	pending := Descendant
	hasPending := false
	for _, field := range strings.Fields(input) {
		for field != "" {
			if field == ">" || strings.HasPrefix(field, ">") {
				if hasPending || len(out.Compounds) == 0 {
					return Selector{}, fmt.Errorf("misplaced combinator in %q", input)
				}
				pending, hasPending = Child, true
				field = field[1:]
				continue
			}
			// a compound may be glued to a '>' on its right
			compoundText := field
			if cut := strings.IndexByte(field, '>'); cut != -1 {
				compoundText, field = field[:cut], field[cut:]
			} else {
				field = ""
			}
			compound, err := parseCompound(compoundText)
			if err != nil {
				return Selector{}, err
			}
			if len(out.Compounds) > 0 {
				out.Combinators = append(out.Combinators, pending)
			}
			out.Compounds = append(out.Compounds, compound)
			pending, hasPending = Descendant, false
		}
	}
	if hasPending {
		return Selector{}, fmt.Errorf("dangling combinator in %q", input)
	}
	if len(out.Compounds) == 0 {
		return Selector{}, fmt.Errorf("empty selector %q", input)
	}
	return out, nil
}

func parseCompound(s string) (Compound, error) {
	var out Compound
	i := 0
	readName := func() (string, error) {
		start := i
		for i < len(s) && isNameByte(s[i]) {
			i++
		}
		if start == i {
			return "", fmt.Errorf("invalid selector %q", s)
		}
		return s[start:i], nil
	}
	for i < len(s) {
		switch c := s[i]; {
		case c == '*':
			out.Universal = true
			i++
		case c == '#':
			i++
			name, err := readName()
			if err != nil {
				return Compound{}, err
			}
			out.ID = name
		case c == '.':
			i++
			name, err := readName()
			if err != nil {
				return Compound{}, err
			}
			out.Classes = append(out.Classes, name)
		case c == '[':
			end := strings.IndexByte(s[i:], ']')
			if end == -1 {
				return Compound{}, fmt.Errorf("unclosed attribute selector in %q", s)
			}
			body := s[i+1 : i+end]
			i += end + 1
			attr := AttrSelector{Name: body}
			if eq := strings.IndexByte(body, '='); eq != -1 {
				attr = AttrSelector{
					Name:     body[:eq],
					Value:    strings.Trim(body[eq+1:], `"'`),
					HasValue: true,
				}
			}
			if attr.Name == "" {
				return Compound{}, fmt.Errorf("empty attribute selector in %q", s)
			}
			attr.Name = strings.ToLower(attr.Name)
			out.Attrs = append(out.Attrs, attr)
		case c == ':', c == '+', c == '~':
			return Compound{}, fmt.Errorf("unsupported selector feature %q in %q", string(c), s)
		case isNameByte(c):
			if out.Tag != "" || !out.isEmpty() {
				return Compound{}, fmt.Errorf("misplaced type selector in %q", s)
			}
			name, err := readName()
			if err != nil {
				return Compound{}, err
			}
			out.Tag = strings.ToLower(name)
		default:
			return Compound{}, fmt.Errorf("unexpected %q in selector %q", string(c), s)
		}
	}
	if out.isEmpty() {
		return Compound{}, fmt.Errorf("empty compound in %q", s)
	}
	return out, nil
}

func isNameByte(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || isDigit(c) || c == '-' || c == '_'
}
