package css

import (
	"strings"

	"github.com/inkwellrender/inkwell/diagnostics"
)

// ParseStylesheet parses a stylesheet with the given cascade origin.
// Rules with unparseable or unsupported selectors are dropped and recorded
// on rec; parsing never fails. rec may be nil.
func ParseStylesheet(input string, origin Origin, rec *diagnostics.Recorder) *Stylesheet {
	out := &Stylesheet{}
	for _, raw := range splitRules(stripComments(input)) {
		decls := parseDeclarations(raw.block)
		if len(decls) == 0 {
			continue
		}
		for _, selText := range strings.Split(raw.prelude, ",") {
			selText = strings.TrimSpace(selText)
			if selText == "" {
				continue
			}
			sel, err := ParseSelector(selText)
			if err != nil {
				rec.Record(diagnostics.InvalidSelector, -1, "ignored rule: %s", err)
				continue
			}
			out.Rules = append(out.Rules, StyleRule{
				Selector:     sel,
				Declarations: decls,
				Specificity:  sel.Specificity(),
				Order:        len(out.Rules),
				Origin:       origin,
			})
		}
	}
	return out
}

// ParseDeclarations parses the body of a declaration block, as found in a
// style attribute.
func ParseDeclarations(input string) []Declaration {
	return parseDeclarations(stripComments(input))
}

type rawRule struct {
	prelude, block string
}

// splitRules cuts the input at top-level braces. At-rules are skipped
// wholesale, including nested blocks.
func splitRules(input string) []rawRule {
	var out []rawRule
	for {
		open := strings.IndexByte(input, '{')
		if open == -1 {
			return out
		}
		prelude := strings.TrimSpace(input[:open])
		rest := input[open:]
		block, remaining := readBlock(rest)
		input = remaining
		if strings.HasPrefix(prelude, "@") {
			continue // @media, @font-face... are out of scope
		}
		out = append(out, rawRule{prelude: prelude, block: block})
	}
}

// readBlock consumes a brace-balanced block starting at input[0] == '{'
// and returns its interior and the remaining input.
func readBlock(input string) (string, string) {
	depth := 0
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return input[1:i], input[i+1:]
			}
		}
	}
	return strings.TrimPrefix(input, "{"), ""
}

func parseDeclarations(block string) []Declaration {
	var out []Declaration
	for _, part := range strings.Split(block, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		colon := strings.IndexByte(part, ':')
		if colon == -1 {
			continue // not a declaration, skip silently like a forgiving parser
		}
		decl := Declaration{
			Name:  strings.ToLower(strings.TrimSpace(part[:colon])),
			Value: strings.TrimSpace(part[colon+1:]),
		}
		if cut := strings.TrimSuffix(decl.Value, "!important"); cut != decl.Value {
			decl.Important = true
			decl.Value = strings.TrimSpace(cut)
		}
		if decl.Name == "" || decl.Value == "" {
			continue
		}
		out = append(out, decl)
	}
	return out
}

func stripComments(input string) string {
	var b strings.Builder
	for {
		start := strings.Index(input, "/*")
		if start == -1 {
			b.WriteString(input)
			return b.String()
		}
		b.WriteString(input[:start])
		end := strings.Index(input[start+2:], "*/")
		if end == -1 {
			return b.String()
		}
		input = input[start+2+end+2:]
	}
}
