package css

// Origin ranks the source of a stylesheet in the cascade, below
// specificity. Author rules override user-agent rules unless importance
// reverses the order.
type Origin uint8

const (
	UserAgent Origin = iota
	Author
)

// Declaration is one "name: value" pair. The value is kept as written;
// it is validated against the target property during cascade application,
// so a malformed value degrades to unset instead of poisoning the rule.
type Declaration struct {
	Name      string
	Value     string
	Important bool
}

// StyleRule is a parsed qualified rule with its resolved cascade inputs.
type StyleRule struct {
	Selector     Selector
	Declarations []Declaration
	Specificity  Specificity
	Order        int // position in the stylesheet, selector groups expanded
	Origin       Origin
}

// Stylesheet is an ordered sequence of rules; order is significant for
// cascade tie-breaks.
type Stylesheet struct {
	Rules []StyleRule
}

// Append concatenates the rules of other after the rules of s, renumbering
// source order so later sheets win ties.
func (s *Stylesheet) Append(other *Stylesheet) {
	base := len(s.Rules)
	for _, r := range other.Rules {
		r.Order = base + r.Order
		s.Rules = append(s.Rules, r)
	}
}
