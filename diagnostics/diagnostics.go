// Package diagnostics implements the side channel accumulating the non
// fatal degradations met during a pipeline run: the pipeline never aborts
// on malformed input, it records what it had to paper over.
package diagnostics

import (
	"fmt"

	"github.com/inkwellrender/inkwell/logger"
)

// Kind classifies a recorded degradation.
type Kind uint8

const (
	_ Kind = iota

	// ParseFallback: a malformed declaration value was ignored and the
	// property kept its inherited or initial value.
	ParseFallback

	// UnresolvedDimension: a percentage had no definite base and resolved
	// to zero.
	UnresolvedDimension

	// MissingGlyphMetric: the measurement provider had no metric and a
	// documented fallback advance was used.
	MissingGlyphMetric

	// InvalidSelector: a rule with an unparseable or unsupported selector
	// was dropped.
	InvalidSelector
)

func (k Kind) String() string {
	switch k {
	case ParseFallback:
		return "parse-fallback"
	case UnresolvedDimension:
		return "unresolved-dimension"
	case MissingGlyphMetric:
		return "missing-glyph-metric"
	case InvalidSelector:
		return "invalid-selector"
	default:
		return "unknown"
	}
}

// Diagnostic is one recorded degradation. Node is the arena index of the
// document node concerned, or -1 when none applies.
type Diagnostic struct {
	Message string
	Kind    Kind
	Node    int
}

func (d Diagnostic) String() string {
	if d.Node >= 0 {
		return fmt.Sprintf("%s (node %d): %s", d.Kind, d.Node, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// Recorder accumulates diagnostics for one pipeline run.
// The zero value is ready to use. It is never consulted as control flow.
type Recorder struct {
	diags []Diagnostic
}

// Record appends a diagnostic and mirrors it on the warning logger.
// A nil receiver drops the entry, so callers without a recorder stay valid.
func (r *Recorder) Record(kind Kind, node int, format string, args ...interface{}) {
	d := Diagnostic{Kind: kind, Node: node, Message: fmt.Sprintf(format, args...)}
	if r == nil {
		logger.WarningLogger.Println(d.String())
		return
	}
	r.diags = append(r.diags, d)
	logger.WarningLogger.Println(d.String())
}

// Diagnostics returns the accumulated entries, in recording order.
func (r *Recorder) Diagnostics() []Diagnostic {
	if r == nil {
		return nil
	}
	return r.diags
}
