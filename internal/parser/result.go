package parser

import (
	"encoding/json"

	"cminus/internal/ast"
	"cminus/internal/diag"
)

// NoMatch is the Last value of a failed Result.
const NoMatch = -1

// Result is the outcome of one grammar rule over a token range.
//
// On success Err is nil and Last is the index of the last token the rule
// consumed; a rule that matched nothing (an optional construct) reports
// start-1 and a nil Node. On failure Err is set, Last is NoMatch and Node
// is always nil.
type Result struct {
	Last     int
	Node     *ast.Node
	Err      *diag.Diagnostic
	Warnings []diag.Diagnostic
}

// OK reports whether the rule matched.
func (r Result) OK() bool {
	return r.Err == nil
}

// Diagnostic returns the failure message, or "" on success.
func (r Result) Diagnostic() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.String()
}

// Diagnostics returns the failure (if any) followed by the warnings.
func (r Result) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	if r.Err != nil {
		out = append(out, *r.Err)
	}
	return append(out, r.Warnings...)
}

type resultJSON struct {
	OK           bool      `json:"ok" yaml:"ok"`
	LastConsumed int       `json:"lastConsumed" yaml:"lastConsumed"`
	Diagnostic   string    `json:"diagnostic" yaml:"diagnostic"`
	Warnings     []string  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Node         *ast.Node `json:"node" yaml:"node"`
}

func (r Result) toJSON() resultJSON {
	out := resultJSON{
		OK:           r.OK(),
		LastConsumed: r.Last,
		Diagnostic:   r.Diagnostic(),
		Node:         r.Node,
	}
	if !r.OK() {
		out.LastConsumed = NoMatch
		out.Node = nil
	}
	for _, w := range r.Warnings {
		out.Warnings = append(out.Warnings, w.String())
	}
	return out
}

// MarshalJSON encodes the result as {ok, lastConsumed, diagnostic, node}.
// An optional construct matched at index 0 reports lastConsumed -1 like a
// failure; ok tells them apart.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.toJSON())
}

// MarshalYAML implements yaml.Marshaler with the same shape as MarshalJSON.
func (r Result) MarshalYAML() (interface{}, error) {
	return r.toJSON(), nil
}

// ---- factories ----

// success builds a matching result. Warnings of the sub-results it was
// assembled from are carried up.
func success(last int, node *ast.Node, from ...Result) Result {
	r := Result{Last: last, Node: node}
	for _, sub := range from {
		r.Warnings = append(r.Warnings, sub.Warnings...)
	}
	return r
}

// fail builds a failed result. It never carries a node.
func fail(d diag.Diagnostic) Result {
	return Result{Last: NoMatch, Err: &d}
}

// empty is the non-advancing success of an optional construct at start.
func empty(start int) Result {
	return Result{Last: start - 1}
}

// collect folds the results of a list rule. One element stands for the
// whole list; several are gathered as children of one flat kind node.
func collect(kind ast.Kind, start int, items []Result) Result {
	switch len(items) {
	case 0:
		return empty(start)
	case 1:
		return items[0]
	}
	last := items[len(items)-1].Last
	node := ast.New(kind, start, last+1)
	for _, it := range items {
		node.AddChild(it.Node)
	}
	return success(last, node, items...)
}
