// Package span provides source positions and token-index ranges.
package span

import "fmt"

// Position represents a position in source code.
type Position struct {
	Offset int `json:"offset"` // byte offset from beginning of source
	Line   int `json:"line"`   // 1-based line number
	Column int `json:"column"` // 1-based column number
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range in source code [Start, End).
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("%s..%s", s.Start, s.End)
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Range is a half-open interval [Left, Right) of token indices.
type Range struct {
	Left  int `json:"left" yaml:"left"`
	Right int `json:"right" yaml:"right"`
}

// R is shorthand for Range{Left: left, Right: right}.
func R(left, right int) Range {
	return Range{Left: left, Right: right}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Left, r.Right)
}

// Len returns the number of tokens covered by r.
func (r Range) Len() int {
	return r.Right - r.Left
}

// Empty reports whether r covers no tokens.
func (r Range) Empty() bool {
	return r.Right <= r.Left
}

// Contains reports whether inner is a subrange of r.
func (r Range) Contains(inner Range) bool {
	return inner.Left >= r.Left && inner.Right <= r.Right && inner.Left <= inner.Right
}
