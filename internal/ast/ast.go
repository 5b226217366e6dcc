// Package ast defines the parse tree produced by the grammar engine.
//
// Every vertex has the same shape: a grammar-rule kind, the half-open
// token-index range it spans, and its ordered children. Children always
// lie inside their parent's range.
package ast

import (
	"strings"

	"cminus/internal/span"
	"cminus/internal/token"
)

// Kind names the grammar rule that produced a node.
type Kind string

const (
	Declaration        Kind = "Declaration"
	VarDeclaration     Kind = "VarDeclaration"
	FunDeclaration     Kind = "FunDeclaration"
	ParamList          Kind = "ParamList"
	Param              Kind = "Param"
	CompoundStmt       Kind = "CompoundStmt"
	DeclarationList    Kind = "DeclarationList"
	StatementList      Kind = "StatementList"
	ExpressionStmt     Kind = "ExpressionStmt"
	SelectionStmt      Kind = "SelectionStmt"
	IterationStmt      Kind = "IterationStmt"
	ReturnStmt         Kind = "ReturnStmt"
	Expression         Kind = "Expression"
	Var                Kind = "Var"
	SimpleExpression   Kind = "SimpleExpression"
	AdditiveExpression Kind = "AdditiveExpression"
	Term               Kind = "Term"
	Factor             Kind = "Factor"
	Call               Kind = "Call"
	Args               Kind = "Args"

	// ArgList is a legacy name for Args. The parser never emits it.
	ArgList Kind = "ArgList"
)

// Node is a parse-tree vertex.
type Node struct {
	Kind     Kind
	Range    span.Range
	Children []*Node
}

// New creates a node spanning [left, right). Nil children are dropped so
// optional sub-results can be passed straight through.
func New(kind Kind, left, right int, children ...*Node) *Node {
	n := &Node{Kind: kind, Range: span.R(left, right)}
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

// AddChild appends child unless it is nil.
func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

// FirstChildOfKind returns the first direct child of the given kind.
func (n *Node) FirstChildOfKind(kind Kind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

// ChildrenOfKind returns all direct children of the given kind.
func (n *Node) ChildrenOfKind(kind Kind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Equal reports whether two trees have the same kinds, ranges and shape.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Range != b.Range || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// Uncontained returns the first node whose range escapes its parent's,
// or nil when every child range nests inside its parent.
func Uncontained(root *Node) *Node {
	var bad *Node
	Walk(root, func(n *Node) bool {
		if bad != nil {
			return false
		}
		for _, c := range n.Children {
			if !n.Range.Contains(c.Range) {
				bad = c
				return false
			}
		}
		return true
	})
	return bad
}

// Text joins the lexemes of the tokens n spans.
func (n *Node) Text(tokens []token.Token) string {
	left, right := n.Range.Left, n.Range.Right
	if left < 0 {
		left = 0
	}
	if right > len(tokens) {
		right = len(tokens)
	}
	parts := make([]string, 0, right-left)
	for _, tok := range tokens[left:right] {
		parts = append(parts, tok.Lexeme)
	}
	return strings.Join(parts, " ")
}

// String renders the tree with one node per line, indented by depth.
func (n *Node) String() string {
	return n.Format(nil)
}

// Format renders the tree like String. When tokens is non-nil, leaf nodes
// are followed by the source text they cover.
func (n *Node) Format(tokens []token.Token) string {
	var b strings.Builder
	n.format(&b, 0, tokens)
	return b.String()
}

func (n *Node) format(b *strings.Builder, indent int, tokens []token.Token) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(string(n.Kind))
	b.WriteString(" ")
	b.WriteString(n.Range.String())
	if tokens != nil && len(n.Children) == 0 {
		b.WriteString(" ")
		b.WriteString(n.Text(tokens))
	}
	b.WriteString("\n")
	for _, child := range n.Children {
		child.format(b, indent+1, tokens)
	}
}
