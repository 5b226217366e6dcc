// Package grammar carries the EBNF description of the language that the
// parser implements, one production per grammar rule.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"

	"golang.org/x/exp/ebnf"
)

// Start is the production a program is derived from.
const Start = "Program"

//go:embed cminus.ebnf
var source []byte

// Source returns the EBNF text.
func Source() []byte {
	return append([]byte(nil), source...)
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("cminus.ebnf", bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Verify loads the grammar and checks that every production is defined
// and reachable from Start.
func Verify() (ebnf.Grammar, error) {
	g, err := Load()
	if err != nil {
		return nil, err
	}
	if err := ebnf.Verify(g, Start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

// Productions returns the production names of g. Syntactic productions
// come first, lexical ones after, each group sorted.
func Productions(g ebnf.Grammar) []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		li, lj := isLexical(names[i]), isLexical(names[j])
		if li != lj {
			return lj
		}
		return names[i] < names[j]
	})
	return names
}

func isLexical(name string) bool {
	return name != "" && name[0] >= 'a' && name[0] <= 'z'
}
