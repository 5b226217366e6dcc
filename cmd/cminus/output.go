package main

import (
	"encoding/json"
	"fmt"
	"io"

	"cminus/internal/diag"
	"cminus/internal/token"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	okColor    = color.New(color.FgGreen)
	faintColor = color.New(color.Faint)
)

// ---- output helpers ----

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

func printYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("YAML encoding failed: %w", err)
	}
	return enc.Close()
}

// printDiags writes one line per diagnostic as file:line:col: severity[code]: message.
func printDiags(w io.Writer, filename string, diags []diag.Diagnostic) {
	for _, d := range diags {
		c := errorColor
		if d.Severity == diag.Warning {
			c = warnColor
		}
		fmt.Fprintf(w, "%s:%s: %s %s", filename, d.Span.Start, c.Sprintf("%s[%s]:", d.Severity, d.Code), d.Message)
		if d.Hint != "" {
			fmt.Fprint(w, faintColor.Sprintf(" (hint: %s)", d.Hint))
		}
		fmt.Fprintln(w)
	}
}

func diagsToSlice(diags []diag.Diagnostic) []map[string]interface{} {
	result := make([]map[string]interface{}, len(diags))
	for i, d := range diags {
		result[i] = map[string]interface{}{
			"code":     d.Code,
			"severity": d.Severity.String(),
			"message":  d.Message,
			"line":     d.Span.Start.Line,
			"column":   d.Span.Start.Column,
		}
		if d.Hint != "" {
			result[i]["hint"] = d.Hint
		}
	}
	return result
}

// ---- token output helpers ----

func printTokensText(w io.Writer, tokens []token.Token) {
	for i, tok := range tokens {
		fmt.Fprintf(w, "%4d  %-10s %-20s %s\n", i, tok.Kind, tok.Lexeme, tok.Span.Start)
	}
}

func printTokensJSON(w io.Writer, tokens []token.Token, diags []diag.Diagnostic) error {
	type tokenJSON struct {
		Index  int    `json:"index"`
		Kind   string `json:"kind"`
		Lexeme string `json:"lexeme"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
	}

	toks := make([]tokenJSON, 0, len(tokens))
	for i, tok := range tokens {
		toks = append(toks, tokenJSON{
			Index:  i,
			Kind:   tok.Kind.String(),
			Lexeme: tok.Lexeme,
			Line:   tok.Line(),
			Column: tok.Column(),
		})
	}

	return printJSON(w, map[string]interface{}{
		"tokens":      toks,
		"diagnostics": diagsToSlice(diags),
	})
}
