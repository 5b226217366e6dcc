package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cminus/internal/lexer"
	"cminus/internal/parser"
	"cminus/internal/source"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// replRules are the entry rules the REPL can parse input with.
var replRules = map[string]func(p *parser.Parser, n int) parser.Result{
	"program": func(p *parser.Parser, n int) parser.Result { return p.Parse() },
	"stmt":    func(p *parser.Parser, n int) parser.Result { return p.StatementList(0, n) },
	"expr":    func(p *parser.Parser, n int) parser.Result { return p.Expression(0, n) },
}

var (
	promptColor = color.New(color.FgGreen)
	bannerColor = color.New(color.FgCyan, color.Bold)
)

func (a *app) newReplCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse input interactively",
		Long: `Read source text and print its parse tree.

Input is parsed once braces are balanced. Commands:
  :program, :stmt, :expr   switch the rule input is parsed with
  exit                     quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := replRules[mode]; !ok {
				return fmt.Errorf("unknown mode %q (want program, stmt or expr)", mode)
			}
			opts, err := a.options()
			if err != nil {
				return err
			}
			return a.repl(mode, opts)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "program", "initial rule: program, stmt or expr")

	return cmd
}

func (a *app) repl(mode string, opts source.Options) error {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".cminus_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            promptColor.Sprint("cminus> "),
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("readline init failed: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "%s %s\n\n", bannerColor.Sprint("cminus REPL"),
		faintColor.Sprintf("(mode %s; type 'exit' or Ctrl+D to quit)", mode))

	var accumulated strings.Builder
	braceDepth := 0

	for {
		if braceDepth > 0 {
			rl.SetPrompt(faintColor.Sprint("...     "))
		} else {
			rl.SetPrompt(promptColor.Sprintf("%s> ", mode))
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if braceDepth > 0 {
					accumulated.Reset()
					braceDepth = 0
					continue
				}
				fmt.Fprintln(rl.Stdout(), faintColor.Sprint("(use 'exit' or Ctrl+D to quit)"))
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(rl.Stdout())
			}
			return nil
		}

		trimmed := strings.TrimSpace(line)
		if braceDepth == 0 {
			if trimmed == "exit" {
				return nil
			}
			if strings.HasPrefix(trimmed, ":") {
				mode = switchMode(rl.Stdout(), mode, trimmed[1:])
				continue
			}
		}

		braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
		accumulated.WriteString(line)
		accumulated.WriteString("\n")
		if braceDepth > 0 {
			continue
		}
		braceDepth = 0

		text := accumulated.String()
		accumulated.Reset()
		if strings.TrimSpace(text) == "" {
			continue
		}
		evalInput(rl.Stdout(), rl.Stderr(), mode, text, opts)
	}
}

func switchMode(w io.Writer, current, next string) string {
	if _, ok := replRules[next]; !ok {
		modes := make([]string, 0, len(replRules))
		for m := range replRules {
			modes = append(modes, ":"+m)
		}
		sort.Strings(modes)
		fmt.Fprintf(w, "unknown command %q; try %s\n", ":"+next, strings.Join(modes, ", "))
		return current
	}
	return next
}

// evalInput parses text with the rule of mode and prints the tree or the
// diagnostics.
func evalInput(stdout, stderr io.Writer, mode, text string, opts source.Options) {
	var lexOpts []lexer.Option
	if opts.Keywords != nil {
		lexOpts = append(lexOpts, lexer.WithKeywords(opts.Keywords))
	}
	tokens, lexDiags := lexer.New(text, "<repl>", lexOpts...).Tokenize()
	if len(lexDiags) > 0 {
		printDiags(stderr, "<repl>", lexDiags)
		return
	}

	p := parser.New(tokens, parser.WithMaxDepth(opts.Depth()))
	r := replRules[mode](p, len(tokens))
	printDiags(stderr, "<repl>", r.Diagnostics())
	if !r.OK() {
		return
	}
	if r.Node != nil {
		fmt.Fprint(stdout, r.Node.Format(tokens))
	}
	if r.Last < len(tokens)-1 {
		fmt.Fprintln(stderr, warnColor.Sprintf("ignored input from %q at %s", tokens[r.Last+1].Lexeme, tokens[r.Last+1].Span.Start))
	}
}
