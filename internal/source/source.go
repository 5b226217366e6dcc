// Package source reads program files and runs them through the front end.
package source

import (
	"fmt"

	"cminus/internal/diag"
	"cminus/internal/lexer"
	"cminus/internal/parser"
	"cminus/internal/token"

	"github.com/spf13/afero"
)

// File is a loaded program text.
type File struct {
	Path string
	Text string
}

// Loader reads files from an afero filesystem.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a loader over fs.
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// OsLoader reads from the operating system's filesystem.
func OsLoader() *Loader {
	return NewLoader(afero.NewOsFs())
}

// Load reads the file at path.
func (l *Loader) Load(path string) (*File, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("cannot read file %s: is a directory", path)
	}
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file %s: %w", path, err)
	}
	return &File{Path: path, Text: string(data)}, nil
}

// Expand resolves glob patterns into file paths. A pattern without
// matches is kept as is so that Load reports it.
func (l *Loader) Expand(patterns []string) ([]string, error) {
	var out []string
	for _, pattern := range patterns {
		matches, err := afero.Glob(l.fs, pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			out = append(out, pattern)
			continue
		}
		out = append(out, matches...)
	}
	return out, nil
}

// Options tune a front-end run. The zero value uses the built-in
// keywords and parser.DefaultMaxDepth.
type Options struct {
	Keywords token.Keywords
	// MaxDepth is the nesting ceiling. Zero means parser.DefaultMaxDepth;
	// a negative value disables the ceiling.
	MaxDepth int
}

// Depth resolves MaxDepth to the value handed to parser.WithMaxDepth.
func (o Options) Depth() int {
	if o.MaxDepth == 0 {
		return parser.DefaultMaxDepth
	}
	return o.MaxDepth
}

// Analysis is the outcome of tokenizing and parsing one text.
type Analysis struct {
	Filename string
	Tokens   []token.Token
	LexDiags []diag.Diagnostic
	Result   parser.Result
}

// Analyze tokenizes text and parses the tokens as a program. Parsing runs
// even after lexical errors; the ILLEGAL tokens then fail the parse.
func Analyze(text, filename string, opts Options) *Analysis {
	var lexOpts []lexer.Option
	if opts.Keywords != nil {
		lexOpts = append(lexOpts, lexer.WithKeywords(opts.Keywords))
	}
	tokens, lexDiags := lexer.New(text, filename, lexOpts...).Tokenize()

	return &Analysis{
		Filename: filename,
		Tokens:   tokens,
		LexDiags: lexDiags,
		Result:   parser.Parse(tokens, parser.WithMaxDepth(opts.Depth())),
	}
}

// AnalyzeFile is Analyze over a loaded file.
func AnalyzeFile(f *File, opts Options) *Analysis {
	return Analyze(f.Text, f.Path, opts)
}

// OK reports whether the text tokenized and parsed without errors.
func (a *Analysis) OK() bool {
	return len(a.LexDiags) == 0 && a.Result.OK()
}

// Diagnostics returns lexical diagnostics, then the parse failure, then
// parse warnings.
func (a *Analysis) Diagnostics() []diag.Diagnostic {
	out := append([]diag.Diagnostic(nil), a.LexDiags...)
	return append(out, a.Result.Diagnostics()...)
}
