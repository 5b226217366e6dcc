package token

import "fmt"

// Keywords maps reserved spellings to their kinds. Lookup is an exact
// match: no case folding, no prefix matching.
type Keywords map[string]Kind

// DefaultKeywords returns the built-in spelling table.
func DefaultKeywords() Keywords {
	return Keywords{
		"void":   KW_VOID,
		"if":     KW_IF,
		"else":   KW_ELSE,
		"while":  KW_WHILE,
		"return": KW_RETURN,
		"int":    KW_INT,
		"real":   KW_REAL,
	}
}

// KeywordsFromNames builds a table from spelling → kind name pairs, as
// they appear in a config file (e.g. "entier" = "int"). Kind names are
// the canonical keyword spellings.
func KeywordsFromNames(spellings map[string]string) (Keywords, error) {
	kw := make(Keywords, len(spellings))
	for spelling, name := range spellings {
		kind, ok := KindByName(name)
		if !ok || !kind.IsKeyword() {
			return nil, fmt.Errorf("keyword %q: unknown keyword kind %q", spelling, name)
		}
		kw[spelling] = kind
	}
	return kw, nil
}

// Lookup returns the keyword Kind for ident, or IDENT if it is not a keyword.
func (kw Keywords) Lookup(ident string) Kind {
	if kind, ok := kw[ident]; ok {
		return kind
	}
	return IDENT
}

// LookupIdent resolves ident against the default table.
func LookupIdent(ident string) Kind {
	return defaultKeywords.Lookup(ident)
}

var defaultKeywords = DefaultKeywords()
