// Package jsstrip strips comments out of JS/TS source before the line-oriented regex scanners in
// internal/jsimport and internal/callgraph run over it. It never supplies an
// AST for those scanners to read — it only removes lexical noise that would
// otherwise produce phantom matches (e.g. an import statement mentioned
// inside a comment). String and template-literal contents are left in place;
// internal/jsimport blanks template literals itself before calling Strip.
//
// Pooled tree-sitter parsers are reused across calls (one pool per grammar),
// grounded on specvital-core/pkg/parser/tspool.
package jsstrip

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

var (
	jsLang *sitter.Language
	tsLang *sitter.Language

	langOnce sync.Once

	jsPool sync.Pool
	tsPool sync.Pool
)

func initLanguages() {
	langOnce.Do(func() {
		jsLang = javascript.GetLanguage()
		tsLang = typescript.GetLanguage()
	})
}

func poolFor(isTS bool) *sync.Pool {
	if isTS {
		return &tsPool
	}
	return &jsPool
}

func getParser(isTS bool) *sitter.Parser {
	pool := poolFor(isTS)
	if p := pool.Get(); p != nil {
		if parser, ok := p.(*sitter.Parser); ok {
			return parser
		}
	}
	initLanguages()
	parser := sitter.NewParser()
	if isTS {
		parser.SetLanguage(tsLang)
	} else {
		parser.SetLanguage(jsLang)
	}
	return parser
}

func putParser(isTS bool, p *sitter.Parser) {
	if p == nil {
		return
	}
	poolFor(isTS).Put(p)
}

func parse(ctx context.Context, isTS bool, src []byte) (*sitter.Tree, error) {
	parser := getParser(isTS)
	defer putParser(isTS, parser)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("jsstrip: parse failed: %w", err)
	}
	return tree, nil
}
