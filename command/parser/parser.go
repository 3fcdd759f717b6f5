package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/alecthomas/participle/v2/lexer/stateful"
	"github.com/squareup/colstore/errors"
)

var (
	lex = stateful.MustSimple([]stateful.Rule{
		{`Ident`, "[a-zA-Z_][a-zA-Z_0-9]*|`[^`]*`", nil},
		{`Number`, `[-+]?\d*\.?\d+([eE][-+]?\d+)?`, nil},
		{`String`, `'[^']*'|"[^"]*"`, nil},
		{`Punct`, `[,.()=;]`, nil},
		{`Whitespace`, `\s+`, nil},
	})
	parser = participle.MustBuild(&AST{},
		participle.Lexer(lex),
		participle.CaseInsensitive("Ident"),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
		participle.Unquote("String"),
		participle.Map(func(token lexer.Token) (lexer.Token, error) {
			if strings.HasPrefix(token.Value, "`") {
				token.Value = token.Value[1 : len(token.Value)-1]
			}
			return token, nil
		}, "Ident"),
	)
)

// Parse a statement.
func Parse(statement string) (*AST, error) {
	ast := &AST{}
	if err := parser.ParseString("", statement, ast); err != nil {
		return nil, errors.NewInvalidStatementError(err.Error())
	}
	return ast, nil
}
