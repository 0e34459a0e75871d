package lexer

import (
	"paste/internal/diag"
	"paste/internal/source"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical errors; nil drops them and lexing goes on.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	diag.Emit(lx.opts.Reporter, diag.NewError(code, sp, msg))
}
