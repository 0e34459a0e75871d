package driver

import (
	"fmt"

	"paste/internal/diag"
	"paste/internal/paste"
	"paste/internal/token"
	"paste/internal/trace"
)

// invocationExpander finds `name!(...)` invocations at any depth and
// replaces each with the engine's output for its contents.
type invocationExpander struct {
	opts     Options
	reporter diag.Reporter
	tracer   trace.Tracer
	parent   uint64
	expanded int
	skipped  int
}

func (x *invocationExpander) walk(in token.Stream) token.Stream {
	if len(in) == 0 {
		return in
	}
	out := make(token.Stream, 0, len(in))
	for i := 0; i < len(in); i++ {
		t := in[i]
		if x.isInvocation(in, i) {
			out = x.splice(out, in[i], in[i+1], in[i+2])
			i += 2
			continue
		}
		if t.Kind == token.Group && t.Group != nil {
			g := *t.Group
			g.Stream = x.walk(g.Stream)
			t.Group = &g
		}
		out = append(out, t)
	}
	return out
}

// isInvocation: in[i] is a macro name, then `!`, then a delimited group.
func (x *invocationExpander) isInvocation(in token.Stream, i int) bool {
	if i+2 >= len(in) {
		return false
	}
	name, bang, body := in[i], in[i+1], in[i+2]
	if !name.IsIdent() || !x.opts.isMacro(name.Text) || !bang.IsPunct('!') {
		return false
	}
	if body.Kind != token.Group || body.Group == nil || body.Group.Delim == token.DelimNone {
		return false
	}
	// `macro_rules! paste { ... }` defines, not invokes
	return i == 0 || !in[i-1].IsPunct('!')
}

// splice appends the expansion of one invocation to out. A `path::` prefix
// (`paste::paste!`) already in out is dropped together with the name.
func (x *invocationExpander) splice(out token.Stream, name, bang, body token.Token) token.Stream {
	leading := name.Leading
	out, prefixLeading, hadPrefix := dropPathPrefix(out)
	if hadPrefix {
		leading = prefixLeading
	}

	sp := trace.Begin(x.tracer, trace.ScopeNode, "invocation", x.parent)

	inner, unbound := x.opts.Vars.substitute(body.Group.Stream)
	if len(unbound) > 0 {
		for _, ref := range unbound {
			w := diag.NewWarning(diag.PasteUnknownVariable, ref.Span,
				fmt.Sprintf("`%s` is not bound; %s! invocation left unexpanded", ref.Text, name.Text))
			diag.Emit(x.reporter, w.WithNote(body.Span, "bind it with --var or the [vars] table of paste.toml"))
		}
		x.skipped++
		sp.End("skipped")
		return append(out, reattach(token.Stream{name, bang, body}, leading)...)
	}

	popts := x.opts.Paste
	popts.Tracer = x.tracer
	popts.ParentSpan = sp.ID()
	expanded, err := paste.Expand(inner, popts)
	if err != nil {
		paste.AsDiagnostics(err).Report(x.reporter)
		sp.End("failed")
		return append(out, reattach(token.Stream{name, bang, body}, leading)...)
	}
	x.expanded++
	sp.End("")

	// вложенные вызовы внутри результата
	expanded = x.walk(expanded)
	return append(out, reattach(expanded, leading)...)
}

// reattach moves the invocation's leading trivia onto the first token of
// its replacement.
func reattach(s token.Stream, leading []token.Trivia) token.Stream {
	if len(s) == 0 {
		return s
	}
	s = append(token.Stream(nil), s...)
	s[0] = s[0].WithLeading(leading)
	return s
}

// dropPathPrefix removes a trailing `seg::seg::` (optionally `::`-rooted)
// from out and returns the leading trivia of the first removed token.
func dropPathPrefix(out token.Stream) (token.Stream, []token.Trivia, bool) {
	n := len(out)
	cut := n
	for cut >= 3 && out[cut-1].IsPunct(':') && out[cut-2].IsPunct(':') && out[cut-2].Joint && out[cut-3].IsIdent() {
		cut -= 3
	}
	if cut >= 2 && cut < n && out[cut-1].IsPunct(':') && out[cut-2].IsPunct(':') && out[cut-2].Joint {
		cut -= 2
	}
	if cut == n {
		return out, nil, false
	}
	return out[:cut], out[cut].Leading, true
}
