package driver

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"paste/internal/diag"
	"paste/internal/lexer"
	"paste/internal/source"
	"paste/internal/token"
	"paste/internal/tree"
)

// Vars holds pre-lexed `$name` bindings. It is immutable after
// CompileVars and safe to share between goroutines.
type Vars struct {
	values map[string]token.Stream
}

// CompileVars lexes every value once. Values must lex cleanly and must not
// themselves contain `$` references.
func CompileVars(values map[string]string) (*Vars, error) {
	v := &Vars{values: make(map[string]token.Stream, len(values))}
	fs := source.NewFileSet()
	for _, name := range slices.Sorted(maps.Keys(values)) {
		if !isVarName(name) {
			return nil, fmt.Errorf("variable %q: name must be an identifier", name)
		}
		bag := diag.NewBag(1)
		r := diag.BagReporter{Bag: bag}
		file := fs.Get(fs.AddVirtual("$"+name, []byte(values[name])))
		stream, _ := tree.Build(lexer.Tokenize(file, lexer.Options{Reporter: r}), r)
		if bag.HasErrors() {
			return nil, fmt.Errorf("variable %q: %s", name, bag.Items()[0].Message)
		}
		if len(stream) == 0 {
			return nil, fmt.Errorf("variable %q: empty value", name)
		}
		v.values[name] = stream
	}
	return v, nil
}

// ParseVarFlags parses `name=value` pairs as given on the command line.
func ParseVarFlags(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q (expected name=value)", p)
		}
		out[strings.TrimPrefix(name, "$")] = value
	}
	return out, nil
}

// Names returns the bound variable names in sorted order.
func (v *Vars) Names() []string {
	if v == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(v.values))
}

func (v *Vars) lookup(name string) (token.Stream, bool) {
	if v == nil {
		return nil, false
	}
	s, ok := v.values[name]
	return s, ok
}

// substitute replaces bound `$name` pairs with invisible groups holding the
// value tokens. Substituted tokens take the span of the reference so
// diagnostics point into the invocation. Unbound references are returned.
func (v *Vars) substitute(in token.Stream) (token.Stream, []token.Token) {
	var unbound []token.Token
	out := make(token.Stream, 0, len(in))
	for i := 0; i < len(in); i++ {
		t := in[i]
		if t.Kind == token.Group && t.Group != nil {
			inner, ub := v.substitute(t.Group.Stream)
			unbound = append(unbound, ub...)
			g := *t.Group
			g.Stream = inner
			t.Group = &g
			out = append(out, t)
			continue
		}
		if !t.IsPunct('$') || i+1 >= len(in) || in[i+1].Kind != token.Ident || len(in[i+1].Leading) > 0 {
			out = append(out, t)
			continue
		}
		name := in[i+1]
		ref := t.Span.Cover(name.Span)
		value, ok := v.lookup(name.Text)
		if !ok {
			unbound = append(unbound, token.Token{Kind: token.Ident, Span: ref, Text: "$" + name.Text})
			out = append(out, t)
			continue
		}
		g := token.NewGroup(token.DelimNone, ref, ref, relocate(value, ref))
		g.Leading = t.Leading
		out = append(out, g)
		i++
	}
	return out, unbound
}

// relocate copies a var value, pointing every span at ref and dropping
// the value's own leading trivia on the first token.
func relocate(s token.Stream, ref source.Span) token.Stream {
	out := make(token.Stream, len(s))
	for i, t := range s {
		t.Span = ref
		if i == 0 {
			t.Leading = nil
		}
		if t.Kind == token.Group && t.Group != nil {
			g := *t.Group
			g.Open, g.Close = ref, ref
			g.Stream = relocate(g.Stream, ref)
			g.CloseLeading = nil
			t.Group = &g
		}
		out[i] = t
	}
	return out
}

func isVarName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isLetter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isLetter && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}
	return true
}
