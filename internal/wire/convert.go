package wire

import (
	"fmt"

	"paste/internal/diag"
	"paste/internal/source"
	"paste/internal/token"
)

var kindByName = map[string]token.Kind{}

var delimByName = map[string]token.Delimiter{
	"":        token.DelimNone,
	"None":    token.DelimNone,
	"Paren":   token.DelimParen,
	"Brace":   token.DelimBrace,
	"Bracket": token.DelimBracket,
}

func init() {
	for k := token.Ident; k <= token.Group; k++ {
		kindByName[k.String()] = k
	}
}

// ToStream converts wire tokens into a token stream located in file.
func ToStream(in []Token, file source.FileID) (token.Stream, error) {
	out := make(token.Stream, 0, len(in))
	for i := range in {
		t, err := toToken(&in[i], file, fmt.Sprintf("tokens[%d]", i))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func toToken(w *Token, file source.FileID, path string) (token.Token, error) {
	kind, ok := kindByName[w.Kind]
	if !ok {
		return token.Token{}, fmt.Errorf("wire: %s: unknown kind %q", path, w.Kind)
	}
	if w.End < w.Start {
		return token.Token{}, fmt.Errorf("wire: %s: end %d before start %d", path, w.End, w.Start)
	}
	sp := source.Span{File: file, Start: w.Start, End: w.End}

	if kind != token.Group {
		if w.Text == "" {
			return token.Token{}, fmt.Errorf("wire: %s: %s without text", path, w.Kind)
		}
		if kind == token.Punct && len(w.Text) != 1 {
			return token.Token{}, fmt.Errorf("wire: %s: punctuation must be one character, got %q", path, w.Text)
		}
		return token.Token{Kind: kind, Span: sp, Text: w.Text, Joint: w.Joint && kind == token.Punct}, nil
	}

	delim, ok := delimByName[w.Delim]
	if !ok {
		return token.Token{}, fmt.Errorf("wire: %s: unknown delimiter %q", path, w.Delim)
	}
	children := make(token.Stream, 0, len(w.Children))
	for i := range w.Children {
		c, err := toToken(&w.Children[i], file, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return token.Token{}, err
		}
		children = append(children, c)
	}
	open, closeSp := sp, sp
	if delim != token.DelimNone && sp.Len() >= 2 {
		open = source.Span{File: file, Start: sp.Start, End: sp.Start + 1}
		closeSp = source.Span{File: file, Start: sp.End - 1, End: sp.End}
	}
	return token.NewGroup(delim, open, closeSp, children), nil
}

// FromStream converts a token stream back to wire tokens.
func FromStream(in token.Stream) []Token {
	out := make([]Token, 0, len(in))
	for _, t := range in {
		out = append(out, fromToken(t))
	}
	return out
}

func fromToken(t token.Token) Token {
	w := Token{Kind: t.Kind.String(), Start: t.Span.Start, End: t.Span.End}
	if t.Kind != token.Group || t.Group == nil {
		w.Text = t.Text
		w.Joint = t.Joint
		return w
	}
	g := t.Group
	if g.Delim != token.DelimNone {
		w.Delim = g.Delim.String()
	}
	w.Children = FromStream(g.Stream)
	return w
}

// FromDiagnostics converts diagnostics; spans outside the request file
// are reported as 0..0.
func FromDiagnostics(diags []diag.Diagnostic, file source.FileID) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		start, end := offsets(d.Primary, file)
		wd := Diagnostic{Code: d.Code.ID(), Message: d.Message, Start: start, End: end}
		for _, n := range d.Notes {
			ns, ne := offsets(n.Span, file)
			wd.Notes = append(wd.Notes, Note{Message: n.Msg, Start: ns, End: ne})
		}
		out = append(out, wd)
	}
	return out
}

func offsets(sp source.Span, file source.FileID) (uint32, uint32) {
	if sp.File != file {
		return 0, 0
	}
	return sp.Start, sp.End
}
