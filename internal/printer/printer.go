package printer

import (
	"fmt"

	"paste/internal/lexer"
	"paste/internal/source"
	"paste/internal/token"
	"paste/internal/tree"
)

type Mode uint8

const (
	// Exact reproduces recorded trivia and nothing else.
	Exact Mode = iota
	// Spaced separates tokens without trivia by a single space.
	Spaced
)

type Options struct {
	Mode Mode
}

type printer struct {
	w    *Writer
	opt  Options
	glue bool // предыдущий токен — joint-пунктуация или открывающая скобка
}

// Print renders stream followed by the trailing trivia of the file.
func Print(stream token.Stream, trailing []token.Trivia, opt Options) []byte {
	p := printer{w: NewWriter(256), opt: opt, glue: true}
	p.printStream(stream)
	p.printTrivia(trailing)
	return p.w.Bytes()
}

// String is Print for callers that want a string.
func String(stream token.Stream, opt Options) string {
	return string(Print(stream, nil, opt))
}

func (p *printer) printStream(s token.Stream) {
	for _, t := range s {
		p.printToken(t)
	}
}

func (p *printer) printToken(t token.Token) {
	if t.Kind == token.Group && t.Group != nil {
		g := t.Group
		if g.Delim == token.DelimNone {
			p.printTrivia(t.Leading)
			p.printStream(g.Stream)
			return
		}
		p.separate(t.Leading)
		p.w.WriteString(g.Delim.Open())
		p.glue = true
		p.printStream(g.Stream)
		if len(g.CloseLeading) > 0 {
			p.printTrivia(g.CloseLeading)
		}
		p.w.WriteString(g.Delim.Close())
		p.glue = false
		return
	}
	if t.Kind == token.EOF {
		p.printTrivia(t.Leading)
		return
	}
	p.separate(t.Leading)
	p.w.WriteString(t.Text)
	p.glue = t.Kind == token.Punct && t.Joint
}

func (p *printer) separate(leading []token.Trivia) {
	if len(leading) > 0 {
		p.printTrivia(leading)
		return
	}
	if p.opt.Mode == Spaced && !p.glue {
		p.w.Space()
	}
}

func (p *printer) printTrivia(tv []token.Trivia) {
	for _, t := range tv {
		p.w.WriteString(t.Text)
	}
}

// CheckRoundTrip re-lexes out and verifies that it yields the same token
// trees as want (kinds and texts; spans and trivia are ignored).
func CheckRoundTrip(out []byte, want token.Stream) error {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("roundtrip.rs", out))
	got, _ := tree.Build(lexer.Tokenize(file, lexer.Options{}), nil)
	return sameTrees(got, want, "")
}

func sameTrees(got, want token.Stream, path string) error {
	got, want = flattenInvisible(got), flattenInvisible(want)
	if len(got) != len(want) {
		return fmt.Errorf("printer: %stoken count %d != %d", path, len(got), len(want))
	}
	for i := range got {
		g, w := got[i], want[i]
		if g.Kind != w.Kind {
			return fmt.Errorf("printer: %s#%d kind %s != %s", path, i, g.Kind, w.Kind)
		}
		if g.Kind != token.Group {
			if g.Text != w.Text {
				return fmt.Errorf("printer: %s#%d text %q != %q", path, i, g.Text, w.Text)
			}
			continue
		}
		if g.Group.Delim != w.Group.Delim {
			return fmt.Errorf("printer: %s#%d delimiter %s != %s", path, i, g.Group.Delim, w.Group.Delim)
		}
		if err := sameTrees(g.Group.Stream, w.Group.Stream, fmt.Sprintf("%s#%d/", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func flattenInvisible(s token.Stream) token.Stream {
	has := false
	for _, t := range s {
		if t.IsGroup(token.DelimNone) {
			has = true
			break
		}
	}
	if !has {
		return s
	}
	out := make(token.Stream, 0, len(s))
	for _, t := range s {
		if t.IsGroup(token.DelimNone) {
			out = append(out, flattenInvisible(t.Group.Stream)...)
			continue
		}
		out = append(out, t)
	}
	return out
}
