package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"paste/internal/source"
	"paste/internal/token"
)

type TokenOutput struct {
	Kind     string        `json:"kind"`
	Text     string        `json:"text,omitempty"`
	Delim    string        `json:"delim,omitempty"`
	Start    uint32        `json:"start"`
	End      uint32        `json:"end"`
	Joint    bool          `json:"joint,omitempty"`
	Leading  []string      `json:"leading,omitempty"`
	Children []TokenOutput `json:"children,omitempty"`
}

// FormatTokensPretty выводит дерево токенов, группы с отступом.
func FormatTokensPretty(w io.Writer, stream token.Stream, fs *source.FileSet) error {
	n := 0
	return formatTreePretty(w, stream, fs, 0, &n)
}

func formatTreePretty(w io.Writer, stream token.Stream, fs *source.FileSet, depth int, n *int) error {
	indent := strings.Repeat("  ", depth)
	for _, tok := range stream {
		*n++
		startPos, endPos := fs.Resolve(tok.Span)

		var leading []string
		for _, trivia := range tok.Leading {
			leading = append(leading, trivia.Kind.String())
		}

		label := tok.Kind.String()
		if tok.Kind == token.Group && tok.Group != nil {
			label += "(" + tok.Group.Delim.String() + ")"
		}
		if _, err := fmt.Fprintf(w, "%3d: %s%-15s", *n, indent, label); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if tok.Joint {
			fmt.Fprint(w, " joint")
		}
		if len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.Group && tok.Group != nil {
			if err := formatTreePretty(w, tok.Group.Stream, fs, depth+1, n); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatTokensJSON выводит дерево токенов в JSON формате
func FormatTokensJSON(w io.Writer, stream token.Stream) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokensJSON(stream))
}

func tokensJSON(stream token.Stream) []TokenOutput {
	output := make([]TokenOutput, 0, len(stream))
	for _, tok := range stream {
		out := TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: tok.Span.Start,
			End:   tok.Span.End,
			Joint: tok.Joint,
		}
		for _, trivia := range tok.Leading {
			out.Leading = append(out.Leading, trivia.Kind.String())
		}
		if tok.Kind == token.Group && tok.Group != nil {
			out.Delim = tok.Group.Delim.String()
			out.Children = tokensJSON(tok.Group.Stream)
		}
		output = append(output, out)
	}
	return output
}
