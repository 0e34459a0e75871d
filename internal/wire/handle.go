package wire

import (
	"paste/internal/diag"
	"paste/internal/paste"
	"paste/internal/source"
)

// Handle runs one request through the engine. base supplies defaults that
// the request may override. Conversion errors are returned; engine
// failures become Response.Diagnostics.
func Handle(req *Request, base paste.Options) (*Response, error) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("<invoke>", nil)

	stream, err := ToStream(req.Tokens, file)
	if err != nil {
		return nil, err
	}

	opts := base
	if req.MaxDepth > 0 {
		opts.MaxDepth = req.MaxDepth
	}
	if req.DocAttributes != nil {
		opts.DocAttributes = *req.DocAttributes
	}

	out, err := paste.Expand(stream, opts)
	if err != nil {
		ds := paste.AsDiagnostics(err)
		if ds == nil {
			return nil, err
		}
		diags := make([]diag.Diagnostic, 0, len(ds))
		for _, e := range ds {
			diags = append(diags, e.Diagnostic())
		}
		return &Response{Diagnostics: FromDiagnostics(diags, file)}, nil
	}
	return &Response{Tokens: FromStream(out)}, nil
}
