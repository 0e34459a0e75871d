package driver

import (
	"fmt"

	"paste/internal/diag"
	"paste/internal/lexer"
	"paste/internal/source"
	"paste/internal/token"
	"paste/internal/tree"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	// Stream is the token tree built from Tokens.
	Stream token.Stream
	Bag    *diag.Bag
}

func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return TokenizeSource(fs, fs.Get(fileID), maxDiagnostics), nil
}

// TokenizeSource lexes an already loaded file and builds its token tree.
func TokenizeSource(fs *source.FileSet, file *source.File, maxDiagnostics int) *TokenizeResult {
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	stream, _ := tree.Build(tokens, reporter)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Stream:  stream,
		Bag:     bag,
	}
}
