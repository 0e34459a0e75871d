package source

import (
	"os"
	"path/filepath"
	"strings"
)

// normalizePath даёт единый вид путей в диффах и golden-файлах на всех ОС
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns the slash-normalized absolute form of path.
func AbsolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath returns path relative to baseDir. Paths outside baseDir come
// back absolute.
func RelativePath(path, baseDir string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(abs), nil
	}
	return normalizePath(rel), nil
}

// FormatPath renders the path for mode "absolute", "relative" (against
// baseDir, or the working directory when empty) or "basename". Any other
// mode, and any resolution failure, yields Path unchanged.
func (f *File) FormatPath(mode, baseDir string) string {
	var (
		out string
		err error
	)
	switch mode {
	case "absolute":
		out, err = AbsolutePath(f.Path)
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd() //nolint:errcheck // "" falls back to Path below
		}
		out, err = RelativePath(f.Path, baseDir)
	case "basename":
		return filepath.Base(f.Path)
	default:
		return f.Path
	}
	if err != nil {
		return f.Path
	}
	return out
}
