package source

import (
	"bytes"
	"slices"
)

// FileID indexes a file inside its FileSet.
type FileID uint32

// FileFlags records how Content differs from the bytes on disk.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // не с диска: тест, stdin, invoke
	FileHadBOM                               // a UTF-8 BOM was stripped
	FileNormalizedCRLF                       // CRLF was rewritten to LF
)

// File is one loaded source. Content is normalized: no BOM, LF line endings.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Flags   FileFlags
}

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32
}

var (
	utf8BOM = []byte("\ufeff")
	crlf    = []byte("\r\n")
	lf      = []byte("\n")
)

// normalize strips a leading BOM and rewrites CRLF to LF. Lone '\r' bytes
// are kept. Denormalize is the inverse.
func normalize(raw []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(raw, utf8BOM); ok {
		raw = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(raw, crlf) {
		raw = bytes.ReplaceAll(raw, crlf, lf)
		flags |= FileNormalizedCRLF
	}
	return raw, flags
}

// Denormalize re-applies the BOM and CRLF line endings that Load stripped,
// so text derived from Content can be written back over the original file.
// Mixed line endings all come back as CRLF.
func (f *File) Denormalize(text []byte) []byte {
	if f.Flags&FileNormalizedCRLF != 0 {
		text = bytes.ReplaceAll(text, lf, crlf)
	}
	if f.Flags&FileHadBOM != 0 {
		text = append(slices.Clip(utf8BOM), text...)
	}
	return text
}
