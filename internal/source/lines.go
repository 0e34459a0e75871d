package source

import (
	"slices"

	"fortio.org/safecast"
)

func buildLineIndex(content []byte) []uint32 {
	var idx []uint32
	for i, b := range content {
		if b != '\n' {
			continue
		}
		off, err := safecast.Conv[uint32](i)
		if err != nil {
			break
		}
		idx = append(idx, off)
	}
	return idx
}

// toLineCol maps a byte offset to a 1-based position. The line number is
// the count of newlines strictly before off, plus one.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	n, _ := slices.BinarySearch(lineIdx, off)
	var lineStart uint32
	if n > 0 {
		lineStart = lineIdx[n-1] + 1
	}
	line, err := safecast.Conv[uint32](n + 1)
	if err != nil {
		line = 1
	}
	return LineCol{Line: line, Col: off - lineStart + 1}
}

// lineBounds returns the byte range of 1-based line n without its '\n'.
func (f *File) lineBounds(n uint32) (start, end int, ok bool) {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return 0, 0, false
	}
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end = len(f.Content)
	if int(n) <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	return start, end, start < len(f.Content)
}

// GetLine returns line n (1-based) without its trailing newline, "" when
// the file has no such line.
func (f *File) GetLine(n uint32) string {
	start, end, ok := f.lineBounds(n)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}
