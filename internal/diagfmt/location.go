package diagfmt

import (
	"paste/internal/diag"
	"paste/internal/source"
)

const unknownPath = "<unknown>"

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	if f == nil {
		return unknownPath
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	}
	// auto: короткие пути как есть, длинные абсолютные — basename
	if len(f.Path) > 40 && f.Path[0] == '/' {
		return f.FormatPath("basename", "")
	}
	return f.Path
}

// located reports whether d points into a file of fs. Timing reports and
// load failures carry no location.
func located(d *diag.Diagnostic, fs *source.FileSet) bool {
	if fs == nil || d.Code == diag.ObsTimings {
		return false
	}
	return fs.Get(d.Primary.File) != nil
}
