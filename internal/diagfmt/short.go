package diagfmt

import (
	"fmt"
	"io"

	"paste/internal/diag"
	"paste/internal/source"
)

// Short prints one line per diagnostic:
// <path>:<line>:<col>: <severity> <CODE>: <message>
// Timing reports are skipped.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	for _, d := range bag.Items() {
		if d.Code == diag.ObsTimings {
			continue
		}
		if !located(&d, fs) {
			fmt.Fprintf(w, "%s %s: %s\n", d.Severity.Label(), d.Code.ID(), d.Message)
			continue
		}
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(fs.Get(d.Primary.File), fs, mode), start.Line, start.Col,
			d.Severity.Label(), d.Code.ID(), d.Message)
	}
}
