package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

var snippetSeeds = []string{
	"",
	"fn main() {}\n",
	"paste! { fn [<get_ x>]() {} }\n",
	"let v = paste!([<a b>]);\n",
	"paste! { #[doc = \"see \" [<a b>]] struct S; }\n",
	"paste! { const [<'a b>]: () = (); }\n",
	"paste! { fn [<r#type _ x>]() {} }\n",
	"paste! { [<a 1.5>] }\n",
	"paste! { [<>] }\n",
	"paste! { [<a $x>] }\n",
	"/* nested /* comment */ */ paste!{ [<x:upper y:snake>] }",
	"m!{a::b=>c} 'a 'b' \"s\\n\" b\"x\" br#\"y\"#",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range snippetSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every *.rs fixture of the driver UI corpus.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "driver", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".rs" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
