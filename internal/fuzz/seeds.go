package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var builtinSeeds = []string{
	"",
	"component",
	"component C { }",
	"component C { int W; port { input vec a[W]; output vec b[W]; } arch { b <= a[W-1:0]; } }",
	"component C { port { output vec o; } arch { o <= a ? b ? c : d : e; } }",
	"component C { arch { process p { { } } generate { } connect { } } }",
	"component C { arch { X x = new X(N = 4, M = 0b1010); x.a <= 0xff; } }",
	"component C { arch { const uint K = 3; signal vec s[8]; variable int v; } }",
	`component C { port { input vec a; } arch { b <= x"1f" & !a; } }`,
	"component C { arch { a <= b <= c; } }",
	"component C { /* unterminated",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.cdl файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".cdl" {
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
