package diagfmt

import (
	"path/filepath"
	"strings"

	"cdl/internal/diag"
	"cdl/internal/source"
)

const autoPathLimit = 40

func formatPath(path string, mode PathMode, base string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if base == "" {
			base = "."
		}
		absBase, err1 := filepath.Abs(base)
		absPath, err2 := filepath.Abs(path)
		if err1 == nil && err2 == nil {
			if rel, err := filepath.Rel(absBase, absPath); err == nil && !strings.HasPrefix(rel, "..") {
				return filepath.ToSlash(rel)
			}
		}
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAuto:
		if filepath.IsAbs(path) && len(path) > autoPathLimit {
			return filepath.Base(path)
		}
	}
	return path
}

// located reports whether sp points into fs. Project, IO and timing
// diagnostics use the zero span to mean "no location".
func located(d diag.Diagnostic, sp source.Span, fs *source.FileSet) bool {
	if fs == nil || int(sp.File) >= fs.Len() {
		return false
	}
	if sp == (source.Span{}) && d.Code >= diag.SemaInfo && !isComponentCode(d.Code) {
		return false
	}
	return true
}

// isComponentCode: sema codes that always carry a span inside a component.
func isComponentCode(c diag.Code) bool {
	return c >= diag.SemaNotAVector && c <= diag.SemaDependencyFailed && c != diag.SemaUnknownTop
}
