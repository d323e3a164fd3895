package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cdl/internal/diag"
	"cdl/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, caret, loc, gutter *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgGreen, color.Bold),
		loc:    color.New(color.Bold),
		gutter: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.caret, p.loc, p.gutter} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждой диагностики печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		sev := p.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID())
		if located(d, d.Primary, fs) {
			fmt.Fprintf(w, "%s: %s: %s\n", p.loc.Sprint(location(fs, d.Primary, opts)), sev, d.Message)
			writeSnippet(w, fs, d.Primary, int(opts.Context), p)
		} else {
			fmt.Fprintf(w, "%s: %s\n", sev, d.Message)
		}
		if !opts.ShowNotes && d.Code != diag.SemaDependencyFailed {
			continue
		}
		for _, n := range d.Notes {
			if located(d, n.Span, fs) && n.Span != (source.Span{}) {
				fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(fs, n.Span, opts), n.Msg)
			} else {
				fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
			}
		}
	}
}

func location(fs *source.FileSet, sp source.Span, opts PrettyOpts) string {
	start, _ := fs.Resolve(sp)
	path := formatPath(fs.Get(sp.File).Path, opts.PathMode, opts.BaseDir)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context int, p palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	first := max(1, int(start.Line)-context)
	gutter := len(fmt.Sprint(start.Line))
	for ln := first; ln <= int(start.Line); ln++ {
		text := expandTabs(f.GetLine(uint32(ln))) //nolint:gosec // ln >= 1
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutter, ln), text)
	}

	line := f.GetLine(start.Line)
	col := min(int(start.Col)-1, len(line))
	pad := runewidth.StringWidth(expandTabs(line[:col]))
	// подчёркиваем только до конца первой строки
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(line))
	}
	width := max(1, runewidth.StringWidth(expandTabs(line[col:max(col, stop)])))
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprint(strings.Repeat(" ", gutter)+" |"), strings.Repeat(" ", pad), p.caret.Sprint(underline))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
