package codegen

import "strings"

// Writer accumulates VHDL text line by line. Empty lines are never emitted
// twice in a row and never at the start of the output.
type Writer struct {
	buf         strings.Builder
	indentWidth int
	indentLevel int
	blank       bool // последняя строка пустая (или вывод пуст)
}

func newWriter(indentWidth int) *Writer {
	return &Writer{indentWidth: indentWidth, blank: true}
}

// Line writes one indented line. An empty s collapses into a single blank line.
func (w *Writer) Line(s string) {
	if strings.TrimSpace(s) == "" {
		w.Blank()
		return
	}
	for range w.indentLevel * w.indentWidth {
		w.buf.WriteByte(' ')
	}
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
	w.blank = false
}

// Blank requests a separating empty line.
func (w *Writer) Blank() {
	if w.blank {
		return
	}
	w.buf.WriteByte('\n')
	w.blank = true
}

func (w *Writer) Indent() { w.indentLevel++ }
func (w *Writer) Dedent() { w.indentLevel-- }
func (w *Writer) String() string {
	return w.buf.String()
}

// list writes `head (`, the items separated by sep, then `)` + tail.
func (w *Writer) list(head string, items []string, sep, tail string) {
	w.Line(head + " (")
	w.Indent()
	for i, it := range items {
		if i < len(items)-1 {
			it += sep
		}
		w.Line(it)
	}
	w.Dedent()
	w.Line(")" + tail)
}
