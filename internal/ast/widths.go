package ast

// Widths maps vec-typed identifiers to their declared width.
// Only vec declarations are recorded; membership is what makes a splice legal.
type Widths struct {
	m     map[string]Width
	order []string
}

func NewWidths() *Widths {
	return &Widths{m: make(map[string]Width)}
}

// Declare records name; a later declaration of the same name overwrites the width.
func (w *Widths) Declare(name string, width Width) {
	if _, ok := w.m[name]; !ok {
		w.order = append(w.order, name)
	}
	w.m[name] = width
}

func (w *Widths) Lookup(name string) (Width, bool) {
	width, ok := w.m[name]
	return width, ok
}

// Names returns vec names in declaration order.
func (w *Widths) Names() []string {
	return w.order
}

func (w *Widths) Len() int {
	return len(w.order)
}
