package ast

// Walk visits id and its subexpressions in source order. When fn returns
// false the children of that node are skipped.
func (e *Exprs) Walk(id ExprID, fn func(ExprID) bool) {
	expr := e.Get(id)
	if expr == nil || !fn(id) {
		return
	}
	switch expr.Kind {
	case ExprBinary:
		b, _ := e.Binary(id)
		e.Walk(b.Left, fn)
		e.Walk(b.Right, fn)
	case ExprUnary:
		u, _ := e.Unary(id)
		e.Walk(u.Operand, fn)
	case ExprTernary:
		t, _ := e.Ternary(id)
		e.Walk(t.Cond, fn)
		e.Walk(t.Then, fn)
		e.Walk(t.Else, fn)
	case ExprSplice:
		s, _ := e.Splice(id)
		e.Walk(s.Target, fn)
		e.Walk(s.High, fn)
		if s.Low != s.High {
			e.Walk(s.Low, fn)
		}
	}
}

// Paths returns every dotted reference (`inst.port`) under id, outermost
// chain only, in source order.
func (e *Exprs) Paths(id ExprID) []ExprID {
	var out []ExprID
	e.Walk(id, func(cur ExprID) bool {
		b, ok := e.Binary(cur)
		if !ok || b.Op != ExprBinaryMember {
			return true
		}
		out = append(out, cur)
		return false
	})
	return out
}
