package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cdl/internal/ast"
	"cdl/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed component:
// 1) the component span is non-empty and within file content bounds
// 2) every item span is non-empty and fully contained in the component span
// 3) every arch statement span is contained in its arch item span
func CheckSpanInvariants(u *ast.Unit, sf *source.File) error {
	if u == nil || sf == nil {
		return fmt.Errorf("nil unit or file")
	}
	comp := u.Component()
	if comp == nil {
		return fmt.Errorf("component node not found")
	}

	// 1) component span sanity
	if comp.Span.End <= comp.Span.Start {
		return fmt.Errorf("component %s: span is empty: %v", u.Name, comp.Span)
	}
	if comp.Span.File != sf.ID {
		return fmt.Errorf("component %s: span points to different file id: got=%d want=%d", u.Name, comp.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if comp.Span.End > lenContent {
		return fmt.Errorf("component %s: span end beyond content: %d > %d", u.Name, comp.Span.End, lenContent)
	}
	if !within(comp.NameSpan, comp.Span) {
		return fmt.Errorf("component %s: name span %v is outside %v", u.Name, comp.NameSpan, comp.Span)
	}

	// 2) items inside the component; 3) statements inside their arch
	for _, it := range comp.Items {
		item := u.Tree.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		if item.Span.End <= item.Span.Start {
			return fmt.Errorf("empty item span: %v", item.Span)
		}
		if !within(item.Span, comp.Span) {
			return fmt.Errorf("item span %v is outside component span %v", item.Span, comp.Span)
		}
		arch, ok := u.Tree.Items.Arch(it)
		if !ok {
			continue
		}
		for _, id := range arch.Stmts {
			sp := u.Tree.Stmts.Get(id).Span
			if sp.End <= sp.Start {
				return fmt.Errorf("empty statement span: %v", sp)
			}
			if !within(sp, item.Span) {
				return fmt.Errorf("statement span %v is outside arch span %v", sp, item.Span)
			}
		}
	}
	return nil
}

func within(inner, outer source.Span) bool {
	return inner.File == outer.File && inner.Start >= outer.Start && inner.End <= outer.End
}
