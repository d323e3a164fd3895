package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cdl/internal/ast"
	"cdl/internal/source"
)

// ASTNodeOutput is one node of the JSON tree dump.
type ASTNodeOutput struct {
	Type     string            `json:"type"`
	Name     string            `json:"name,omitempty"`
	Span     source.Span       `json:"span"`
	Fields   map[string]string `json:"fields,omitempty"`
	Children []ASTNodeOutput   `json:"children,omitempty"`
}

// BuildAST converts u into a generic node tree shared by both dump formats.
func BuildAST(u *ast.Unit) ASTNodeOutput {
	tree := u.Tree
	comp := u.Component()
	root := ASTNodeOutput{Type: "Component", Name: u.Name, Span: comp.Span}
	for _, id := range tree.Generics(u.Root) {
		root.Children = append(root.Children, declNode(tree, id))
	}
	if ports := tree.Ports(u.Root); len(ports) > 0 {
		block := ASTNodeOutput{Type: "Ports"}
		for _, id := range ports {
			block.Children = append(block.Children, declNode(tree, id))
		}
		if len(block.Children) > 0 {
			block.Span = block.Children[0].Span.Cover(block.Children[len(block.Children)-1].Span)
		}
		root.Children = append(root.Children, block)
	}
	if arch, ok := tree.Arch(u.Root); ok {
		an := ASTNodeOutput{Type: "Arch", Name: arch.Name, Span: arch.NameSpan}
		for _, st := range arch.Stmts {
			an.Children = append(an.Children, stmtNode(tree, st))
		}
		root.Children = append(root.Children, an)
	}
	return root
}

func declNode(tree *ast.Builder, id ast.DeclID) ASTNodeOutput {
	d := tree.Decls.Get(id)
	fields := map[string]string{"type": d.Type.String()}
	if w := d.Width.String(); w != "" {
		fields["width"] = w
	}
	if d.Dir != ast.PortNone {
		fields["dir"] = d.Dir.String()
	}
	if d.Kind == ast.DeclConst && d.Value != ast.NoExprID {
		fields["value"] = tree.Exprs.SExpr(d.Value)
	}
	return ASTNodeOutput{Type: d.Kind.String(), Name: d.Name, Span: d.Span, Fields: fields}
}

func stmtNode(tree *ast.Builder, id ast.StmtID) ASTNodeOutput {
	st := tree.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtDecl:
		declID, _ := tree.Stmts.Decl(id)
		return declNode(tree, declID)
	case ast.StmtInstance:
		inst, _ := tree.Stmts.Instance(id)
		n := ASTNodeOutput{Type: "Instance", Name: inst.Name, Span: st.Span, Fields: map[string]string{"of": inst.Type}}
		if inst.Generics != ast.NoExprID {
			n.Fields["generics"] = tree.Exprs.SExpr(inst.Generics)
		}
		return n
	case ast.StmtAssign:
		expr, _ := tree.Stmts.Assign(id)
		return ASTNodeOutput{Type: "Assign", Span: st.Span, Fields: map[string]string{"expr": tree.Exprs.SExpr(expr)}}
	case ast.StmtPlaceholder:
		ph, _ := tree.Stmts.Placeholder(id)
		n := ASTNodeOutput{Type: "Placeholder", Name: ph.Kind.String(), Span: st.Span}
		if ph.Body != "" {
			n.Fields = map[string]string{"body": ph.Body}
		}
		return n
	}
	return ASTNodeOutput{Type: fmt.Sprintf("Stmt(%d)", st.Kind), Span: st.Span}
}

// FormatASTPretty prints every unit of reg as an indented tree:
//
//	Component HalfAdder (1:1-11:2)
//	├─ Ports
//	│  ├─ Port A {dir=input, type=vec}
func FormatASTPretty(w io.Writer, reg *ast.Registry, fs *source.FileSet) error {
	for _, name := range reg.Names() {
		u, _ := reg.Get(name)
		if err := writeNode(w, BuildAST(u), fs, "", ""); err != nil {
			return err
		}
	}
	return nil
}

func writeNode(w io.Writer, n ASTNodeOutput, fs *source.FileSet, head, indent string) error {
	label := n.Type
	if n.Name != "" {
		label += " " + n.Name
	}
	if len(n.Fields) > 0 {
		label += " {" + joinFields(n.Fields) + "}"
	}
	if fs != nil && n.Span != (source.Span{}) {
		label += " (" + formatSpan(n.Span, fs) + ")"
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", head, label); err != nil {
		return err
	}
	for i, child := range n.Children {
		last := i == len(n.Children)-1
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		if err := writeNode(w, child, fs, indent+branch, indent+next); err != nil {
			return err
		}
	}
	return nil
}

func joinFields(fields map[string]string) string {
	// фиксированный порядок, чтобы вывод был стабильным
	keys := []string{"dir", "type", "width", "value", "of", "generics", "expr", "body"}
	parts := make([]string, 0, len(fields))
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			parts = append(parts, k+"="+v)
		}
	}
	return strings.Join(parts, ", ")
}

func formatSpan(sp source.Span, fs *source.FileSet) string {
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// FormatASTJSON writes the units of reg as a JSON array.
func FormatASTJSON(w io.Writer, reg *ast.Registry) error {
	out := make([]ASTNodeOutput, 0, reg.Len())
	for _, name := range reg.Names() {
		u, _ := reg.Get(name)
		out = append(out, BuildAST(u))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
