package facts

import (
	"sort"

	"cdl/internal/ast"
	"cdl/internal/sema"
	"cdl/internal/source"
)

// Tables is the relational view of a checked design: one flat slice per
// relation, sorted so that equal designs serialize identically.
type Tables struct {
	Components   []ComponentRow  `json:"components"`
	Generics     []GenericRow    `json:"generics"`
	Ports        []PortRow       `json:"ports"`
	Signals      []SignalRow     `json:"signals"`
	Instances    []InstanceRow   `json:"instances"`
	Dependencies []DependencyRow `json:"dependencies"`
}

type ComponentRow struct {
	Name  string `json:"name"`
	File  string `json:"file"`
	Line  int    `json:"line"`
	Arch  string `json:"arch,omitempty"`
	Order int    `json:"order"` // позиция в порядке генерации
}

type GenericRow struct {
	Component string `json:"component"`
	Name      string `json:"name"`
	Type      string `json:"type"`
}

type PortRow struct {
	Component string `json:"component"`
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Type      string `json:"type"`
	Width     string `json:"width,omitempty"`
	Line      int    `json:"line"`
}

type SignalRow struct {
	Component string `json:"component"`
	Name      string `json:"name"`
	Kind      string `json:"kind"` // signal | variable | const
	Type      string `json:"type"`
	Width     string `json:"width,omitempty"`
}

type InstanceRow struct {
	Component string            `json:"component"`
	Name      string            `json:"name"`
	Target    string            `json:"target"`
	Generics  map[string]string `json:"generics,omitempty"`
	Line      int               `json:"line"`
}

type DependencyRow struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Extract builds Tables for every component that passed the check.
func Extract(fs *source.FileSet, reg *ast.Registry, res *sema.Result) Tables {
	t := Tables{
		Components:   []ComponentRow{},
		Generics:     []GenericRow{},
		Ports:        []PortRow{},
		Signals:      []SignalRow{},
		Instances:    []InstanceRow{},
		Dependencies: []DependencyRow{},
	}
	for i, name := range res.Order() {
		u, ok := reg.Get(name)
		if !ok {
			continue
		}
		t.addUnit(fs, u, i)
		for _, dep := range res.Deps(name) {
			t.Dependencies = append(t.Dependencies, DependencyRow{From: name, To: dep})
		}
	}
	t.sort()
	return t
}

func line(fs *source.FileSet, sp source.Span) int {
	if fs == nil {
		return 0
	}
	start, _ := fs.Resolve(sp)
	return int(start.Line)
}

func (t *Tables) addUnit(fs *source.FileSet, u *ast.Unit, order int) {
	tree := u.Tree
	comp := u.Component()
	row := ComponentRow{Name: u.Name, Line: line(fs, comp.NameSpan), Order: order}
	if fs != nil {
		row.File = fs.Get(u.File).Path
	}
	arch, hasArch := tree.Arch(u.Root)
	if hasArch {
		row.Arch = arch.Name
	}
	t.Components = append(t.Components, row)

	for _, id := range tree.Generics(u.Root) {
		d := tree.Decls.Get(id)
		t.Generics = append(t.Generics, GenericRow{Component: u.Name, Name: d.Name, Type: d.Type.String()})
	}
	for _, id := range tree.Ports(u.Root) {
		d := tree.Decls.Get(id)
		t.Ports = append(t.Ports, PortRow{
			Component: u.Name,
			Name:      d.Name,
			Direction: d.Dir.String(),
			Type:      d.Type.String(),
			Width:     d.Width.String(),
			Line:      line(fs, d.NameSpan),
		})
	}
	if !hasArch {
		return
	}
	for _, st := range arch.Stmts {
		if declID, ok := tree.Stmts.Decl(st); ok {
			d := tree.Decls.Get(declID)
			t.Signals = append(t.Signals, SignalRow{
				Component: u.Name,
				Name:      d.Name,
				Kind:      declKind(d.Kind),
				Type:      d.Type.String(),
				Width:     d.Width.String(),
			})
			continue
		}
		if inst, ok := tree.Stmts.Instance(st); ok {
			t.Instances = append(t.Instances, InstanceRow{
				Component: u.Name,
				Name:      inst.Name,
				Target:    inst.Type,
				Generics:  genericMap(tree.Exprs, inst.Generics),
				Line:      line(fs, inst.NameSpan),
			})
		}
	}
}

func declKind(k ast.DeclKind) string {
	switch k {
	case ast.DeclVariable:
		return "variable"
	case ast.DeclConst:
		return "const"
	default:
		return "signal"
	}
}

func genericMap(e *ast.Exprs, list ast.ExprID) map[string]string {
	if list == ast.NoExprID {
		return nil
	}
	out := make(map[string]string)
	for _, item := range e.ListItems(list) {
		bin, ok := e.Binary(item)
		if !ok || bin.Op != ast.ExprBinaryGenericAssign {
			continue
		}
		out[e.PathString(bin.Left)] = e.SExpr(bin.Right)
	}
	return out
}

func (t *Tables) sort() {
	sort.Slice(t.Generics, func(i, j int) bool {
		return less2(t.Generics[i].Component, t.Generics[i].Name, t.Generics[j].Component, t.Generics[j].Name)
	})
	sort.SliceStable(t.Ports, func(i, j int) bool { return t.Ports[i].Component < t.Ports[j].Component })
	sort.SliceStable(t.Signals, func(i, j int) bool { return t.Signals[i].Component < t.Signals[j].Component })
	sort.SliceStable(t.Instances, func(i, j int) bool { return t.Instances[i].Component < t.Instances[j].Component })
	sort.Slice(t.Dependencies, func(i, j int) bool {
		return less2(t.Dependencies[i].From, t.Dependencies[i].To, t.Dependencies[j].From, t.Dependencies[j].To)
	})
}

func less2(a1, a2, b1, b2 string) bool {
	if a1 != b1 {
		return a1 < b1
	}
	return a2 < b2
}
