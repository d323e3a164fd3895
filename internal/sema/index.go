package sema

import (
	"sort"

	"cdl/internal/ast"
)

// NodeID is a dense index into the sorted component names.
type NodeID uint32

type Index struct {
	NameToID map[string]NodeID
	IDToName []string
}

// BuildIndex раздаёт ID компонентам в алфавитном порядке, чтобы порядок обхода не зависел от порядка файлов.
func BuildIndex(reg *ast.Registry) Index {
	names := reg.Names()
	sort.Strings(names)
	nameToID := make(map[string]NodeID, len(names))
	for i, name := range names {
		nameToID[name] = NodeID(i)
	}
	return Index{NameToID: nameToID, IDToName: names}
}

func (idx Index) names(ids []NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.IDToName[int(id)]
	}
	return out
}
