package sema

import "slices"

type Topo struct {
	Order   []NodeID   // зависимости раньше пользователей
	Batches [][]NodeID // волны независимых компонентов
	Cyclic  bool
	Blocked []NodeID // узлы, не вошедшие в порядок: циклы и всё, что от них зависит
}

// ToposortKahn orders the graph layer by layer; ties break by NodeID.
func ToposortKahn(g Graph) *Topo {
	n := len(g.Deps)
	indeg := make([]int, n)
	copy(indeg, g.Indeg)
	topo := &Topo{Order: make([]NodeID, 0, n)}

	var current []NodeID
	for i := range n {
		if indeg[i] == 0 {
			current = append(current, NodeID(i))
		}
	}
	for len(current) > 0 {
		batch := slices.Clone(current)
		topo.Batches = append(topo.Batches, batch)
		var next []NodeID
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			for _, user := range g.Users[int(id)] {
				indeg[int(user)]--
				if indeg[int(user)] == 0 {
					next = append(next, user)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(topo.Order) != n {
		topo.Cyclic = true
		for i := range n {
			if indeg[i] > 0 {
				topo.Blocked = append(topo.Blocked, NodeID(i))
			}
		}
	}
	return topo
}

// FindCycle returns a dependency cycle through start (start first and last),
// or nil if start is not on one.
func FindCycle(g Graph, start NodeID) []NodeID {
	visited := make(map[NodeID]bool)
	path := []NodeID{start}
	var dfs func(cur NodeID) bool
	dfs = func(cur NodeID) bool {
		for _, dep := range g.Deps[int(cur)] {
			if dep == start {
				path = append(path, dep)
				return true
			}
			if visited[dep] {
				continue
			}
			visited[dep] = true
			path = append(path, dep)
			if dfs(dep) {
				return true
			}
			path = path[:len(path)-1]
		}
		return false
	}
	if dfs(start) {
		return path
	}
	return nil
}
