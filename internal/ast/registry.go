package ast

import (
	"sort"
	"sync"

	"cdl/internal/source"
)

// Unit is one parsed component together with everything later stages need.
type Unit struct {
	Name   string
	File   source.FileID
	Tree   *Builder
	Root   ComponentID
	Widths *Widths
}

// Component returns the root component node.
func (u *Unit) Component() *Component {
	return u.Tree.Component(u.Root)
}

// Registry maps component names to units. Each name is written once;
// after the parse phase the registry is only read.
type Registry struct {
	mu    sync.RWMutex
	units map[string]*Unit
	order []string
}

func NewRegistry() *Registry {
	return &Registry{units: make(map[string]*Unit)}
}

// Add stores u and reports false if the name is already taken.
func (r *Registry) Add(u *Unit) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.units[u.Name]; dup {
		return false
	}
	r.units[u.Name] = u
	r.order = append(r.order, u.Name)
	return true
}

func (r *Registry) Get(name string) (*Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.units[name]
	return u, ok
}

// Names returns component names in insertion order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// SortedNames returns component names alphabetically.
func (r *Registry) SortedNames() []string {
	names := r.Names()
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.units)
}
