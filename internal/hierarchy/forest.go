package hierarchy

import (
	"fmt"
	"slices"

	"github.com/vk/ck3graph/internal/entityid"
)

// Forest is a set of title trees. Every title has at most one parent.
type Forest struct {
	name     string
	parent   map[entityid.ID]entityid.ID
	children map[entityid.ID][]entityid.ID
}

// Edge is a child to parent link.
type Edge struct {
	Child  entityid.ID
	Parent entityid.ID
}

func newForest(name string) *Forest {
	return &Forest{
		name:     name,
		parent:   make(map[entityid.ID]entityid.ID),
		children: make(map[entityid.ID][]entityid.ID),
	}
}

// addNode registers id. Adding an existing node does nothing.
func (f *Forest) addNode(id entityid.ID) {
	if _, ok := f.children[id]; ok {
		return
	}
	f.children[id] = nil
}

// addEdge makes parent the parent of child. Both must already exist.
func (f *Forest) addEdge(child, parent entityid.ID) error {
	if child == parent {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", child, parent)
	}
	if _, ok := f.children[child]; !ok {
		return fmt.Errorf("child node not found: %s", child)
	}
	if _, ok := f.children[parent]; !ok {
		return fmt.Errorf("parent node not found: %s", parent)
	}
	if old, ok := f.parent[child]; ok {
		if old == parent {
			return nil
		}
		return fmt.Errorf("%s already has parent %s", child, old)
	}
	f.parent[child] = parent
	f.children[parent] = append(f.children[parent], child)
	return nil
}

func (f *Forest) removeEdge(child, parent entityid.ID) {
	delete(f.parent, child)
	f.children[parent] = slices.DeleteFunc(f.children[parent], func(id entityid.ID) bool { return id == child })
}

// Name is "de_jure" or "de_facto".
func (f *Forest) Name() string { return f.name }

// Len returns the number of titles in the forest.
func (f *Forest) Len() int { return len(f.children) }

// Has reports whether id is part of the forest.
func (f *Forest) Has(id entityid.ID) bool {
	_, ok := f.children[id]
	return ok
}

// Parent returns the direct parent of id.
func (f *Forest) Parent(id entityid.ID) (entityid.ID, bool) {
	p, ok := f.parent[id]
	return p, ok
}

// Children returns the direct children of id in ascending order.
func (f *Forest) Children(id entityid.ID) []entityid.ID {
	return slices.Clone(f.children[id])
}

// Roots returns every title without a parent, in ascending order.
func (f *Forest) Roots() []entityid.ID {
	var out []entityid.ID
	for id := range f.children {
		if _, ok := f.parent[id]; !ok {
			out = append(out, id)
		}
	}
	slices.SortFunc(out, entityid.Compare)
	return out
}

// Ancestors returns the chain from the parent of id up to its root.
func (f *Forest) Ancestors(id entityid.ID) []entityid.ID {
	var out []entityid.ID
	for {
		p, ok := f.parent[id]
		if !ok {
			return out
		}
		out = append(out, p)
		id = p
	}
}

// Top returns the root of the tree containing id, which is id itself when
// it has no parent.
func (f *Forest) Top(id entityid.ID) entityid.ID {
	if a := f.Ancestors(id); len(a) > 0 {
		return a[len(a)-1]
	}
	return id
}

// sortChildren puts every child list in ascending order.
func (f *Forest) sortChildren() {
	for _, c := range f.children {
		slices.SortFunc(c, entityid.Compare)
	}
}

// breakCycles walks the forest depth first with three colours and removes
// every edge that leads back into the current path. It returns the removed
// edges. Nodes are visited in ascending order so the result is stable.
func (f *Forest) breakCycles() []Edge {
	const (
		white = iota
		grey
		black
	)
	colour := make(map[entityid.ID]int, len(f.children))
	var dropped []Edge

	var visit func(id entityid.ID)
	visit = func(id entityid.ID) {
		colour[id] = grey
		for _, child := range slices.Clone(f.children[id]) {
			switch colour[child] {
			case grey:
				f.removeEdge(child, id)
				dropped = append(dropped, Edge{Child: child, Parent: id})
			case white:
				visit(child)
			}
		}
		colour[id] = black
	}

	ids := make([]entityid.ID, 0, len(f.children))
	for id := range f.children {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, entityid.Compare)
	for _, id := range ids {
		if colour[id] == white {
			visit(id)
		}
	}
	return dropped
}
