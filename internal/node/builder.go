package node

import (
	"sort"
	"strconv"
)

// Builder accumulates the contents of one `{ }` block. It decides the shape
// of the block only when Build is called, because the grammar does not say
// up front whether a block is a list or an object.
type Builder struct {
	items   []*Node
	entries []Entry
}

// NewBuilder returns an empty block builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a keyed value.
func (b *Builder) Add(key string, v *Node) {
	b.entries = append(b.entries, Entry{Key: key, Value: v})
}

// AddItem appends an unkeyed value.
func (b *Builder) AddItem(v *Node) {
	b.items = append(b.items, v)
}

// Build resolves the block shape:
//   - only unkeyed values (or nothing) gives a List;
//   - only keyed values gives an Object;
//   - a mix where every key is a non-negative integer gives a List, the keyed
//     values inserted at their index in ascending key order (an index past
//     the end appends);
//   - any other mix gives an Object that keeps its unkeyed values as Items.
func (b *Builder) Build() *Node {
	if len(b.entries) == 0 {
		return List(b.items...)
	}
	if len(b.items) > 0 {
		if l, ok := b.numericMerge(); ok {
			return l
		}
	}
	return b.BuildObject()
}

// BuildObject always produces an Object. The top level of a save is an
// Object even when it is empty.
func (b *Builder) BuildObject() *Node {
	n := &Node{
		kind:    KindObject,
		entries: b.entries,
		items:   b.items,
		index:   make(map[string][]int, len(b.entries)),
	}
	if n.entries == nil {
		n.entries = []Entry{}
	}
	for i, e := range n.entries {
		n.index[e.Key] = append(n.index[e.Key], i)
	}
	return n
}

func (b *Builder) numericMerge() (*Node, bool) {
	type keyed struct {
		idx int
		v   *Node
	}
	keys := make([]keyed, 0, len(b.entries))
	for _, e := range b.entries {
		idx, err := strconv.Atoi(e.Key)
		if err != nil || idx < 0 {
			return nil, false
		}
		keys = append(keys, keyed{idx: idx, v: e.Value})
	}
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].idx < keys[j].idx })

	out := make([]*Node, len(b.items), len(b.items)+len(keys))
	copy(out, b.items)
	for _, k := range keys {
		if k.idx >= len(out) {
			out = append(out, k.v)
			continue
		}
		out = append(out, nil)
		copy(out[k.idx+1:], out[k.idx:])
		out[k.idx] = k.v
	}
	return List(out...), true
}
