package registry

import (
	"sync"

	"github.com/vk/ck3graph/internal/entity"
	"github.com/vk/ck3graph/internal/entityid"
)

// Annotation is the traversal metadata attached to an entity: the shortest
// distance from any root and whether it was expanded.
type Annotation struct {
	Depth    int
	Expanded bool
}

// Registry is the closed, fully resolved set of entities.
type Registry struct {
	arenas  map[entityid.Kind]*arena
	players []*entity.Player
	meta    entity.Meta
	refErrs []*ReferenceError

	annotMu sync.RWMutex
	annots  map[entityid.ID]Annotation
}

// Lookup returns the entity with the given id.
func (r *Registry) Lookup(id entityid.ID) (entity.Entity, bool) {
	a, ok := r.arenas[id.Kind]
	if !ok {
		return nil, false
	}
	slot, ok := a.slots[id.Num]
	if !ok {
		return nil, false
	}
	return a.entities[slot], true
}

// Resolve follows a bound reference. Unbound and dangling refs yield false.
func (r *Registry) Resolve(ref entity.Ref) (entity.Entity, bool) {
	if !ref.Bound() {
		return nil, false
	}
	a, ok := r.arenas[ref.ID.Kind]
	if !ok || int(ref.Slot()) >= len(a.entities) {
		return nil, false
	}
	return a.entities[ref.Slot()], true
}

func resolveAs[T entity.Entity](r *Registry, ref entity.Ref) (T, bool) {
	var zero T
	e, ok := r.Resolve(ref)
	if !ok {
		return zero, false
	}
	t, ok := e.(T)
	return t, ok
}

// Character resolves ref to a character.
func (r *Registry) Character(ref entity.Ref) (*entity.Character, bool) {
	return resolveAs[*entity.Character](r, ref)
}

// Dynasty resolves ref to a dynasty.
func (r *Registry) Dynasty(ref entity.Ref) (*entity.Dynasty, bool) {
	return resolveAs[*entity.Dynasty](r, ref)
}

// House resolves ref to a house.
func (r *Registry) House(ref entity.Ref) (*entity.House, bool) {
	return resolveAs[*entity.House](r, ref)
}

// Title resolves ref to a title.
func (r *Registry) Title(ref entity.Ref) (*entity.Title, bool) {
	return resolveAs[*entity.Title](r, ref)
}

// Culture resolves ref to a culture.
func (r *Registry) Culture(ref entity.Ref) (*entity.Culture, bool) {
	return resolveAs[*entity.Culture](r, ref)
}

// Faith resolves ref to a faith.
func (r *Registry) Faith(ref entity.Ref) (*entity.Faith, bool) {
	return resolveAs[*entity.Faith](r, ref)
}

func (r *Registry) Artifact(ref entity.Ref) (*entity.Artifact, bool) {
	return resolveAs[*entity.Artifact](r, ref)
}

func (r *Registry) Memory(ref entity.Ref) (*entity.Memory, bool) {
	return resolveAs[*entity.Memory](r, ref)
}

func (r *Registry) Province(ref entity.Ref) (*entity.Province, bool) {
	return resolveAs[*entity.Province](r, ref)
}

// Enumerate returns every entity of kind in ascending id order. The slice
// is a copy.
func (r *Registry) Enumerate(kind entityid.Kind) []entity.Entity {
	a, ok := r.arenas[kind]
	if !ok {
		return nil
	}
	out := make([]entity.Entity, len(a.entities))
	copy(out, a.entities)
	return out
}

// Len returns the number of entities of kind.
func (r *Registry) Len(kind entityid.Kind) int {
	a, ok := r.arenas[kind]
	if !ok {
		return 0
	}
	return len(a.entities)
}

// Players returns the played character entries in save order.
func (r *Registry) Players() []*entity.Player { return r.players }

// Meta returns the save header.
func (r *Registry) Meta() entity.Meta { return r.meta }

// ReferenceErrors lists every dangling reference found during Build.
func (r *Registry) ReferenceErrors() []*ReferenceError { return r.refErrs }

// Annotate records that id was reached at depth. The smallest depth seen
// wins; expanded is sticky once true.
func (r *Registry) Annotate(id entityid.ID, depth int, expanded bool) {
	r.annotMu.Lock()
	defer r.annotMu.Unlock()
	cur, ok := r.annots[id]
	if !ok || depth < cur.Depth {
		cur.Depth = depth
	}
	cur.Expanded = cur.Expanded || expanded
	r.annots[id] = cur
}

// Annotation returns the traversal metadata of id, if any root reached it.
func (r *Registry) Annotation(id entityid.ID) (Annotation, bool) {
	r.annotMu.RLock()
	defer r.annotMu.RUnlock()
	a, ok := r.annots[id]
	return a, ok
}
