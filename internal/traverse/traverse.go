// Package traverse walks the resolved entity graph outward from root
// characters, breadth first and bounded by depth.
package traverse

import (
	"context"
	"slices"

	"github.com/vk/ck3graph/internal/ctxlog"
	"github.com/vk/ck3graph/internal/entity"
	"github.com/vk/ck3graph/internal/entityid"
)

// Graph is the read side of the registry the traversal needs.
type Graph interface {
	Lookup(id entityid.ID) (entity.Entity, bool)
	Resolve(ref entity.Ref) (entity.Entity, bool)
}

// Annotator receives the depth of every visited entity. The registry
// implements it; a Graph that does not is simply not annotated.
type Annotator interface {
	Annotate(id entityid.ID, depth int, expanded bool)
}

// Options bounds a traversal.
type Options struct {
	// MaxDepth is the deepest level that is still expanded. Entities one
	// level further appear as unexpanded references.
	MaxDepth int
	// ExpandLieges follows liege edges (character and title) beyond the
	// immediate link.
	ExpandLieges bool
	// ExpandVassals follows vassal edges (character and title) beyond the
	// immediate link.
	ExpandVassals bool
}

// Visit is one entity reached from a root.
type Visit struct {
	ID       entityid.ID
	Depth    int
	Path     []entity.Relation
	Expanded bool
}

// Result is the ordered visit list of one root; the root comes first.
type Result struct {
	Root   entityid.ID
	Visits []Visit
}

// Find returns the visit of id.
func (r *Result) Find(id entityid.ID) (Visit, bool) {
	for _, v := range r.Visits {
		if v.ID == id {
			return v, true
		}
	}
	return Visit{}, false
}

// cancelCheckInterval is how many expansions happen between context checks.
const cancelCheckInterval = 1024

var (
	liegeRelations  = []entity.Relation{entity.RelLiege, entity.RelDeJureLiege, entity.RelDeFactoLiege}
	vassalRelations = []entity.Relation{entity.RelVassal, entity.RelDeJureVassal, entity.RelDeFactoVassal}
)

func (o Options) follows(rel entity.Relation) bool {
	if !o.ExpandLieges && slices.Contains(liegeRelations, rel) {
		return false
	}
	if !o.ExpandVassals && slices.Contains(vassalRelations, rel) {
		return false
	}
	return true
}

// Traverse runs one traversal per root and annotates g when it supports
// it. Roots missing from g are logged and skipped.
func Traverse(ctx context.Context, g Graph, roots []entityid.ID, opts Options) ([]*Result, error) {
	logger := ctxlog.FromContext(ctx)
	annotator, _ := g.(Annotator)

	results := make([]*Result, 0, len(roots))
	for _, root := range roots {
		res, err := FromRoot(ctx, g, root, opts)
		if err != nil {
			return nil, err
		}
		if res == nil {
			logger.Warn("Traversal root not found, skipped.", "root", root.String())
			continue
		}
		if annotator != nil {
			for _, v := range res.Visits {
				annotator.Annotate(v.ID, v.Depth, v.Expanded)
			}
		}
		logger.Debug("Traversal complete.", "root", root.String(), "visited", len(res.Visits))
		results = append(results, res)
	}
	return results, nil
}

type visitState struct {
	index  int
	queued bool
}

// FromRoot traverses from a single root. It returns nil when the root does
// not exist. Each entity is expanded at most once, so cyclic relations such
// as liege/vassal terminate.
func FromRoot(ctx context.Context, g Graph, root entityid.ID, opts Options) (*Result, error) {
	if _, ok := g.Lookup(root); !ok {
		return nil, nil
	}
	res := &Result{Root: root, Visits: []Visit{{ID: root}}}
	state := map[entityid.ID]*visitState{root: {index: 0, queued: true}}
	queue := []entityid.ID{root}

	for n := 0; len(queue) > 0; n++ {
		if n%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		id := queue[0]
		queue = queue[1:]
		st := state[id]
		cur := res.Visits[st.index]
		if cur.Depth > opts.MaxDepth {
			continue
		}
		e, ok := g.Lookup(id)
		if !ok {
			continue
		}
		res.Visits[st.index].Expanded = true

		for _, link := range e.Links() {
			target, ok := g.Resolve(link.Ref)
			if !ok {
				continue
			}
			tid := target.EntityID()
			follow := opts.follows(link.Relation)

			if seen, ok := state[tid]; ok {
				if follow && !seen.queued {
					seen.queued = true
					queue = append(queue, tid)
				}
				continue
			}

			path := make([]entity.Relation, len(cur.Path), len(cur.Path)+1)
			copy(path, cur.Path)
			res.Visits = append(res.Visits, Visit{ID: tid, Depth: cur.Depth + 1, Path: append(path, link.Relation)})
			state[tid] = &visitState{index: len(res.Visits) - 1, queued: follow}
			if follow {
				queue = append(queue, tid)
			}
		}
	}
	return res, nil
}
