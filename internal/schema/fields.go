package schema

import (
	"math"

	"github.com/vk/ck3graph/internal/entity"
	"github.com/vk/ck3graph/internal/entityid"
	"github.com/vk/ck3graph/internal/node"
)

// noneID is the sentinel the game writes for "no reference" in id fields.
const noneID = math.MaxUint32

// fields reads typed attributes from one record's Object. Missing keys yield
// zero values silently; present but malformed values are reported and then
// defaulted. A fields with a nil obj behaves as an empty record.
type fields struct {
	m       *mapper
	section string
	id      entityid.ID
	obj     *node.Node
}

func (f *fields) sub(keys ...string) *fields {
	child, _ := f.obj.Path(keys...)
	if child != nil && child.Kind() == node.KindList && child.Len() == 0 {
		child = nil
	}
	if child != nil && child.Kind() != node.KindObject {
		f.fail(keys[len(keys)-1], "expected a block, found %s", child.Kind())
		child = nil
	}
	return &fields{m: f.m, section: f.section, id: f.id, obj: child}
}

func (f *fields) fail(field, format string, args ...any) {
	f.m.fail(f.section, f.id, field, format, args...)
}

func (f *fields) has(key string) bool {
	return f.obj.Has(key)
}

// str returns the first of keys that is present, rendered as text.
func (f *fields) str(keys ...string) string {
	for _, k := range keys {
		v, ok := f.obj.Get(k)
		if !ok {
			continue
		}
		if !v.IsScalar() {
			f.fail(k, "expected a scalar, found %s", v.Kind())
			continue
		}
		return v.Text()
	}
	return ""
}

func (f *fields) date(key string) node.Date {
	v, ok := f.obj.Get(key)
	if !ok {
		return node.Date{}
	}
	d, ok := v.Date()
	if !ok {
		f.fail(key, "expected a date, found %q", v.Text())
	}
	return d
}

func (f *fields) float(key string) float64 {
	v, ok := f.obj.Get(key)
	if !ok {
		return 0
	}
	x, ok := v.Float()
	if !ok {
		f.fail(key, "expected a number, found %s", v.Kind())
	}
	return x
}

// currency reads fields that are either a bare number or a block holding
// `currency` and `accumulated`; the accumulated total is preferred.
func (f *fields) currency(key string) float64 {
	v, ok := f.obj.Get(key)
	if !ok {
		return 0
	}
	if v.Kind() == node.KindObject {
		c := &fields{m: f.m, section: f.section, id: f.id, obj: v}
		if c.has("accumulated") {
			return c.float("accumulated")
		}
		return c.float("currency")
	}
	return f.float(key)
}

func (f *fields) integer(key string) int {
	v, ok := f.obj.Get(key)
	if !ok {
		return 0
	}
	i, ok := v.Int()
	if !ok {
		f.fail(key, "expected an integer, found %s", v.Kind())
	}
	return int(i)
}

func (f *fields) flag(key string) bool {
	v, ok := f.obj.Get(key)
	if !ok {
		return false
	}
	b, ok := v.Bool()
	if !ok {
		f.fail(key, "expected yes or no, found %q", v.Text())
	}
	return b
}

func (f *fields) strs(key string) []string {
	v, ok := f.obj.Get(key)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range v.AsList() {
		if !item.IsScalar() {
			f.fail(key, "expected a list of words, found %s", item.Kind())
			continue
		}
		out = append(out, item.Text())
	}
	return out
}

func (f *fields) ints(key string) []int {
	v, ok := f.obj.Get(key)
	if !ok {
		return nil
	}
	var out []int
	for _, item := range v.AsList() {
		i, ok := item.Int()
		if !ok {
			f.fail(key, "expected a list of integers, found %s", item.Kind())
			continue
		}
		out = append(out, int(i))
	}
	return out
}

// ref reads a single reference. The game's none sentinel and the word none
// both mean unset.
func (f *fields) ref(kind entityid.Kind, key string) entity.Ref {
	v, ok := f.obj.Get(key)
	if !ok {
		return entity.Ref{}
	}
	r, _ := f.toRef(kind, key, v)
	return r
}

func (f *fields) refs(kind entityid.Kind, key string) []entity.Ref {
	v, ok := f.obj.Get(key)
	if !ok {
		return nil
	}
	var out []entity.Ref
	for _, item := range v.AsList() {
		if r, ok := f.toRef(kind, key, item); ok {
			out = append(out, r)
		}
	}
	return out
}

func (f *fields) toRef(kind entityid.Kind, key string, v *node.Node) (entity.Ref, bool) {
	if s, ok := v.Str(); ok && s == "none" {
		return entity.Ref{}, false
	}
	i, ok := v.Int()
	if !ok || i < 0 || i > math.MaxUint32 {
		f.fail(key, "expected a %s id, found %q", kind, v.Text())
		return entity.Ref{}, false
	}
	if i == noneID {
		return entity.Ref{}, false
	}
	return entity.RefTo(kind, uint32(i)), true
}

// appendRef adds r to refs unless it is unset or already present.
func appendRef(refs []entity.Ref, r entity.Ref) []entity.Ref {
	if !r.IsSet() || entity.ContainsRef(refs, r.ID) {
		return refs
	}
	return append(refs, r)
}
