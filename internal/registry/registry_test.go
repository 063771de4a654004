package registry

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/ck3graph/internal/entity"
	"github.com/vk/ck3graph/internal/entityid"
	"github.com/vk/ck3graph/internal/testutil"
)

func cref(n uint32) entity.Ref { return entity.RefTo(entityid.Character, n) }
func cid(n uint32) entityid.ID { return entityid.New(entityid.Character, n) }

func build(t *testing.T, ctx context.Context, entities ...entity.Entity) *Registry {
	t.Helper()
	b := NewBuilder()
	for _, e := range entities {
		require.NoError(t, b.Add(ctx, e))
	}
	reg, err := b.Build(ctx)
	require.NoError(t, err)
	return reg
}

func TestBuild_LiegeVassalScenario(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := build(t, ctx,
		&entity.Character{ID: cid(1), Liege: cref(2)},
		&entity.Character{ID: cid(2), Vassals: []entity.Ref{cref(1)}},
	)

	assert.Equal(t, 2, reg.Len(entityid.Character))

	e1, ok := reg.Lookup(cid(1))
	require.True(t, ok)
	c1 := e1.(*entity.Character)
	e2, ok := reg.Lookup(cid(2))
	require.True(t, ok)
	c2 := e2.(*entity.Character)

	liege, ok := reg.Character(c1.Liege)
	require.True(t, ok)
	assert.Same(t, c2, liege)

	require.Len(t, c2.Vassals, 1)
	vassal, ok := reg.Character(c2.Vassals[0])
	require.True(t, ok)
	assert.Same(t, c1, vassal)
	assert.Empty(t, reg.ReferenceErrors())
}

func TestBuild_SameIDSameSlot(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := build(t, ctx,
		&entity.Character{ID: cid(1), Liege: cref(3), Spouses: []entity.Ref{cref(3)}},
		&entity.Character{ID: cid(3)},
	)
	e, _ := reg.Lookup(cid(1))
	c := e.(*entity.Character)

	require.True(t, c.Liege.Bound())
	require.True(t, c.Spouses[0].Bound())
	assert.Equal(t, c.Liege.Slot(), c.Spouses[0].Slot())

	a, _ := reg.Resolve(c.Liege)
	b, _ := reg.Resolve(c.Spouses[0])
	assert.Same(t, a, b)
}

func TestBuild_DanglingReference(t *testing.T) {
	ctx, logs := testutil.Context(t)
	reg := build(t, ctx,
		&entity.Character{ID: cid(1), Liege: cref(99), House: entity.RefTo(entityid.House, 5)},
	)
	e, _ := reg.Lookup(cid(1))
	c := e.(*entity.Character)

	assert.True(t, c.Liege.Dangling())
	_, ok := reg.Character(c.Liege)
	assert.False(t, ok)

	require.Len(t, reg.ReferenceErrors(), 2)
	var messages []string
	for _, refErr := range reg.ReferenceErrors() {
		messages = append(messages, refErr.Error())
	}
	assert.Contains(t, messages, "dangling reference from character:1 to character:99")
	assert.Contains(t, messages, "dangling reference from character:1 to house:5")
	assert.Contains(t, logs.String(), "Dangling reference.")
}

func TestBuild_DuplicateIDLaterWins(t *testing.T) {
	ctx, logs := testutil.Context(t)
	reg := build(t, ctx,
		&entity.Character{ID: cid(1), Name: "first"},
		&entity.Character{ID: cid(1), Name: "second"},
	)
	assert.Equal(t, 1, reg.Len(entityid.Character))
	e, _ := reg.Lookup(cid(1))
	assert.Equal(t, "second", e.(*entity.Character).Name)
	assert.Contains(t, logs.String(), "Duplicate entity id")
}

func TestBuild_BackLinks(t *testing.T) {
	ctx, _ := testutil.Context(t)
	title := func(n uint32) entity.Ref { return entity.RefTo(entityid.Title, n) }
	reg := build(t, ctx,
		&entity.Character{ID: cid(1), Children: []entity.Ref{cref(2)}, Spouses: []entity.Ref{cref(3)}},
		&entity.Character{ID: cid(2), Liege: cref(1)},
		&entity.Character{ID: cid(3)},
		&entity.Dynasty{ID: entityid.New(entityid.Dynasty, 10)},
		&entity.House{ID: entityid.New(entityid.House, 20), Dynasty: entity.RefTo(entityid.Dynasty, 10)},
		&entity.Title{ID: entityid.New(entityid.Title, 100), Key: "k_a"},
		&entity.Title{ID: entityid.New(entityid.Title, 101), Key: "d_b", DeJureLiege: title(100)},
		&entity.Title{ID: entityid.New(entityid.Title, 102), Key: "d_c", DeFactoVassals: []entity.Ref{title(101)}},
	)

	e, _ := reg.Lookup(cid(2))
	child := e.(*entity.Character)
	require.Len(t, child.Parents, 1)
	assert.Equal(t, cid(1), child.Parents[0].ID)
	assert.True(t, child.Parents[0].Bound())

	e, _ = reg.Lookup(cid(1))
	parent := e.(*entity.Character)
	require.Len(t, parent.Vassals, 1, "liege gains its vassal")
	assert.Equal(t, cid(2), parent.Vassals[0].ID)

	e, _ = reg.Lookup(cid(3))
	assert.Len(t, e.(*entity.Character).Spouses, 1, "spouse link is symmetric")

	e, _ = reg.Lookup(entityid.New(entityid.Dynasty, 10))
	assert.Len(t, e.(*entity.Dynasty).Houses, 1)

	e, _ = reg.Lookup(entityid.New(entityid.Title, 100))
	assert.Len(t, e.(*entity.Title).DeJureVassals, 1)

	e, _ = reg.Lookup(entityid.New(entityid.Title, 101))
	duchy := e.(*entity.Title)
	assert.Equal(t, entityid.New(entityid.Title, 102), duchy.DeFactoLiege.ID)
	assert.Equal(t, entityid.New(entityid.Title, 100), duchy.DeJureLiege.ID, "de jure and de facto stay independent")
}

func TestBuilder_Closed(t *testing.T) {
	ctx, _ := testutil.Context(t)
	b := NewBuilder()
	_, err := b.Build(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, b.Add(ctx, &entity.Character{ID: cid(1)}), ErrClosed)
	assert.ErrorIs(t, b.AddPlayer(&entity.Player{}), ErrClosed)
	_, err = b.Build(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, _ := testutil.Context(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()
	b := NewBuilder()
	require.NoError(t, b.Add(ctx, &entity.Character{ID: cid(1)}))
	reg, err := b.Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, reg)
}

func TestRegistry_Enumerate(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := build(t, ctx,
		&entity.Character{ID: cid(30)},
		&entity.Character{ID: cid(10)},
		&entity.Character{ID: cid(20)},
	)
	var got []uint32
	for _, e := range reg.Enumerate(entityid.Character) {
		got = append(got, e.EntityID().Num)
	}
	assert.Equal(t, []uint32{10, 20, 30}, got)
	assert.Empty(t, reg.Enumerate(entityid.Faith))
}

func TestRegistry_TypedAccessors(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := build(t, ctx,
		&entity.Culture{ID: entityid.New(entityid.Culture, 5)},
		&entity.Province{ID: entityid.New(entityid.Province, 1), Culture: entity.RefTo(entityid.Culture, 5)},
	)

	prov, ok := reg.Lookup(entityid.New(entityid.Province, 1))
	require.True(t, ok)
	p := prov.(*entity.Province)
	c, ok := reg.Culture(p.Culture)
	require.True(t, ok)
	assert.Equal(t, uint32(5), c.ID.Num)

	_, ok = reg.Character(p.Culture)
	assert.False(t, ok, "kind mismatch")
	_, ok = reg.Province(entity.RefTo(entityid.Province, 1))
	assert.False(t, ok, "unbound ref")
}

func TestRegistry_Players(t *testing.T) {
	ctx, _ := testutil.Context(t)
	b := NewBuilder()
	require.NoError(t, b.Add(ctx, &entity.Character{ID: cid(1)}))
	require.NoError(t, b.AddPlayer(&entity.Player{Name: "p", Character: cref(1), Lineage: []entity.LineageEntry{{Character: cref(7)}}}))
	b.SetMeta(entity.Meta{PlayerName: "p"})
	reg, err := b.Build(ctx)
	require.NoError(t, err)

	require.Len(t, reg.Players(), 1)
	p := reg.Players()[0]
	assert.True(t, p.Character.Bound())
	assert.True(t, p.Lineage[0].Character.Dangling())
	assert.Equal(t, "p", reg.Meta().PlayerName)
	require.Len(t, reg.ReferenceErrors(), 1)
	assert.Contains(t, reg.ReferenceErrors()[0].Error(), "played_character")
}

func TestRegistry_Annotations(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := build(t, ctx, &entity.Character{ID: cid(1)})

	_, ok := reg.Annotation(cid(1))
	assert.False(t, ok)

	reg.Annotate(cid(1), 3, false)
	reg.Annotate(cid(1), 1, true)
	reg.Annotate(cid(1), 2, false)
	a, ok := reg.Annotation(cid(1))
	require.True(t, ok)
	assert.Equal(t, Annotation{Depth: 1, Expanded: true}, a)
}

func TestRegistry_ConcurrentReaders(t *testing.T) {
	ctx, _ := testutil.Context(t)
	reg := build(t, ctx,
		&entity.Character{ID: cid(1), Liege: cref(2)},
		&entity.Character{ID: cid(2)},
	)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(depth int) {
			defer wg.Done()
			e, ok := reg.Lookup(cid(1))
			if !ok {
				return
			}
			_, _ = reg.Character(e.(*entity.Character).Liege)
			reg.Annotate(cid(2), depth, depth%2 == 0)
			_, _ = reg.Annotation(cid(2))
		}(i)
	}
	wg.Wait()

	a, ok := reg.Annotation(cid(2))
	require.True(t, ok)
	assert.Equal(t, 0, a.Depth)
	assert.True(t, a.Expanded)
}
