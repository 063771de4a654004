package schema

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/ck3graph/internal/decode"
	"github.com/vk/ck3graph/internal/entity"
	"github.com/vk/ck3graph/internal/entityid"
	"github.com/vk/ck3graph/internal/node"
	"github.com/vk/ck3graph/internal/testutil"
)

func mapText(t *testing.T, src string) *Records {
	t.Helper()
	ctx, _ := testutil.Context(t)
	root, err := decode.NewText().Decode(ctx, []byte(src))
	require.NoError(t, err)
	recs, err := Map(ctx, root)
	require.NoError(t, err)
	return recs
}

func charID(n uint32) entityid.ID { return entityid.New(entityid.Character, n) }

func refIDs(refs []entity.Ref) []entityid.ID {
	var out []entityid.ID
	for _, r := range refs {
		out = append(out, r.ID)
	}
	return out
}

func TestMap_InlineCharacters(t *testing.T) {
	recs := mapText(t, `character={id=1 liege=2} character={id=2 vassals={1}}`)

	require.Len(t, recs.Characters, 2)
	assert.Empty(t, recs.Errors)

	first := recs.Characters[0]
	assert.Equal(t, charID(1), first.ID)
	assert.Equal(t, charID(2), first.Liege.ID)
	assert.False(t, first.Liege.Bound(), "mapper leaves references unbound")

	second := recs.Characters[1]
	assert.Equal(t, []entityid.ID{charID(1)}, refIDs(second.Vassals))
}

const saveFixture = `
meta_data={ version="1.12.4" meta_date=1100.3.4 meta_player_name="Rurik" }
traits_lookup={ brave craven just }
vassal_contracts={ database={ 50={ vassal=11 } 51={ vassal=12 } } }
county_manager={ counties={ c_novgorod={ faith=3 culture=4 } } }
living={
	10={
		first_name="Rurik"
		nickname_text="nick_the_varangian"
		birth=1050.1.1
		traits={ 0 2 }
		skill={ 5 6 7 8 9 10 }
		dynasty_house=20
		faith=3
		culture=4
		alive_data={
			gold=120.5
			piety={ currency=10 accumulated=300 }
			prestige=55
			kills={ 13 }
			languages={ language_norse }
			memories={ 70 }
			inventory={ artifacts={ 80 } }
		}
		landed_data={ dread=12 domain={ 30 31 } vassal_contracts={ 50 51 } }
		family_data={ primary_spouse=14 spouse=14 former_spouses={ 15 } child={ 11 12 } }
	}
	11={ first_name="Igor" birth=1080.5.5 female=no }
	12={ first_name="Olga" female=yes }
}
dead_unprunable={
	13={ first_name="Old Foe" dead_data={ date=1090.1.1 reason=death_battle liege=10 domain={ 32 } } }
}
characters={ dead_prunable={ 15=none 16={ first_name="Gone" } } }
dynasties={
	dynasty_house={ 20={ name="dynn_rurikid" dynasty=21 found_date=900.1.1 motto="m" head_of_house=10 historical={ 10 } } }
	dynasties={ 21={ key="rurikid" prestige={ currency=100 accumulated=900 } perk={ law_legacy_1 } historical={ 10 } } }
}
landed_titles={ landed_titles={
	30={ key="c_novgorod" name="Novgorod" holder=10 de_jure_liege=33 de_facto_liege=33 history={ 1066.1.1=13 1080.1.1={ type=inherited holder=10 } } }
	31={ key="b_novgorod" holder=10 de_jure_liege=30 }
	32={ key="k_rus" holder=10 }
	33={ key="d_novgorod" holder=10 de_jure_liege=32 capital=30 }
} }
religion={ faiths={ 3={ name="Slavic" doctrine={ tenet_ritual tenet_sacred doctrine_pluralism } religious_head=32 fervor=44.5 } } }
culture_manager={ cultures={ 4={ name="Ilmenian" ethos=ethos_bellicose heritage=heritage_east_slavic parents={ 5 } traditions={ tradition_a tradition_b } created=800.1.1 } } }
character_memory_manager={ database={ 70={ type=battle_memory creation_date=1090.1.1 owner=10 participants={ enemy=13 ally=11 } } } }
artifacts={ artifacts={ 80={ name="Sword" type=sword rarity=famed quality=40 wealth=50 owner=10 history={ entries={ { type=created date=1080.1.1 actor=13 } { type=inherited date=1090.1.1 actor=13 recipient=10 } } } } } }
provinces={ 100={ culture=4 faith=3 holding={ type=castle_holding buildings={ { type=barracks_01 } { } } } } }
played_character={ name="Rurik" character=10 lineage={ { character=13 date=1066.1.1 score=5 } 10 } }
`

func TestMap_SaveLayout(t *testing.T) {
	recs := mapText(t, saveFixture)
	assert.Empty(t, recs.Errors)

	t.Run("meta", func(t *testing.T) {
		assert.Equal(t, node.Date{Year: 1100, Month: 3, Day: 4}, recs.Meta.Date)
		assert.Equal(t, "Rurik", recs.Meta.PlayerName)
		assert.Equal(t, "1.12.4", recs.Meta.Version)
	})

	t.Run("characters", func(t *testing.T) {
		require.Len(t, recs.Characters, 5)
		rurik := recs.Characters[0]
		assert.Equal(t, "Rurik", rurik.Name)
		assert.Equal(t, "nick_the_varangian", rurik.Nickname)
		assert.Equal(t, []string{"brave", "just"}, rurik.Traits)
		assert.Len(t, rurik.Skills, 6)
		assert.Equal(t, 120.5, rurik.Gold)
		assert.Equal(t, 300.0, rurik.Piety)
		assert.Equal(t, 55.0, rurik.Prestige)
		assert.Equal(t, 12.0, rurik.Dread)
		assert.Equal(t, []string{"language_norse"}, rurik.Languages)
		assert.Equal(t, entityid.New(entityid.House, 20), rurik.House.ID)
		assert.Equal(t, []entityid.ID{charID(11), charID(12)}, refIDs(rurik.Vassals))
		assert.Equal(t, []entityid.ID{charID(14)}, refIDs(rurik.Spouses))
		assert.Equal(t, []entityid.ID{charID(15)}, refIDs(rurik.FormerSpouses))
		assert.Equal(t, []entityid.ID{charID(11), charID(12)}, refIDs(rurik.Children))
		assert.Equal(t, []entityid.ID{charID(13)}, refIDs(rurik.Kills))
		assert.Len(t, rurik.Titles, 2)
		assert.Len(t, rurik.Artifacts, 1)
		assert.Len(t, rurik.Memories, 1)

		olga := recs.Characters[2]
		assert.True(t, olga.Female)

		foe := recs.Characters[3]
		assert.True(t, foe.Dead)
		assert.Equal(t, "death_battle", foe.DeathReason)
		assert.Equal(t, charID(10), foe.Liege.ID)
		assert.Equal(t, []entityid.ID{entityid.New(entityid.Title, 32)}, refIDs(foe.Titles))

		assert.Equal(t, charID(16), recs.Characters[4].ID, "`none` entries are skipped silently")
	})

	t.Run("dynasties and houses", func(t *testing.T) {
		require.Len(t, recs.Houses, 1)
		h := recs.Houses[0]
		assert.Equal(t, "dynn_rurikid", h.Name)
		assert.Equal(t, "m", h.Motto)
		assert.Equal(t, entityid.New(entityid.Dynasty, 21), h.Dynasty.ID)
		assert.Equal(t, charID(10), h.Head.ID)

		require.Len(t, recs.Dynasties, 1)
		d := recs.Dynasties[0]
		assert.Equal(t, "rurikid", d.Key)
		assert.Equal(t, 100.0, d.Prestige)
		assert.Equal(t, 900.0, d.AccumulatedPrestige)
		assert.Equal(t, []string{"law_legacy_1"}, d.Perks)
	})

	t.Run("titles", func(t *testing.T) {
		require.Len(t, recs.Titles, 4)
		county := recs.Titles[0]
		assert.Equal(t, entity.TierCounty, county.Tier)
		assert.Equal(t, entityid.New(entityid.Faith, 3), county.Faith.ID, "county manager fills faith")
		assert.Equal(t, entityid.New(entityid.Culture, 4), county.Culture.ID)
		require.Len(t, county.History, 2)
		assert.Equal(t, charID(13), county.History[0].Holder.ID)
		assert.Equal(t, "inherited", county.History[1].Type)
		assert.Equal(t, entityid.New(entityid.Title, 30), recs.Titles[3].Capital.ID)
	})

	t.Run("faith and culture", func(t *testing.T) {
		require.Len(t, recs.Faiths, 1)
		f := recs.Faiths[0]
		assert.Equal(t, []string{"tenet_ritual", "tenet_sacred"}, f.Tenets)
		assert.Equal(t, []string{"doctrine_pluralism"}, f.Doctrines)
		assert.Equal(t, entityid.New(entityid.Title, 32), f.ReligiousHead.ID)

		require.Len(t, recs.Cultures, 1)
		c := recs.Cultures[0]
		assert.Equal(t, "ethos_bellicose", c.Ethos)
		assert.Equal(t, []string{"tradition_a", "tradition_b"}, c.Traditions)
		assert.Equal(t, []entityid.ID{entityid.New(entityid.Culture, 5)}, refIDs(c.Parents))
	})

	t.Run("memories artifacts provinces", func(t *testing.T) {
		require.Len(t, recs.Memories, 1)
		mem := recs.Memories[0]
		require.Len(t, mem.Participants, 2)
		assert.Equal(t, "enemy", mem.Participants[0].Role)

		require.Len(t, recs.Artifacts, 1)
		a := recs.Artifacts[0]
		require.Len(t, a.History, 2)
		assert.Equal(t, charID(10), a.History[1].Recipient.ID)
		assert.False(t, a.History[0].Recipient.IsSet())

		require.Len(t, recs.Provinces, 1)
		assert.Equal(t, "castle_holding", recs.Provinces[0].Holding)
		assert.Equal(t, []string{"barracks_01"}, recs.Provinces[0].Buildings)
	})

	t.Run("players", func(t *testing.T) {
		require.Len(t, recs.Players, 1)
		p := recs.Players[0]
		assert.Equal(t, charID(10), p.Character.ID)
		require.Len(t, p.Lineage, 2)
		assert.Equal(t, 5, p.Lineage[0].Score)
		assert.Equal(t, charID(10), p.Lineage[1].Character.ID)
	})
}

func TestMap_SchemaErrors(t *testing.T) {
	testCases := []struct {
		name      string
		src       string
		wantChars int
		section   string
		field     string
	}{
		{name: "non numeric record key", src: `living={ abc={ first_name=x } 1={ } }`, wantChars: 1, section: "living", field: "abc"},
		{name: "malformed date defaults", src: `living={ 1={ birth=soon } }`, wantChars: 1, section: "living", field: "birth"},
		{name: "malformed reference", src: `living={ 1={ liege=nobody } }`, wantChars: 1, section: "living", field: "liege"},
		{name: "section of wrong shape", src: `living=5 character={ id=2 }`, wantChars: 1, section: "living"},
		{name: "record of wrong shape", src: `living={ 1=7 }`, wantChars: 0, section: "living"},
		{name: "inline record without id", src: `character={ name=x }`, wantChars: 0, section: "character", field: "id"},
		{name: "unknown trait index", src: `traits_lookup={ brave } living={ 1={ traits={ 0 4 } } }`, wantChars: 1, section: "living", field: "traits"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recs := mapText(t, tc.src)
			assert.Len(t, recs.Characters, tc.wantChars)
			require.NotEmpty(t, recs.Errors)
			assert.Equal(t, tc.section, recs.Errors[0].Section)
			assert.Equal(t, tc.field, recs.Errors[0].Field)
			assert.Contains(t, recs.Errors[0].Error(), "schema error in "+tc.section)
		})
	}
}

func TestMap_TitleHistoryDates(t *testing.T) {
	crowned := node.Date{Year: 1066, Month: 1, Day: 1}

	t.Run("text keys keep leading zeros", func(t *testing.T) {
		recs := mapText(t, `landed_titles={ landed_titles={ 5={ history={ 1066.01.01=42 } } } }`)
		require.Len(t, recs.Titles, 1)
		require.Len(t, recs.Titles[0].History, 1)
		assert.Equal(t, crowned, recs.Titles[0].History[0].Date)
		assert.Equal(t, charID(42), recs.Titles[0].History[0].Holder.ID)
	})

	t.Run("binary keys are hour counts", func(t *testing.T) {
		const (
			tokLandedTitles uint16 = 0x2000
			tokHistory      uint16 = 0x2001
		)
		var buf bytes.Buffer
		put := func(vs ...any) {
			for _, v := range vs {
				require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
			}
		}
		i32 := func(v int32) { put(uint16(0x000c), v) }
		eq, open, closeBlock := uint16(0x0001), uint16(0x0003), uint16(0x0004)

		put(tokLandedTitles, eq, open, tokLandedTitles, eq, open)
		i32(5)
		put(eq, open, tokHistory, eq, open)
		i32(int32(crowned.Hours()))
		put(eq)
		i32(42)
		put(closeBlock, closeBlock, closeBlock, closeBlock)

		ctx, _ := testutil.Context(t)
		dict := decode.Dictionary{tokLandedTitles: "landed_titles", tokHistory: "history"}
		root, err := decode.NewBinary(dict, false).Decode(ctx, buf.Bytes())
		require.NoError(t, err)
		recs, err := Map(ctx, root)
		require.NoError(t, err)

		require.Len(t, recs.Titles, 1)
		require.Len(t, recs.Titles[0].History, 1)
		assert.Equal(t, crowned, recs.Titles[0].History[0].Date)
		assert.Equal(t, charID(42), recs.Titles[0].History[0].Holder.ID)
		for _, e := range recs.Errors {
			assert.NotEqual(t, "history", e.Field)
		}
	})
}

func TestMap_NoneSentinel(t *testing.T) {
	recs := mapText(t, `living={ 1={ liege=4294967295 faith=none } }`)
	require.Len(t, recs.Characters, 1)
	assert.False(t, recs.Characters[0].Liege.IsSet())
	assert.False(t, recs.Characters[0].Faith.IsSet())
	assert.Empty(t, recs.Errors)
}

func TestMap_RejectsNonObjectRoot(t *testing.T) {
	ctx, _ := testutil.Context(t)
	_, err := Map(ctx, node.List())
	assert.ErrorIs(t, err, ErrNotObject)
}
