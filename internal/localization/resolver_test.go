package localization

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/ck3graph/internal/testutil"
)

func TestLoad_OverrideOrder(t *testing.T) {
	ctx, _ := testutil.Context(t)
	base := testutil.WriteTree(t, map[string]string{
		"localization/english/traits_l_english.yml":     "l_english:\n trait_brave:0 \"Brave\"\n craven:0 \"Craven\"\n",
		"localization/english/sub/titles_l_english.yml": "l_english:\n k_england:0 \"England\"\n",
		"localization/french/traits_l_french.yml":       "l_french:\n craven:0 \"Lâche\"\n",
	})
	mod := testutil.WriteTree(t, map[string]string{
		"mod_l_english.yml":  "l_english:\n craven:0 \"Coward\"\n",
		"nested/ignored.yml": "l_english:\n ignored:0 \"x\"\n",
	})

	r, err := Load(ctx, []string{base, mod}, "english", false)
	require.NoError(t, err)

	testCases := []struct {
		key  string
		want string
	}{
		{key: "craven", want: "Coward"},
		{key: "k_england", want: "England"},
		{key: "brave", want: "Brave"},
		{key: "trait_brave", want: "Brave"},
	}
	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			got, err := r.Lookup(tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
	assert.False(t, r.Has("ignored"), "only files directly under a fallback root are read")
	assert.Equal(t, 3, r.Len())
}

func TestLoad_SameRootSortedOrder(t *testing.T) {
	ctx, _ := testutil.Context(t)
	root := testutil.WriteTree(t, map[string]string{
		"localization/english/a_l_english.yml": "l_english:\n key:0 \"first\"\n",
		"localization/english/b_l_english.yml": "l_english:\n key:0 \"second\"\n",
	})
	r, err := Load(ctx, []string{root}, "english", false)
	require.NoError(t, err)
	v, err := r.Lookup("key")
	require.NoError(t, err)
	assert.Equal(t, "second", v)
}

func TestLoad_MissingRoot(t *testing.T) {
	ctx, logs := testutil.Context(t)
	r, err := Load(ctx, []string{filepath.Join(t.TempDir(), "absent")}, "english", false)
	require.NoError(t, err)
	assert.Zero(t, r.Len())
	assert.Contains(t, logs.String(), "Localization root not found")
}

func TestLoad_Cancelled(t *testing.T) {
	ctx, _ := testutil.Context(t)
	root := testutil.WriteTree(t, map[string]string{
		"localization/english/a_l_english.yml": "l_english:\n key:0 \"v\"\n",
	})
	ctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err := Load(ctx, []string{root}, "english", false)
	assert.ErrorIs(t, err, context.Canceled)
}

func resolverWith(permissive bool, data map[string]string) *Resolver {
	r := New(permissive)
	for k, v := range data {
		r.data[k] = v
	}
	return r
}

func TestLookup_Missing(t *testing.T) {
	strict := resolverWith(false, nil)
	_, err := strict.Lookup("nope")
	var locErr *LocalizationError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, "nope", locErr.Key)

	lenient := resolverWith(true, nil)
	v, err := lenient.Lookup("nope")
	require.NoError(t, err)
	assert.Equal(t, "nope", v)
}

func TestLocalize_References(t *testing.T) {
	r := resolverWith(false, map[string]string{
		"key":    "value",
		"test":   "$key$",
		"test2":  " $key$ ",
		"test3":  " $key$ $key$ ",
		"nested": "<$test2$>",
		"loop":   "$loop$",
		"broken": "$missing$",
		"dollar": "costs 5$",
		"trait":  "[GetTrait(trait_brave).GetName()]",
		"choice": "a [Select_CString(CHARACTER.IsFemale,'vive','vif')] b",
		"noargs": "x[ROOT.Char.GetName]y",
	})

	testCases := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "test", want: "value"},
		{key: "test2", want: " value "},
		{key: "test3", want: " value value "},
		{key: "nested", want: "< value >"},
		{key: "loop", want: "$loop$"},
		{key: "broken", wantErr: true},
		{key: "dollar", want: "costs 5$"},
		{key: "trait", want: "Brave"},
		{key: "choice", want: "a CHARACTER.IsFemale b"},
		{key: "noargs", want: "xy"},
	}
	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			got, err := r.Localize(tc.key)
			if tc.wantErr {
				var locErr *LocalizationError
				assert.ErrorAs(t, err, &locErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDemangle(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{in: "dynn_test_name", want: "Test"},
		{in: "dynn_test_perk", want: "Test"},
		{in: "dynn_test", want: "Test"},
		{in: "k_holy_roman_empire", want: "Holy Roman Empire"},
		{in: "martial_custom_equal", want: "Equal"},
		{in: "plain", want: "Plain"},
		{in: "", want: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Demangle(tc.in))
		})
	}
}

func TestLocalizeOrDemangle(t *testing.T) {
	r := resolverWith(true, map[string]string{"c_york": "York"})
	assert.Equal(t, "York", r.LocalizeOrDemangle("c_york"))
	assert.Equal(t, "De Hauteville", r.LocalizeOrDemangle("dynn_de_hauteville_name"))
}
