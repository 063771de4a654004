package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/ck3graph/internal/testutil"
)

func TestLoad_Formats(t *testing.T) {
	ctx, _ := testutil.Context(t)
	t.Setenv("CK3_HOME", "/games/ck3")

	dir := testutil.WriteTree(t, map[string]string{
		"full.hcl": `
max_depth             = 0
expand_lieges         = false
permissive            = true
localization_roots    = ["${env.CK3_HOME}/game", "/mods/a"]
token_dictionary_path = "tokens.txt"
language              = "french"
roots                 = [42, 7]
log_level             = "debug"
log_format            = "json"
`,
		"full.yaml": `
max_depth: 0
expand_lieges: false
permissive: true
localization_roots: [/games/ck3/game, /mods/a]
token_dictionary_path: tokens.txt
language: french
roots: [42, 7]
log_level: debug
log_format: json
`,
		"partial.yml": "max_depth: 5\n",
		"empty.yaml":  "",
	})

	full := Options{
		MaxDepth:            0,
		ExpandLieges:        false,
		ExpandVassals:       true,
		Permissive:          true,
		LocalizationRoots:   []string{"/games/ck3/game", "/mods/a"},
		TokenDictionaryPath: "tokens.txt",
		Language:            "french",
		Roots:               []uint32{42, 7},
		LogLevel:            "debug",
		LogFormat:           "json",
	}
	partial := Defaults()
	partial.MaxDepth = 5

	testCases := []struct {
		name string
		file string
		want Options
	}{
		{name: "hcl", file: "full.hcl", want: full},
		{name: "yaml", file: "full.yaml", want: full},
		{name: "partial keeps defaults", file: "partial.yml", want: partial},
		{name: "empty file", file: "empty.yaml", want: Defaults()},
		{name: "no file", want: Defaults()},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := ""
			if tc.file != "" {
				path = filepath.Join(dir, tc.file)
			}
			got, err := Load(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteTree(t, map[string]string{
		"unknown.yaml": "max_depth: 1\ncolour: blue\n",
		"unknown.hcl":  "colour = \"blue\"\n",
		"broken.hcl":   "max_depth = \n",
		"config.toml":  "max_depth = 1\n",
	})

	testCases := []struct {
		name        string
		file        string
		errContains string
	}{
		{name: "unknown yaml key", file: "unknown.yaml", errContains: "decode yaml"},
		{name: "unknown hcl attribute", file: "unknown.hcl", errContains: "failed to decode HCL file"},
		{name: "hcl syntax", file: "broken.hcl", errContains: "failed to parse HCL file"},
		{name: "unsupported extension", file: "config.toml", errContains: "unsupported config format"},
		{name: "missing file", file: "absent.yaml", errContains: "reading config"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(ctx, filepath.Join(dir, tc.file))
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.errContains)
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteTree(t, map[string]string{
		"c.yaml": "max_depth: 5\nlanguage: german\n",
	})
	t.Setenv("CK3GRAPH_MAX_DEPTH", "1")
	t.Setenv("CK3GRAPH_EXPAND_VASSALS", "false")
	t.Setenv("CK3GRAPH_LOCALIZATION_ROOTS", "/a,/b")
	t.Setenv("CK3GRAPH_ROOTS", "3,4")

	got, err := Load(ctx, filepath.Join(dir, "c.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1, got.MaxDepth)
	assert.False(t, got.ExpandVassals)
	assert.True(t, got.ExpandLieges)
	assert.Equal(t, "german", got.Language)
	assert.Equal(t, []string{"/a", "/b"}, got.LocalizationRoots)
	assert.Equal(t, []uint32{3, 4}, got.Roots)
}

func TestLoad_BadEnv(t *testing.T) {
	ctx, _ := testutil.Context(t)
	t.Setenv("CK3GRAPH_MAX_DEPTH", "deep")
	_, err := Load(ctx, "")
	assert.ErrorContains(t, err, "parse env")
}

func TestValidate(t *testing.T) {
	bad := Defaults()
	bad.MaxDepth = -1
	bad.Language = ""
	bad.LocalizationRoots = []string{"/ok", ""}
	bad.Roots = []uint32{0}
	bad.LogLevel = "verbose"
	bad.LogFormat = "xml"

	err := bad.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"max_depth must be >= 0",
		"language must not be empty",
		"localization_roots[1] is empty",
		"roots[0] must be a character id",
		`log_level "verbose" is invalid`,
		`log_format "xml" is invalid`,
	} {
		assert.ErrorContains(t, err, want)
	}
	assert.NoError(t, Defaults().Validate())
}
