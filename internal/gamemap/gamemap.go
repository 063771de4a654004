// Package gamemap locates the game's map data among the configured roots
// and reads the province tables renderers need.
package gamemap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/ck3graph/internal/fsutil"
)

const (
	mapDataDir      = "map_data"
	provincesFile   = "provinces.png"
	riversFile      = "rivers.png"
	definitionFile  = "definition.csv"
	landedTitlesDir = "common/landed_titles"
	landedTitlesExt = ".txt"
)

// Province is one row of definition.csv.
type Province struct {
	ID    uint32
	Color [3]uint8
	Name  string
}

// Definition is the map data adopted from one root.
type Definition struct {
	Root          string
	ProvincesPNG  string
	RiversPNG     string
	DefinitionCSV string

	Provinces map[uint32]Province
	// Baronies maps province ids to barony title keys.
	Baronies map[uint32]string

	byColor map[[3]uint8]uint32
}

// Barony returns the barony title key of a province.
func (d *Definition) Barony(province uint32) (string, bool) {
	k, ok := d.Baronies[province]
	return k, ok
}

// ProvinceAt returns the province painted with the given colour in
// provinces.png.
func (d *Definition) ProvinceAt(rgb [3]uint8) (Province, bool) {
	id, ok := d.byColor[rgb]
	if !ok {
		return Province{}, false
	}
	return d.Provinces[id], true
}

// complete reports whether root holds every file map rendering needs.
func complete(root string) error {
	for _, f := range []string{provincesFile, riversFile, definitionFile} {
		p := filepath.Join(root, mapDataDir, f)
		info, err := os.Stat(p)
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", p)
		}
	}
	if dir := filepath.Join(root, filepath.FromSlash(landedTitlesDir)); !fsutil.IsDir(dir) {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// load parses the definition found at root.
func load(ctx context.Context, root string) (*Definition, error) {
	d := &Definition{
		Root:          root,
		ProvincesPNG:  filepath.Join(root, mapDataDir, provincesFile),
		RiversPNG:     filepath.Join(root, mapDataDir, riversFile),
		DefinitionCSV: filepath.Join(root, mapDataDir, definitionFile),
	}
	f, err := os.Open(d.DefinitionCSV)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if d.Provinces, err = readDefinitions(f); err != nil {
		return nil, fmt.Errorf("reading %s: %w", d.DefinitionCSV, err)
	}
	d.byColor = make(map[[3]uint8]uint32, len(d.Provinces))
	for id, p := range d.Provinces {
		d.byColor[p.Color] = id
	}

	if d.Baronies, err = readBaronies(ctx, filepath.Join(root, filepath.FromSlash(landedTitlesDir))); err != nil {
		return nil, err
	}
	return d, nil
}
