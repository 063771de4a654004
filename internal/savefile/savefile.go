// Package savefile reads save files from disk, unwrapping the zip
// container compressed saves use.
package savefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zip"
)

// GamestateMember is the archive member holding the save body.
const GamestateMember = "gamestate"

// ErrNoGamestate is returned for an archive without a gamestate member.
var ErrNoGamestate = errors.New("archive has no " + GamestateMember + " member")

var zipMagic = []byte("PK\x03\x04")

// headerWindow is how far into the file the archive may start.
const headerWindow = 256

// Open reads the save at path.
func Open(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading save %s: %w", path, err)
	}
	out, err := Read(data)
	if err != nil {
		return nil, fmt.Errorf("reading save %s: %w", path, err)
	}
	return out, nil
}

// Read returns the save body of data: the gamestate member when data is or
// embeds a zip archive, data itself otherwise. Compressed saves keep a
// plain header line in front of the archive, so the magic is searched for
// near the start rather than expected at offset zero.
func Read(data []byte) ([]byte, error) {
	at := bytes.Index(data[:min(len(data), headerWindow+len(zipMagic))], zipMagic)
	if at < 0 {
		return data, nil
	}
	archive := data[at:]
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != GamestateMember {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", GamestateMember, err)
		}
		defer rc.Close()
		body, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("inflating %s: %w", GamestateMember, err)
		}
		return body, nil
	}
	return nil, ErrNoGamestate
}
