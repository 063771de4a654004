package decode

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// TokenDictionary maps binary token ids to the words they stand for. The
// table is specific to one game version and is supplied by the caller.
type TokenDictionary interface {
	Lookup(id uint16) (string, bool)
}

// Dictionary is the in-memory TokenDictionary.
type Dictionary map[uint16]string

// Lookup implements TokenDictionary.
func (d Dictionary) Lookup(id uint16) (string, bool) {
	s, ok := d[id]
	return s, ok
}

// LoadDictionary reads a token table with one `name id` pair per line.
// The id may be decimal or 0x-prefixed hex. Blank lines and lines starting
// with # are ignored.
func LoadDictionary(r io.Reader) (Dictionary, error) {
	dict := make(Dictionary)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("token dictionary line %d: expected `name id`, got %q", lineNo, line)
		}
		id, err := strconv.ParseUint(fields[1], 0, 16)
		if err != nil {
			return nil, fmt.Errorf("token dictionary line %d: invalid id %q: %w", lineNo, fields[1], err)
		}
		dict[uint16(id)] = fields[0]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read token dictionary: %w", err)
	}
	return dict, nil
}

// LoadDictionaryFile opens path and loads it with LoadDictionary.
func LoadDictionaryFile(path string) (Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open token dictionary %s: %w", path, err)
	}
	defer f.Close()
	return LoadDictionary(f)
}
