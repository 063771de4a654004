package localization

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// entry is one parsed `key:N "value"` line.
type entry struct {
	key   string
	value string
}

// parseFile reads a localization file. The `l_<language>:` header, blank
// lines and comments are skipped, as are lines that do not carry a quoted
// value.
func parseFile(data []byte) ([]entry, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}

	var out []entry
	sc := bufio.NewScanner(bytes.NewReader(decoded))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if e, ok := parseLine(sc.Text()); ok {
			out = append(out, e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseLine(line string) (entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return entry{}, false
	}
	key, rest, ok := strings.Cut(line, ":")
	if !ok || key == "" || strings.ContainsAny(key, " \t\"") {
		return entry{}, false
	}
	open := strings.IndexByte(rest, '"')
	if open < 0 {
		return entry{}, false
	}
	// The version number between ':' and the quote is ignored.
	if v := strings.TrimSpace(rest[:open]); strings.Trim(v, "0123456789") != "" {
		return entry{}, false
	}
	closing := strings.LastIndexByte(rest, '"')
	if closing <= open {
		return entry{}, false
	}
	return entry{key: key, value: removeFormatting(rest[open+1 : closing])}, true
}

// removeFormatting drops `#X text#!` markup, keeping the text. The word
// right after an opening '#' is the format name.
func removeFormatting(s string) string {
	if !strings.Contains(s, "#") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	open := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '#' {
			b.WriteByte(c)
			continue
		}
		if open {
			open = false
			if i+1 < len(s) && s[i+1] == '!' {
				i++
			}
			continue
		}
		open = true
		for i+1 < len(s) && s[i+1] != ' ' {
			i++
		}
		if i+1 < len(s) {
			i++
		}
	}
	return b.String()
}
