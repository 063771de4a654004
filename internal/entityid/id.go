// internal/entityid/id.go
package entityid

import (
	"fmt"
	"regexp"
	"strconv"
)

// idRegex matches the canonical form, e.g. `character:123`.
var idRegex = regexp.MustCompile(`^([a-z_]+):(\d+)$`)

// String serializes the ID into its canonical `kind:number` form.
func (id ID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.Kind.String() + ":" + strconv.FormatUint(uint64(id.Num), 10)
}

// Less orders ids by kind, then number.
func (id ID) Less(other ID) bool {
	if id.Kind != other.Kind {
		return id.Kind < other.Kind
	}
	return id.Num < other.Num
}

// Compare is Less as a three-way comparison, for slices.SortFunc.
func Compare(a, b ID) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}

// Parse creates an ID by parsing its canonical string representation.
func Parse(rawID string) (ID, error) {
	if rawID == "" {
		return ID{}, fmt.Errorf("identifier cannot be empty")
	}

	matches := idRegex.FindStringSubmatch(rawID)
	if matches == nil {
		return ID{}, fmt.Errorf("invalid identifier format: %q", rawID)
	}

	kind, ok := ParseKind(matches[1])
	if !ok {
		return ID{}, fmt.Errorf("unknown entity kind: %q", matches[1])
	}

	num, err := strconv.ParseUint(matches[2], 10, 32)
	if err != nil {
		return ID{}, fmt.Errorf("identifier number out of range: %w", err)
	}

	return ID{Kind: kind, Num: uint32(num)}, nil
}
