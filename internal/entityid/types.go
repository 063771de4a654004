// internal/entityid/types.go
package entityid

import "fmt"

// Kind is the category of an entity. Numeric ids are only unique within a Kind.
type Kind uint8

const (
	Character Kind = iota + 1
	Dynasty
	House
	Title
	Culture
	Faith
	Artifact
	Memory
	Province
)

// Kinds lists every entity kind in a stable order.
var Kinds = []Kind{Character, Dynasty, House, Title, Culture, Faith, Artifact, Memory, Province}

var kindNames = map[Kind]string{
	Character: "character",
	Dynasty:   "dynasty",
	House:     "house",
	Title:     "title",
	Culture:   "culture",
	Faith:     "faith",
	Artifact:  "artifact",
	Memory:    "memory",
	Province:  "province",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind maps a kind name such as "character" back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// ID identifies one entity. The zero value is not a valid id.
type ID struct {
	Kind Kind
	Num  uint32
}

// New builds an ID.
func New(kind Kind, num uint32) ID {
	return ID{Kind: kind, Num: num}
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return id.Kind == 0
}
