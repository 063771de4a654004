package schema

import (
	"fmt"
	"strings"

	"github.com/vk/ck3graph/internal/entityid"
)

// SchemaError describes one record or field the mapper could not use.
// Entity is zero when the problem is with a whole section or with a key
// that could not be turned into an id.
type SchemaError struct {
	Section string
	Entity  entityid.ID
	Field   string
	Reason  string
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema error in ")
	sb.WriteString(e.Section)
	if !e.Entity.IsZero() {
		fmt.Fprintf(&sb, " for %s", e.Entity)
	}
	if e.Field != "" {
		fmt.Fprintf(&sb, " field %q", e.Field)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Reason)
	return sb.String()
}
