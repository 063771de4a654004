package registry

import (
	"errors"
	"fmt"

	"github.com/vk/ck3graph/internal/entityid"
)

// ErrClosed is returned when a Builder is used after Build.
var ErrClosed = errors.New("registry builder is closed")

// ReferenceError records a reference whose target does not exist. Source is
// zero for references held by played_character entries.
type ReferenceError struct {
	Source entityid.ID
	Target entityid.ID
}

func (e *ReferenceError) Error() string {
	src := e.Source.String()
	if e.Source.IsZero() {
		src = "played_character"
	}
	return fmt.Sprintf("dangling reference from %s to %s", src, e.Target)
}
