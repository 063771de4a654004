package localization

import "fmt"

// LocalizationError reports a key that no loaded file defines.
type LocalizationError struct {
	Key string
}

func (e *LocalizationError) Error() string {
	return fmt.Sprintf("no localization for key %q", e.Key)
}
