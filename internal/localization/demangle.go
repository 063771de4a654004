package localization

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var demanglePrefixes = []string{
	"dynn_", "nick_", "death_", "tenet_", "doctrine_", "ethos_", "heritage_",
	"language_", "martial_custom_", "tradition_", "e_", "k_", "d_", "c_", "b_", "x_x_",
}

var demangleSuffixes = []string{"_name", "_perk"}

// Demangle makes a readable name out of a key that has no localization:
// "dynn_de_hauteville_name" becomes "De Hauteville".
func Demangle(key string) string {
	s := key
	for _, p := range demanglePrefixes {
		if rest, ok := strings.CutPrefix(s, p); ok {
			s = rest
			break
		}
	}
	for _, suf := range demangleSuffixes {
		if rest, ok := strings.CutSuffix(s, suf); ok {
			s = rest
			break
		}
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", " "))
	return cases.Title(language.Und).String(s)
}

// LocalizeOrDemangle is Localize with Demangle as the fallback for
// missing keys.
func (r *Resolver) LocalizeOrDemangle(key string) string {
	if !r.Has(key) {
		return Demangle(key)
	}
	v, err := r.Localize(key)
	if err != nil {
		return Demangle(key)
	}
	return v
}
