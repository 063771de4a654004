package config

import (
	"errors"
	"fmt"
	"slices"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Validate checks that o is coherent and returns every failure joined.
func (o Options) Validate() error {
	var errs []error
	if o.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must be >= 0, got %d", o.MaxDepth))
	}
	if o.Language == "" {
		errs = append(errs, errors.New("language must not be empty"))
	}
	for i, r := range o.LocalizationRoots {
		if r == "" {
			errs = append(errs, fmt.Errorf("localization_roots[%d] is empty", i))
		}
	}
	for i, id := range o.Roots {
		if id == 0 {
			errs = append(errs, fmt.Errorf("roots[%d] must be a character id, got 0", i))
		}
	}
	if !slices.Contains(validLogLevels, o.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", o.LogLevel))
	}
	if !slices.Contains(validLogFormats, o.LogFormat) {
		errs = append(errs, fmt.Errorf("log_format %q is invalid; valid values: text, json", o.LogFormat))
	}
	return errors.Join(errs...)
}
