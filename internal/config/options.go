package config

// EnvPrefix prefixes every environment variable the options read.
const EnvPrefix = "CK3GRAPH_"

// Options controls one extraction run.
type Options struct {
	// MaxDepth is the deepest traversal level that is still expanded.
	MaxDepth      int  `env:"MAX_DEPTH"`
	ExpandLieges  bool `env:"EXPAND_LIEGES"`
	ExpandVassals bool `env:"EXPAND_VASSALS"`
	// Permissive turns unknown binary tokens and missing localization keys
	// into placeholders instead of errors.
	Permissive bool `env:"PERMISSIVE"`

	// LocalizationRoots are game and mod directories, lowest priority first.
	LocalizationRoots   []string `env:"LOCALIZATION_ROOTS"`
	TokenDictionaryPath string   `env:"TOKEN_DICTIONARY_PATH"`
	Language            string   `env:"LANGUAGE"`
	// Roots are character ids to traverse from. Empty means the played
	// characters.
	Roots []uint32 `env:"ROOTS"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
}

// Defaults returns the options used when nothing else is configured.
func Defaults() Options {
	return Options{
		MaxDepth:      3,
		ExpandLieges:  true,
		ExpandVassals: true,
		Language:      "english",
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// document is the on-disk shape shared by the HCL and YAML formats. Pointer
// fields tell an absent setting from a zero one.
type document struct {
	MaxDepth            *int     `hcl:"max_depth,optional" yaml:"max_depth"`
	ExpandLieges        *bool    `hcl:"expand_lieges,optional" yaml:"expand_lieges"`
	ExpandVassals       *bool    `hcl:"expand_vassals,optional" yaml:"expand_vassals"`
	Permissive          *bool    `hcl:"permissive,optional" yaml:"permissive"`
	LocalizationRoots   []string `hcl:"localization_roots,optional" yaml:"localization_roots"`
	TokenDictionaryPath *string  `hcl:"token_dictionary_path,optional" yaml:"token_dictionary_path"`
	Language            *string  `hcl:"language,optional" yaml:"language"`
	Roots               []uint32 `hcl:"roots,optional" yaml:"roots"`
	LogLevel            *string  `hcl:"log_level,optional" yaml:"log_level"`
	LogFormat           *string  `hcl:"log_format,optional" yaml:"log_format"`
}

func (d *document) apply(o *Options) {
	if d.MaxDepth != nil {
		o.MaxDepth = *d.MaxDepth
	}
	if d.ExpandLieges != nil {
		o.ExpandLieges = *d.ExpandLieges
	}
	if d.ExpandVassals != nil {
		o.ExpandVassals = *d.ExpandVassals
	}
	if d.Permissive != nil {
		o.Permissive = *d.Permissive
	}
	if d.LocalizationRoots != nil {
		o.LocalizationRoots = d.LocalizationRoots
	}
	if d.TokenDictionaryPath != nil {
		o.TokenDictionaryPath = *d.TokenDictionaryPath
	}
	if d.Language != nil {
		o.Language = *d.Language
	}
	if d.Roots != nil {
		o.Roots = d.Roots
	}
	if d.LogLevel != nil {
		o.LogLevel = *d.LogLevel
	}
	if d.LogFormat != nil {
		o.LogFormat = *d.LogFormat
	}
}
