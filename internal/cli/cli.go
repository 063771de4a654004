package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/vk/ck3graph/internal/app"
	"github.com/vk/ck3graph/internal/config"
	"github.com/vk/ck3graph/internal/ctxlog"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// idList collects a repeatable character id flag.
type idList []uint32

func (l *idList) String() string {
	parts := make([]string, len(*l))
	for i, id := range *l {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}

func (l *idList) Set(v string) error {
	id, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return fmt.Errorf("not a character id: %q", v)
	}
	*l = append(*l, uint32(id))
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Flags override the config file and the environment.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("ck3graph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
ck3graph - Extracts the entity graph of a Crusader Kings III save.

Usage:
  ck3graph [options] SAVE_PATH

Arguments:
  SAVE_PATH
    Path to a .ck3 save: plain text, binary, or zip compressed.

Options:
`)
		flagSet.PrintDefaults()
	}

	var (
		locRoots stringList
		roots    idList
	)
	configFlag := flagSet.String("config", "", "Path to a .hcl or .yaml config file.")
	maxDepthFlag := flagSet.Int("max-depth", 3, "Deepest traversal level that is still expanded.")
	liegesFlag := flagSet.Bool("expand-lieges", true, "Follow liege relations during traversal.")
	vassalsFlag := flagSet.Bool("expand-vassals", true, "Follow vassal relations during traversal.")
	permissiveFlag := flagSet.Bool("permissive", false, "Use placeholders for unknown tokens and missing localization.")
	flagSet.Var(&locRoots, "loc-root", "Game or mod directory, lowest priority first. Repeatable.")
	tokensFlag := flagSet.String("tokens", "", "Token dictionary for binary saves.")
	languageFlag := flagSet.String("language", "english", "Localization language.")
	flagSet.Var(&roots, "root", "Character id to traverse from. Repeatable. Defaults to the played characters.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No save path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	savePath := flagSet.Arg(0)

	ctx := ctxlog.WithLogger(context.Background(), slog.Default())
	opts, err := config.Load(ctx, *configFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-depth":
			opts.MaxDepth = *maxDepthFlag
		case "expand-lieges":
			opts.ExpandLieges = *liegesFlag
		case "expand-vassals":
			opts.ExpandVassals = *vassalsFlag
		case "permissive":
			opts.Permissive = *permissiveFlag
		case "loc-root":
			opts.LocalizationRoots = locRoots
		case "tokens":
			opts.TokenDictionaryPath = *tokensFlag
		case "language":
			opts.Language = *languageFlag
		case "root":
			opts.Roots = roots
		case "log-format":
			opts.LogFormat = strings.ToLower(*logFormatFlag)
		case "log-level":
			opts.LogLevel = strings.ToLower(*logLevelFlag)
		}
	})
	slog.Debug("Flag overrides applied.")

	cfg, err := app.NewConfig(app.Config{SavePath: savePath, Options: opts})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
