package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/vk/ck3graph/internal/ctxlog"
)

// ErrUnsupportedFormat is returned for a config file whose extension is
// neither .hcl nor .yaml/.yml.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Load layers the file at path (skipped when path is empty) and the
// environment over Defaults. The result is not validated.
func Load(ctx context.Context, path string) (Options, error) {
	logger := ctxlog.FromContext(ctx)
	opts := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Options{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		var doc *document
		switch strings.ToLower(filepath.Ext(path)) {
		case ".hcl":
			doc, err = decodeHCL(path, data, os.Environ())
		case ".yaml", ".yml":
			doc, err = decodeYAML(data)
		default:
			return Options{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
		if err != nil {
			return Options{}, err
		}
		doc.apply(&opts)
		logger.Debug("Config file loaded.", "path", path)
	}

	if err := env.ParseWithOptions(&opts, env.Options{Prefix: EnvPrefix}); err != nil {
		return Options{}, fmt.Errorf("parse env: %w", err)
	}
	return opts, nil
}

// decodeHCL reads an HCL document. Expressions may refer to environment
// variables as `env.NAME`.
func decodeHCL(path string, data []byte, environ []string) (*document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var doc document
	diags = gohcl.DecodeBody(file.Body, evalContext(environ), &doc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	return &doc, nil
}

func evalContext(environ []string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}

// decodeYAML reads a YAML document, rejecting unknown keys.
func decodeYAML(data []byte) (*document, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &doc, nil
}
