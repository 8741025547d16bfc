// Package component resolves per-component descriptors into Config values.
package component

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/bootstack/internal/ctxlog"
	"github.com/vk/bootstack/internal/schema"
)

// DescriptorFileName is the fixed name of a component descriptor file.
const DescriptorFileName = "component.hcl"

// ErrNotFound is returned when a location holds no component descriptor at
// all, as opposed to holding one that fails to parse.
var ErrNotFound = errors.New("component descriptor not found")

// cacheSize bounds the resolver cache. Descriptors are small; the bound only
// matters for pathological trees.
const cacheSize = 1024

// ClasspathInfo is one classpath declaration of a component. Location is
// relative to the component root and may end in the wildcard suffix "/*".
type ClasspathInfo struct {
	Type     string
	Location string
}

// Config is the resolved configuration of a single component. Classpath keeps
// the declaration order of the descriptor.
type Config struct {
	Name         string
	RootLocation string
	Enabled      bool
	Classpath    []ClasspathInfo
}

// Resolver loads component descriptors and caches successful resolutions by
// canonical absolute location for the lifetime of the process.
type Resolver struct {
	cache *lru.Cache[string, *Config]
}

// NewResolver creates a Resolver with an empty cache.
func NewResolver() (*Resolver, error) {
	cache, err := lru.New[string, *Config](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create component cache: %w", err)
	}
	return &Resolver{cache: cache}, nil
}

// Resolve loads the descriptor for the component at location. The name
// argument is a caller-provided override; when both it and the descriptor's
// name attribute are empty, the name defaults to the directory base name.
// A second resolve of the same location returns the cached Config without
// re-reading the file.
func (r *Resolver) Resolve(ctx context.Context, name, location string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)

	abs, err := filepath.Abs(location)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize component location %s: %w", location, err)
	}

	if cached, ok := r.cache.Get(abs); ok {
		logger.Debug("Component config served from cache.", "location", abs)
		return cached, nil
	}

	descriptorPath := filepath.Join(abs, DescriptorFileName)
	if _, err := os.Stat(descriptorPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", descriptorPath, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to stat component descriptor %s: %w", descriptorPath, err)
	}

	cfg, err := r.parseDescriptor(descriptorPath, abs)
	if err != nil {
		return nil, err
	}

	if name != "" {
		cfg.Name = name
	}
	if cfg.Name == "" {
		cfg.Name = filepath.Base(abs)
	}

	r.cache.Add(abs, cfg)
	logger.Debug("Component config resolved.", "component", cfg.Name, "location", abs, "enabled", cfg.Enabled)
	return cfg, nil
}

// parseDescriptor decodes one component.hcl file. The component root is
// exposed to expressions as the cty string variable `root`.
func (r *Resolver) parseDescriptor(path, rootLocation string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse component descriptor %s: %w", path, diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"root": cty.StringVal(rootLocation),
		},
	}

	var file schema.ComponentFile
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode component descriptor %s: %w", path, diags)
	}
	if file.Component == nil {
		return nil, fmt.Errorf("component descriptor %s declares no component block", path)
	}

	cfg := &Config{
		Name:         file.Component.Name,
		RootLocation: rootLocation,
		Enabled:      true,
	}
	if file.Component.Enabled != nil {
		cfg.Enabled = *file.Component.Enabled
	}
	for _, entry := range file.Component.Classpath {
		cfg.Classpath = append(cfg.Classpath, ClasspathInfo{
			Type:     entry.Type,
			Location: entry.Location,
		})
	}
	return cfg, nil
}
