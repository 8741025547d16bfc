package container

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/vk/bootstack/internal/classpath"
	"github.com/vk/bootstack/internal/component"
	"github.com/vk/bootstack/internal/ctxlog"
	"github.com/vk/bootstack/internal/fsutil"
	"github.com/vk/bootstack/internal/loader"
	"github.com/vk/bootstack/internal/resources"
)

// RootLoadPath is the fixed location of the root load-order descriptor,
// relative to the application root.
const RootLoadPath = "config/component-load.hcl"

// ErrAlreadyInitialized is returned by Initialize when discovery has already
// been started on this container, successfully or not.
var ErrAlreadyInitialized = errors.New("components already loaded, cannot initialize again")

// Status is a snapshot of discovery bookkeeping: how many components loaded,
// were disabled, or were skipped because their descriptor could not be
// resolved.
type Status struct {
	Loaded   int
	Disabled int
	Skipped  int
}

// Container owns the discovery state: the once-only initialization flag, the
// aggregated resource locations, and the installed resource context.
type Container struct {
	root     string
	resolver *component.Resolver
	builder  *classpath.Builder

	started atomic.Bool
	ready   atomic.Bool

	aggregate []string
	status    Status
	installed *resources.Context
}

// New creates a Container rooted at the given application root directory.
func New(root string, resolver *component.Resolver, builder *classpath.Builder) *Container {
	return &Container{root: root, resolver: resolver, builder: builder}
}

// Initialize runs discovery exactly once and installs the resulting resource
// context. A second call, concurrent or sequential, fails immediately with
// ErrAlreadyInitialized and performs no work. A fatal error leaves nothing
// installed; the partial aggregate is not reusable.
func (c *Container) Initialize(ctx context.Context) (*resources.Context, error) {
	if !c.started.CompareAndSwap(false, true) {
		return nil, ErrAlreadyInitialized
	}
	logger := ctxlog.FromContext(ctx)

	rootDescriptor := filepath.Join(c.root, RootLoadPath)
	defs, err := loader.ParseFile(ctx, rootDescriptor, c.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read root load descriptor: %w", err)
	}

	for _, def := range defs {
		if err := c.loadFromDef(ctx, c.root, def); err != nil {
			return nil, err
		}
	}

	c.installed = resources.NewContext(c.aggregate, nil)
	c.ready.Store(true)
	logger.Info("All components loaded.",
		"loaded", c.status.Loaded,
		"disabled", c.status.Disabled,
		"skipped", c.status.Skipped,
		"resource_locations", len(c.aggregate))
	return c.installed, nil
}

// IsReady reports whether initialization has completed successfully. It is
// safe to call at any time.
func (c *Container) IsReady() bool {
	return c.ready.Load()
}

// Status returns the discovery bookkeeping counters. Meaningful once IsReady
// reports true; the counters are not written after initialization finishes.
func (c *Container) Status() Status {
	return c.status
}

// Shutdown is a no-op. The installed resource context lives for the process
// lifetime and is torn down implicitly at exit.
func (c *Container) Shutdown() error {
	return nil
}

// loadFromDef dispatches one load-order entry: directory entries recurse,
// single entries resolve and load one component. Relative locations are
// joined against the nearest known parent root.
func (c *Container) loadFromDef(ctx context.Context, parentPath string, def *loader.ComponentDef) error {
	location := def.Location
	if !filepath.IsAbs(location) {
		location = filepath.Join(parentPath, location)
	}

	switch def.Type {
	case loader.TypeDirectory:
		return c.loadDirectory(ctx, location)
	case loader.TypeSingle:
		if cfg := c.retrieveConfig(ctx, def.Name, location); cfg != nil {
			c.loadComponent(ctx, cfg)
		}
		return nil
	default:
		return fmt.Errorf("unknown component def type %v for %s", def.Type, location)
	}
}

// loadDirectory loads one component directory. A nested load descriptor, when
// present, fully controls the order; otherwise the directory falls back to
// alphabetical discovery.
func (c *Container) loadDirectory(ctx context.Context, dir string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Auto-loading component directory.", "dir", dir)

	if !fsutil.DirExists(dir) {
		logger.Error("Component directory not found.", "dir", dir)
		return nil
	}

	loadFile := filepath.Join(dir, loader.LoadFileName)
	if fsutil.FileExists(loadFile) {
		defs, err := loader.ParseFile(ctx, loadFile, dir)
		if err != nil {
			// Malformed nested descriptors skip the subtree, not the boot.
			logger.Error("Unable to load components from descriptor, directory skipped.",
				"path", loadFile, "error", err)
			return nil
		}
		for _, def := range defs {
			if err := c.loadFromDef(ctx, dir, def); err != nil {
				return err
			}
		}
		return nil
	}

	return c.loadDirectoryListing(ctx, dir)
}

// loadDirectoryListing performs alphabetical discovery: every immediate
// subdirectory holding a component descriptor is loaded as a single
// component, in case-sensitive codepoint order. Dot-prefixed directories are
// always excluded.
func (c *Container) loadDirectoryListing(ctx context.Context, dir string) error {
	names, err := fsutil.ListSubdirectories(dir)
	if err != nil {
		// The directory was structurally expected to yield components.
		return fmt.Errorf("cannot list component directory %s: %w", dir, err)
	}
	slices.Sort(names)

	for _, name := range names {
		if strings.HasPrefix(name, ".") {
			continue
		}
		location := filepath.Join(dir, name)
		if !fsutil.FileExists(filepath.Join(location, component.DescriptorFileName)) {
			continue
		}
		if cfg := c.retrieveConfig(ctx, "", location); cfg != nil {
			c.loadComponent(ctx, cfg)
		}
	}
	return nil
}

// retrieveConfig resolves one component, absorbing resolution failures:
// a missing or malformed descriptor is logged and the walk continues.
func (c *Container) retrieveConfig(ctx context.Context, name, location string) *component.Config {
	logger := ctxlog.FromContext(ctx)
	cfg, err := c.resolver.Resolve(ctx, name, location)
	if err != nil {
		logger.Error("Cannot load component.", "name", name, "location", location, "error", err)
		c.status.Skipped++
		return nil
	}
	return cfg
}

// loadComponent appends the classpath of an enabled component to the global
// aggregate. Disabled components contribute nothing and are not an error.
func (c *Container) loadComponent(ctx context.Context, cfg *component.Config) {
	logger := ctxlog.FromContext(ctx)
	if !cfg.Enabled {
		logger.Info("Not loading component because it is disabled.", "component", cfg.Name)
		c.status.Disabled++
		return
	}
	cp := c.builder.Build(ctx, cfg)
	c.aggregate = append(c.aggregate, cp.Locations()...)
	c.status.Loaded++
	logger.Info("Added classpath for component.", "component", cfg.Name, "entries", cp.Len())
}
