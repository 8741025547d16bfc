// Package classpath turns the classpath declarations of one component into a
// concrete ordered list of resource locations.
package classpath

import (
	"context"
	"os"
	"strings"

	"github.com/vk/bootstack/internal/component"
	"github.com/vk/bootstack/internal/ctxlog"
	"github.com/vk/bootstack/internal/fsutil"
)

// wildcardSuffix marks a location whose directory content should be expanded.
const wildcardSuffix = "/*"

// Classpath is the ordered list of resource locations contributed by a single
// component. It is built once and never mutated afterwards; entries are not
// deduplicated.
type Classpath struct {
	locations []string
}

// Locations returns a copy of the resource locations in contribution order.
func (c *Classpath) Locations() []string {
	out := make([]string, len(c.locations))
	copy(out, c.locations)
	return out
}

// Len returns the number of resource locations.
func (c *Classpath) Len() int {
	return len(c.locations)
}

// Builder constructs Classpath values from resolved component configs.
type Builder struct{}

// NewBuilder creates a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build walks the classpath declarations of cfg in declaration order and
// resolves each into zero or more resource locations. Entries with an
// unsupported type or a nonexistent target are skipped with a warning; the
// remaining entries still contribute.
func (b *Builder) Build(ctx context.Context, cfg *component.Config) *Classpath {
	logger := ctxlog.FromContext(ctx)

	configRoot := strings.ReplaceAll(cfg.RootLocation, `\`, "/")
	if !strings.HasSuffix(configRoot, "/") {
		configRoot += "/"
	}

	cp := &Classpath{}
	for _, info := range cfg.Classpath {
		location := strings.ReplaceAll(info.Location, `\`, "/")

		if info.Type != "jar" && info.Type != "dir" {
			logger.Warn("Classpath type is not supported, entry not loaded.",
				"component", cfg.Name, "type", info.Type, "location", location)
			continue
		}

		location = strings.TrimPrefix(location, "/")
		dirLoc := strings.TrimSuffix(location, wildcardSuffix)

		target, err := os.Stat(configRoot + dirLoc)
		if err != nil {
			logger.Warn("Classpath location does not exist, entry not loaded.",
				"component", cfg.Name, "location", configRoot+dirLoc)
			continue
		}

		// The original, un-stripped location is always contributed as one
		// resource location, wildcard suffix included.
		cp.locations = append(cp.locations, configRoot+location)

		if info.Type == "dir" && target.IsDir() {
			files, err := fsutil.WalkRegularFiles(configRoot + dirLoc)
			if err != nil {
				logger.Warn("Failed to expand classpath directory, partial entry.",
					"component", cfg.Name, "location", configRoot+dirLoc, "error", err)
				continue
			}
			cp.locations = append(cp.locations, files...)
		}
	}
	return cp
}
