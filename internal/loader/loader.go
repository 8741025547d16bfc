// Package loader parses load-order descriptors: the ordered lists of
// component and directory references that control discovery order. The same
// parser serves the root descriptor and any nested per-directory descriptor;
// the caller decides how severe a parse failure is.
package loader

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/bootstack/internal/ctxlog"
	"github.com/vk/bootstack/internal/schema"
)

// LoadFileName is the fixed name of a load-order descriptor file.
const LoadFileName = "component-load.hcl"

// ComponentType distinguishes a directory group reference from a single
// component reference.
type ComponentType int

const (
	// TypeDirectory marks an entry whose location is a directory of components.
	TypeDirectory ComponentType = iota
	// TypeSingle marks an entry referencing one component.
	TypeSingle
)

// String returns the descriptor spelling of the type.
func (t ComponentType) String() string {
	switch t {
	case TypeDirectory:
		return "directory"
	case TypeSingle:
		return "single"
	default:
		return "unknown"
	}
}

// ComponentDef is one parsed load-order entry. Defs are immutable and keep
// the declaration order of their source descriptor.
type ComponentDef struct {
	Name     string
	Location string
	Type     ComponentType
}

// ParseFile reads and decodes the load-order descriptor at path. The root
// argument is exposed to location expressions as the cty string variable
// `root`, so descriptors can write locations like "${root}/hot-deploy".
func ParseFile(ctx context.Context, path string, root string) ([]*ComponentDef, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse load descriptor %s: %w", path, diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"root": cty.StringVal(root),
		},
	}

	var loadFile schema.LoadFile
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &loadFile)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode load descriptor %s: %w", path, diags)
	}

	defs := make([]*ComponentDef, 0, len(loadFile.Entries))
	for _, entry := range loadFile.Entries {
		def := &ComponentDef{Name: entry.Name, Location: entry.Location}
		switch entry.Type {
		case "directory":
			def.Type = TypeDirectory
		case "single":
			def.Type = TypeSingle
		default:
			return nil, fmt.Errorf("unsupported loader type %q in %s", entry.Type, path)
		}
		defs = append(defs, def)
	}

	logger.Debug("Load descriptor parsed.", "path", path, "entries", len(defs))
	return defs, nil
}
