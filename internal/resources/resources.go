// Package resources defines the resource-loading context installed at the end
// of component discovery. Later boot stages consult it to locate files
// contributed by discovered components.
package resources

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrResourceNotFound is returned when a name resolves through neither the
// discovered locations nor the fallback loader.
var ErrResourceNotFound = errors.New("resource not found")

// Context is the installed resource-loading context: the ordered resource
// locations assembled from all discovered components, plus a fallback for
// anything not found among them. It is write-once; nothing mutates it after
// construction and it lives for the process lifetime.
type Context struct {
	locations []string
	fallback  fs.FS
}

// NewContext builds a Context over the given ordered locations. A nil
// fallback defaults to the ambient filesystem rooted at the current working
// directory.
func NewContext(locations []string, fallback fs.FS) *Context {
	owned := make([]string, len(locations))
	copy(owned, locations)
	if fallback == nil {
		fallback = os.DirFS(".")
	}
	return &Context{locations: owned, fallback: fallback}
}

// Locations returns a copy of the installed resource locations in discovery
// order. Duplicates, if any, are preserved.
func (c *Context) Locations() []string {
	out := make([]string, len(c.locations))
	copy(out, c.locations)
	return out
}

// Resolve returns the full path of the first location that provides name,
// searching locations in discovery order and the fallback loader last.
func (c *Context) Resolve(name string) (string, error) {
	for _, loc := range c.locations {
		dir := strings.TrimSuffix(loc, "/*")
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	if _, err := fs.Stat(c.fallback, name); err == nil {
		return name, nil
	}
	return "", fmt.Errorf("%s: %w", name, ErrResourceNotFound)
}

// Open opens the resource called name, searching the same way Resolve does.
func (c *Context) Open(name string) (fs.File, error) {
	path, err := c.Resolve(name)
	if err != nil {
		return nil, err
	}
	if path == name {
		return c.fallback.Open(name)
	}
	return os.Open(path)
}
