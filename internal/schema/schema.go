package schema

// --- Load-Order Descriptor Structures ---

// LoadEntry is a single ordered entry in a load-order descriptor. The block
// label selects the loader type ("directory" or "single").
type LoadEntry struct {
	Type     string `hcl:"type,label"`
	Name     string `hcl:"name,optional"`
	Location string `hcl:"location"`
}

// LoadFile represents the top-level structure of a component-load.hcl file.
// The declared order of the load blocks is significant and drives discovery.
type LoadFile struct {
	Entries []*LoadEntry `hcl:"load,block"`
}

// --- Component Descriptor Structures ---

// ClasspathEntry declares one classpath contribution of a component. The
// block label carries the entry type; validation of supported types happens
// when the classpath is built, not at decode time.
type ClasspathEntry struct {
	Type     string `hcl:"type,label"`
	Location string `hcl:"location"`
}

// ComponentBlock is the body of the `component` block in a component.hcl
// descriptor. Enabled is a pointer so that an absent attribute can be told
// apart from an explicit false.
type ComponentBlock struct {
	Name      string            `hcl:"name,optional"`
	Enabled   *bool             `hcl:"enabled,optional"`
	Classpath []*ClasspathEntry `hcl:"classpath,block"`
}

// ComponentFile represents the top-level structure of a component.hcl file.
type ComponentFile struct {
	Component *ComponentBlock `hcl:"component,block"`
}
