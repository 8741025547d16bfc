// Package container drives component discovery. It walks the root load-order
// descriptor, recurses into component directories (descriptor-driven where a
// nested descriptor exists, alphabetical otherwise), resolves each component,
// aggregates their classpaths in encounter order, and installs the result as
// the process-wide resource-loading context exactly once.
//
// The container must run before any other boot stage so that those stages can
// find resources contributed by discovered components. A single bad component
// is logged and skipped; only root-descriptor corruption or an unlistable
// directory aborts initialization.
package container
