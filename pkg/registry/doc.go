// Package registry holds the immutable action table: a mapping from action id
// to its ordered field descriptors. A Registry is built once (from the
// built-in table, from registry files, or both) and never mutated; lookups
// hand out clones so callers cannot alter shared descriptors.
package registry
