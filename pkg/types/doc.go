// Package types defines the core data model of installkit: install
// levels, shortcut locations and operations, shortcut properties,
// recognized install roots, and the interfaces (FS, LinkStore,
// DirResolver) through which the engine touches the outside world.
//
// Keeping the interfaces here lets every other package depend on types
// alone, so implementations (real filesystem, in-memory test store) can
// be swapped without import cycles.
package types
