// Package filesystem provides filesystem implementations for installkit.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and an afero-backed one used by
// tests to run the whole engine in memory.
package filesystem
