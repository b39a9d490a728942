//go:build !windows

package product

// exeSuffix is empty everywhere but Windows.
const exeSuffix = ""
