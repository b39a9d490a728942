//go:build windows

package product

const exeSuffix = ".exe"
