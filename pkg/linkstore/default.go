//go:build !windows

package linkstore

import "github.com/lumenworks/installkit/pkg/types"

// Default returns the link store for the running platform.
func Default(fsys types.FS) types.LinkStore {
	return New(fsys)
}
