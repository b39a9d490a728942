// Package classify decides whether an arbitrary path belongs to a
// recognized install tree, and to which one.
//
// Classification is containment only: a path belongs to a root when,
// after normalization, the root's directory components are a prefix of
// the path's components. Whole components are compared, never raw string
// prefixes, so "Lumen" never captures paths under "Lumen Canary". When
// nested roots are configured the longest match wins; with disjoint
// roots (the invariant installs maintain) at most one root can match.
package classify

import (
	"strings"

	"github.com/lumenworks/installkit/pkg/types"
)

// Components normalizes a path into comparable components: separators
// unified, "." and ".." segments resolved, empty segments dropped.
// Comparison between components is case-insensitive, matching the
// filesystem semantics shortcuts live on.
func Components(path string) []string {
	unified := strings.ReplaceAll(path, `\`, "/")
	var out []string
	for _, seg := range strings.Split(unified, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if n := len(out); n > 0 {
				out = out[:n-1]
			}
		default:
			out = append(out, seg)
		}
	}
	return out
}

// contains reports whether base's components are a leading prefix of
// path's components.
func contains(base, path []string) bool {
	if len(base) == 0 || len(base) > len(path) {
		return false
	}
	for i, comp := range base {
		if !strings.EqualFold(comp, path[i]) {
			return false
		}
	}
	return true
}

// Classify returns the install root the path belongs to, or nil when the
// path is foreign. A root's own staging subdirectory is inside the
// root's subtree and therefore classifies to that root; no special case
// is needed.
func Classify(path string, roots []types.InstallRoot) *types.InstallRoot {
	if path == "" {
		return nil
	}
	pathComps := Components(path)

	var best *types.InstallRoot
	bestLen := -1
	for i := range roots {
		baseComps := Components(roots[i].BaseDir)
		if !contains(baseComps, pathComps) {
			continue
		}
		if len(baseComps) > bestLen {
			best = &roots[i]
			bestLen = len(baseComps)
		}
	}
	return best
}
