// Package stacktrace trims goroutine dumps down to this module's frames.
package stacktrace

import "strings"

// InternalPaths returns the "internal/...go:line" locations found in a raw
// debug.Stack dump, in call order.
func InternalPaths(stack []byte) []string {
	var paths []string
	for line := range strings.Lines(string(stack)) {
		_, rel, ok := strings.Cut(strings.TrimSpace(line), "/internal/")
		if !ok || !strings.Contains(rel, ".go:") {
			continue
		}

		if sp := strings.IndexByte(rel, ' '); sp != -1 {
			rel = rel[:sp]
		}
		paths = append(paths, "internal/"+rel)
	}
	return paths
}
