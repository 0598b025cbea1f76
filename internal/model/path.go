package model

import (
	"fmt"
	"strings"
)

// PathSeparator separates menu levels in a dotted path ("Games.Arcade").
const PathSeparator = "."

// SplitPath splits a dotted path at its last separator into the parent path
// and the leaf name. The root path "" has no parent and an empty leaf.
func SplitPath(path string) (parent, leaf string) {
	i := strings.LastIndex(path, PathSeparator)
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+len(PathSeparator):]
}

// JoinPath joins a parent path and a leaf name.
func JoinPath(parent, leaf string) string {
	if parent == "" {
		return leaf
	}
	return parent + PathSeparator + leaf
}

// Leaf returns the last segment of a dotted path.
func Leaf(path string) string {
	_, leaf := SplitPath(path)
	return leaf
}

// ValidatePath reports an error when a non-empty dotted path contains an
// empty segment, e.g. "Games..Pacman", ".Games" or "Games.".
func ValidatePath(path string) error {
	if path == "" {
		return nil
	}
	for i, seg := range strings.Split(path, PathSeparator) {
		if strings.TrimSpace(seg) == "" {
			return fmt.Errorf("dotted path %q has an empty segment at position %d", path, i+1)
		}
	}
	return nil
}
