// Package utils contains general helper functions used across the skel tool.
package utils

import (
	"path/filepath"
	"strings"
)

const pathSegmentSeparator = "/"

const (
	// ConfigFileName is the configuration file looked up in the working directory.
	ConfigFileName = ".skel.yaml"
	// GlobalConfigDirectoryName is the per-user configuration directory under $HOME.
	GlobalConfigDirectoryName = ".skel"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// NormalizePathSeparators converts a path to forward-slash form regardless of
// the host separator. Output paths always use forward slashes.
func NormalizePathSeparators(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), "\\", pathSegmentSeparator)
}

// RelativePathOrSelf calculates the relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// SplitPathSegments splits a forward-slash normalized path into its segments.
// An empty path yields no segments.
func SplitPathSegments(path string) []string {
	normalized := strings.Trim(NormalizePathSeparators(path), pathSegmentSeparator)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, pathSegmentSeparator)
}
