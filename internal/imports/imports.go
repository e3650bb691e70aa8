// Package imports performs a best-effort regex scan for module imports.
// The result is an order-preserving list of module-name strings; duplicates
// are allowed and no resolution is attempted.
package imports

import (
	"regexp"
	"strings"
)

// languagePatterns maps a file extension to its compiled import patterns.
// The table is constant after initialization.
var languagePatterns = map[string][]*regexp.Regexp{
	".py": {
		regexp.MustCompile(`(?m)^import\s+([a-zA-Z_][a-zA-Z0-9_]*(?:\.[a-zA-Z_][a-zA-Z0-9_]*)*)`),
		regexp.MustCompile(`(?m)^from\s+([a-zA-Z_][a-zA-Z0-9_]*(?:\.[a-zA-Z_][a-zA-Z0-9_]*)*)\s+import`),
	},
	".js": scriptPatterns,
	".jsx": scriptPatterns,
	".ts": scriptPatterns,
	".tsx": scriptPatterns,
	".mjs": scriptPatterns,
	".cjs": scriptPatterns,
	".go": {
		regexp.MustCompile(`(?m)^\s*import\s+"([^"]+)"`),
		regexp.MustCompile(`(?m)^\s*"([^"]+)"$`),
	},
}

var scriptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^import.*from\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`(?m)^const.*=\s*require\(['"]([^'"]+)['"]\)`),
}

// Extract returns the module names imported by content, keyed off the file
// extension. Unrecognized extensions yield an empty list.
func Extract(content string, extension string) []string {
	patterns, isSupported := languagePatterns[strings.ToLower(extension)]
	if !isSupported {
		return nil
	}
	var moduleNames []string
	for _, pattern := range patterns {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			if len(match) > 1 {
				moduleNames = append(moduleNames, match[1])
			}
		}
	}
	return moduleNames
}
