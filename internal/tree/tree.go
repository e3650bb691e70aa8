// Package tree renders a directory listing as an ASCII tree. The listing
// honors the same path filter as the traversal so that the tree and the file
// sections of the document never disagree about visibility.
package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/skel/internal/filter"
	"github.com/temirov/skel/internal/utils"
)

// maximumRenderDepth caps tree recursion; deeper levels add noise, not signal.
const maximumRenderDepth = 5

// Render returns an ASCII tree of rootPath. Directories sort before files,
// both lexicographically. Unreadable directories are silently truncated.
func Render(rootPath string, pathFilter *filter.Filter) string {
	lines := []string{filepath.Base(rootPath) + "/"}
	renderDirectory(rootPath, rootPath, pathFilter, "", 0, &lines)
	return strings.Join(lines, "\n")
}

func renderDirectory(rootPath string, directoryPath string, pathFilter *filter.Filter, prefix string, depth int, lines *[]string) {
	if depth >= maximumRenderDepth {
		return
	}
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return
	}

	var visibleEntries []os.DirEntry
	for _, directoryEntry := range directoryEntries {
		relativePath := utils.RelativePathOrSelf(filepath.Join(directoryPath, directoryEntry.Name()), rootPath)
		if pathFilter.Decide(relativePath) == filter.DecisionSkip {
			continue
		}
		visibleEntries = append(visibleEntries, directoryEntry)
	}
	sort.Slice(visibleEntries, func(left, right int) bool {
		if visibleEntries[left].IsDir() != visibleEntries[right].IsDir() {
			return visibleEntries[left].IsDir()
		}
		return visibleEntries[left].Name() < visibleEntries[right].Name()
	})

	for entryIndex, directoryEntry := range visibleEntries {
		isLastEntry := entryIndex == len(visibleEntries)-1
		connector := "├── "
		childPrefix := prefix + "│   "
		if isLastEntry {
			connector = "└── "
			childPrefix = prefix + "    "
		}
		if directoryEntry.IsDir() {
			*lines = append(*lines, prefix+connector+directoryEntry.Name()+"/")
			renderDirectory(rootPath, filepath.Join(directoryPath, directoryEntry.Name()), pathFilter, childPrefix, depth+1, lines)
		} else {
			*lines = append(*lines, prefix+connector+directoryEntry.Name())
		}
	}
}
