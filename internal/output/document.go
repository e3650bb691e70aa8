// Package output assembles the final structured document. The format is
// XML-flavored: every emitted entry has balanced open and close tags and
// escaped attribute values, but file bodies are embedded verbatim, so the
// document as a whole is not guaranteed to be well-formed XML.
package output

import (
	"fmt"
	"strings"

	"github.com/temirov/skel/internal/types"
)

// attributeEscaper rewrites the quote characters that would break an
// attribute value. Nothing else is escaped.
var attributeEscaper = strings.NewReplacer("'", "&apos;", `"`, "&quot;")

// maximumImportAttributes caps how many scanned imports are attached to one
// file entry.
const maximumImportAttributes = 5

// Options controls which sections the document includes.
type Options struct {
	Mode         string
	ShowExcluded bool
	ShowImports  bool
}

// RenderDocument serializes a walk result into the structured document.
func RenderDocument(root types.ValidatedRoot, projectInfo types.ProjectInfo, treeListing string, walkResult *types.WalkResult, options Options) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "<codebase project='%s'>\n", attributeEscaper.Replace(root.Name))
	builder.WriteString("\n<metadata>\n")
	writeProjectHeader(&builder, projectInfo)
	builder.WriteString("<tree>\n")
	builder.WriteString(treeListing)
	builder.WriteString("\n</tree>\n\n")
	writeStats(&builder, walkResult)
	builder.WriteString("</metadata>\n")

	if len(walkResult.ErroredFiles) > 0 {
		builder.WriteString("\n")
		for _, erroredFile := range walkResult.ErroredFiles {
			fmt.Fprintf(&builder, "<file path='%s' error='%s'></file>\n",
				attributeEscaper.Replace(erroredFile.RelativePath), erroredFile.ErrorMarker)
		}
	}

	if len(walkResult.FullFiles) > 0 && options.Mode != types.ModeOverview {
		builder.WriteString("\n<full-content>\n")
		for _, fullFile := range walkResult.FullFiles {
			writeFullEntry(&builder, fullFile, options.ShowImports)
		}
		builder.WriteString("</full-content>\n")
	}

	if len(walkResult.SkeletonFiles) > 0 {
		builder.WriteString("\n<skeleton>\n")
		for _, skeletonFile := range walkResult.SkeletonFiles {
			writeSkeletonEntry(&builder, skeletonFile)
		}
		builder.WriteString("</skeleton>\n")
	}

	if options.ShowExcluded && len(walkResult.ExcludedDirs) > 0 {
		builder.WriteString("\n<excluded>\n")
		for _, excludedDirectory := range walkResult.ExcludedDirs {
			fmt.Fprintf(&builder, "<directory path='%s' files='%d'/>\n",
				attributeEscaper.Replace(excludedDirectory.Path), excludedDirectory.FileCount)
		}
		builder.WriteString("</excluded>\n")
	}

	fmt.Fprintf(&builder, "\n<total-tokens>%d</total-tokens>\n", walkResult.Stats.TotalTokens)
	builder.WriteString("</codebase>\n")
	return builder.String()
}

func writeProjectHeader(builder *strings.Builder, projectInfo types.ProjectInfo) {
	fmt.Fprintf(builder, "<project type='%s' language='%s'", projectInfo.Type, projectInfo.Language)
	if projectInfo.ModulePath != "" {
		fmt.Fprintf(builder, " module='%s'", attributeEscaper.Replace(projectInfo.ModulePath))
	}
	builder.WriteString(">\n")
	writePathList(builder, "entry_points", "entry", projectInfo.EntryPoints)
	writePathList(builder, "dependencies", "dep", projectInfo.DependencyFiles)
	writePathList(builder, "test_dirs", "dir", projectInfo.TestDirectories)
	builder.WriteString("</project>\n")
}

func writePathList(builder *strings.Builder, sectionTag string, entryTag string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(builder, "<%s>\n", sectionTag)
	for _, listedPath := range paths {
		fmt.Fprintf(builder, "  <%s>%s</%s>\n", entryTag, listedPath, entryTag)
	}
	fmt.Fprintf(builder, "</%s>\n", sectionTag)
}

func writeStats(builder *strings.Builder, walkResult *types.WalkResult) {
	builder.WriteString("<stats>\n")
	fmt.Fprintf(builder, "Files processed: %d\n", walkResult.Stats.FilesProcessed)
	fmt.Fprintf(builder, "Full content: %d files\n", walkResult.Stats.FullContent)
	fmt.Fprintf(builder, "Skeleton: %d files\n", walkResult.Stats.Skeleton)
	fmt.Fprintf(builder, "Excluded: %d files\n", walkResult.Stats.Excluded)
	if walkResult.GrammarActive {
		builder.WriteString("Tree-sitter: enabled\n")
	} else {
		builder.WriteString("Tree-sitter: disabled (using fallback)\n")
	}
	builder.WriteString("</stats>\n")
}

func writeFullEntry(builder *strings.Builder, fileEntry types.FileEntry, showImports bool) {
	fmt.Fprintf(builder, "\n<file path='%s' size='%d' ext='%s' tokens='%d'",
		attributeEscaper.Replace(fileEntry.RelativePath), fileEntry.SizeBytes,
		attributeEscaper.Replace(fileEntry.Extension), fileEntry.Tokens)
	if showImports && len(fileEntry.Imports) > 0 {
		importNames := fileEntry.Imports
		if len(importNames) > maximumImportAttributes {
			importNames = importNames[:maximumImportAttributes]
		}
		escapedNames := make([]string, 0, len(importNames))
		for _, importName := range importNames {
			escapedNames = append(escapedNames, attributeEscaper.Replace(importName))
		}
		fmt.Fprintf(builder, " imports='%s'", strings.Join(escapedNames, ","))
	}
	builder.WriteString(">\n")
	builder.WriteString(fileEntry.Content)
	if !strings.HasSuffix(fileEntry.Content, "\n") {
		builder.WriteString("\n")
	}
	builder.WriteString("</file>\n")
}

func writeSkeletonEntry(builder *strings.Builder, fileEntry types.FileEntry) {
	fmt.Fprintf(builder, "\n<file path='%s' loc='%d' tokens='%d'>\n",
		attributeEscaper.Replace(fileEntry.RelativePath), fileEntry.LineCount, fileEntry.Tokens)
	builder.WriteString(fileEntry.Content)
	if !strings.HasSuffix(fileEntry.Content, "\n") {
		builder.WriteString("\n")
	}
	builder.WriteString("</file>\n")
}
