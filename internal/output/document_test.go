package output_test

import (
	"strings"
	"testing"

	"github.com/temirov/skel/internal/output"
	"github.com/temirov/skel/internal/types"
)

func buildWalkResult() *types.WalkResult {
	return &types.WalkResult{
		FullFiles: []types.FileEntry{
			{
				RelativePath: "README.md",
				SizeBytes:    12,
				Extension:    ".md",
				Treatment:    types.TreatmentFull,
				Content:      "# demo\n",
				Tokens:       3,
			},
		},
		SkeletonFiles: []types.FileEntry{
			{
				RelativePath: "src/app.py",
				Treatment:    types.TreatmentSkeleton,
				Content:      "def main():\n    # [Implementation hidden]",
				LineCount:    40,
				Tokens:       9,
				Imports:      []string{"os", "sys"},
			},
		},
		ExcludedDirs: []types.ExcludedDirectory{{Path: "node_modules", FileCount: 120}},
		Stats: types.WalkStats{
			FilesProcessed: 2,
			FullContent:    1,
			Skeleton:       1,
			Excluded:       120,
			TotalTokens:    12,
		},
	}
}

func TestRenderDocumentSections(testInstance *testing.T) {
	document := output.RenderDocument(
		types.ValidatedRoot{AbsolutePath: "/tmp/demo", Name: "demo"},
		types.ProjectInfo{Type: "python", Language: "python", EntryPoints: []string{"src/app.py"}},
		"demo/\n└── src/",
		buildWalkResult(),
		output.Options{Mode: types.ModeSkeleton, ShowExcluded: true},
	)

	expectedFragments := []string{
		"<codebase project='demo'>",
		"<metadata>",
		"<project type='python' language='python'>",
		"  <entry>src/app.py</entry>",
		"<tree>\ndemo/\n└── src/\n</tree>",
		"Files processed: 2",
		"Tree-sitter: disabled (using fallback)",
		"<full-content>",
		"<file path='README.md' size='12' ext='.md' tokens='3'>",
		"<skeleton>",
		"<file path='src/app.py' loc='40' tokens='9'>",
		"    # [Implementation hidden]\n</file>",
		"<excluded>",
		"<directory path='node_modules' files='120'/>",
		"<total-tokens>12</total-tokens>",
		"</codebase>",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(document, fragment) {
			testInstance.Fatalf("document missing fragment %q\n%s", fragment, document)
		}
	}
}

func TestRenderDocumentOverviewOmitsFullContent(testInstance *testing.T) {
	document := output.RenderDocument(
		types.ValidatedRoot{Name: "demo"},
		types.ProjectInfo{Type: "unknown", Language: "unknown"},
		"demo/",
		buildWalkResult(),
		output.Options{Mode: types.ModeOverview},
	)
	if strings.Contains(document, "<full-content>") {
		testInstance.Fatalf("overview mode must not include the full-content section")
	}
	if !strings.Contains(document, "<skeleton>") {
		testInstance.Fatalf("overview mode must keep the skeleton section")
	}
	if strings.Contains(document, "<excluded>") {
		testInstance.Fatalf("excluded section must be opt-in")
	}
}

func TestRenderDocumentEscapesAttributeQuotes(testInstance *testing.T) {
	walkResult := &types.WalkResult{
		FullFiles: []types.FileEntry{{
			RelativePath: `it's "quoted".md`,
			Extension:    ".md",
			Content:      "body\n",
		}},
	}
	document := output.RenderDocument(
		types.ValidatedRoot{Name: "o'brien"},
		types.ProjectInfo{Type: "unknown", Language: "unknown"},
		"",
		walkResult,
		output.Options{Mode: types.ModeCustom},
	)
	if !strings.Contains(document, "<codebase project='o&apos;brien'>") {
		testInstance.Fatalf("project attribute not escaped:\n%s", document)
	}
	if !strings.Contains(document, "path='it&apos;s &quot;quoted&quot;.md'") {
		testInstance.Fatalf("path attribute not escaped:\n%s", document)
	}
}

func TestRenderDocumentImportAttributeCap(testInstance *testing.T) {
	walkResult := &types.WalkResult{
		FullFiles: []types.FileEntry{{
			RelativePath: "main.py",
			Extension:    ".py",
			Content:      "pass\n",
			Imports:      []string{"a", "b", "c", "d", "e", "f", "g"},
		}},
	}
	document := output.RenderDocument(
		types.ValidatedRoot{Name: "demo"},
		types.ProjectInfo{Type: "python", Language: "python"},
		"",
		walkResult,
		output.Options{Mode: types.ModeCustom, ShowImports: true},
	)
	if !strings.Contains(document, "imports='a,b,c,d,e'") {
		testInstance.Fatalf("import attribute not capped at five entries:\n%s", document)
	}
}

func TestRenderDocumentErrorEntries(testInstance *testing.T) {
	walkResult := &types.WalkResult{
		ErroredFiles: []types.FileEntry{{RelativePath: "data.bin", ErrorMarker: "encoding_failed"}},
	}
	document := output.RenderDocument(
		types.ValidatedRoot{Name: "demo"},
		types.ProjectInfo{Type: "unknown", Language: "unknown"},
		"",
		walkResult,
		output.Options{Mode: types.ModeSkeleton},
	)
	if !strings.Contains(document, "<file path='data.bin' error='encoding_failed'></file>") {
		testInstance.Fatalf("error entry missing:\n%s", document)
	}
}
