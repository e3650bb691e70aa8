package skeleton_test

import (
	"strings"
	"testing"

	"github.com/temirov/skel/internal/skeleton"
)

const fileTrailerMarker = "# [Rest of file hidden]"

// extractWithHeuristic runs extraction with an empty grammar registry, which
// routes every language to the heuristic scanner.
func extractWithHeuristic(t *testing.T, content string, language skeleton.Language) string {
	t.Helper()
	return skeleton.NewExtractor(nil).Extract(content, language)
}

func TestHeuristicFunctionWithDocstring(t *testing.T) {
	content := "def f():\n    \"\"\"doc\"\"\"\n    return 1\n"
	extracted := extractWithHeuristic(t, content, skeleton.LanguagePython)

	expectedLines := []string{"def f():", "    \"\"\"doc\"\"\"", "    # [Implementation hidden]"}
	for _, expectedLine := range expectedLines {
		if !strings.Contains(extracted, expectedLine) {
			t.Fatalf("expected %q in output:\n%s", expectedLine, extracted)
		}
	}
	if strings.Contains(extracted, "return 1") {
		t.Fatalf("body statement leaked into skeleton:\n%s", extracted)
	}
}

func TestHeuristicMultiLineDocstring(t *testing.T) {
	content := strings.Join([]string{
		"def g():",
		"    \"\"\"",
		"    Summary line.",
		"    \"\"\"",
		"    x = compute()",
		"    return x",
	}, "\n")
	extracted := extractWithHeuristic(t, content, skeleton.LanguagePython)

	if !strings.Contains(extracted, "Summary line.") {
		t.Fatalf("docstring body missing:\n%s", extracted)
	}
	if strings.Contains(extracted, "compute()") {
		t.Fatalf("implementation leaked:\n%s", extracted)
	}
}

func TestHeuristicClassWithMethods(t *testing.T) {
	content := strings.Join([]string{
		"import os",
		"",
		"class Greeter:",
		"    \"\"\"Says hello.\"\"\"",
		"    def greet(self, name):",
		"        \"\"\"Greet a person.\"\"\"",
		"        return 'hi ' + name",
		"",
		"    def silent(self):",
		"        pass",
	}, "\n")
	extracted := extractWithHeuristic(t, content, skeleton.LanguagePython)

	for _, expectedLine := range []string{
		"import os",
		"class Greeter:",
		"    \"\"\"Says hello.\"\"\"",
		"    def greet(self, name):",
		"        \"\"\"Greet a person.\"\"\"",
		"    def silent(self):",
	} {
		if !strings.Contains(extracted, expectedLine) {
			t.Fatalf("expected %q in output:\n%s", expectedLine, extracted)
		}
	}
	if strings.Contains(extracted, "return 'hi ' + name") {
		t.Fatalf("method body leaked:\n%s", extracted)
	}
}

func TestHeuristicImportLinesAlwaysEmitted(t *testing.T) {
	content := strings.Join([]string{
		"def setup():",
		"    prepare()",
		"    cleanup()",
		"import late_module",
		"def teardown():",
		"    pass",
	}, "\n")
	extracted := extractWithHeuristic(t, content, skeleton.LanguagePython)

	if !strings.Contains(extracted, "import late_module") {
		t.Fatalf("import inside skipped region must still be emitted:\n%s", extracted)
	}
	if !strings.Contains(extracted, "def teardown():") {
		t.Fatalf("skip state must end at the next definition:\n%s", extracted)
	}
	if strings.Contains(extracted, "prepare()") {
		t.Fatalf("body line leaked:\n%s", extracted)
	}
}

func TestHeuristicBraceLanguagesTruncateSignatures(t *testing.T) {
	content := strings.Join([]string{
		"const version = 3;",
		"function add(left, right) {",
		"    return left + right;",
		"}",
	}, "\n")
	extracted := extractWithHeuristic(t, content, skeleton.LanguageJavaScript)

	if !strings.Contains(extracted, "function add(left, right)") {
		t.Fatalf("expected truncated signature:\n%s", extracted)
	}
	if strings.Contains(extracted, "return left + right") {
		t.Fatalf("body leaked:\n%s", extracted)
	}
	if !strings.Contains(extracted, "const version = 3;") {
		t.Fatalf("module-scope declaration must be kept:\n%s", extracted)
	}
}

func TestHeuristicEmptyFileYieldsSingleMarker(t *testing.T) {
	if extracted := extractWithHeuristic(t, "", skeleton.LanguagePython); extracted != fileTrailerMarker {
		t.Fatalf("empty file must reduce to a bare marker, got %q", extracted)
	}
}

func TestHeuristicUnrecognizedContentKeepsFirstFiveLines(t *testing.T) {
	content := "alpha\nbravo\ncharlie\ndelta\necho\nfoxtrot\ngolf"
	extracted := extractWithHeuristic(t, content, skeleton.LanguageUnknown)

	if !strings.HasPrefix(extracted, "alpha\nbravo\ncharlie\ndelta\necho") {
		t.Fatalf("expected first five lines, got:\n%s", extracted)
	}
	if strings.Contains(extracted, "foxtrot") {
		t.Fatalf("sixth line must be dropped:\n%s", extracted)
	}
	if !strings.Contains(extracted, fileTrailerMarker) {
		t.Fatalf("marker missing:\n%s", extracted)
	}
}

func TestHeuristicOutputPreservesLineOrder(t *testing.T) {
	content := strings.Join([]string{
		"import a",
		"def first():",
		"    pass",
		"def second():",
		"    pass",
	}, "\n")
	extracted := extractWithHeuristic(t, content, skeleton.LanguagePython)

	firstIndex := strings.Index(extracted, "def first():")
	secondIndex := strings.Index(extracted, "def second():")
	importIndex := strings.Index(extracted, "import a")
	if importIndex == -1 || firstIndex == -1 || secondIndex == -1 {
		t.Fatalf("missing fragments:\n%s", extracted)
	}
	if !(importIndex < firstIndex && firstIndex < secondIndex) {
		t.Fatalf("fragments reordered:\n%s", extracted)
	}
}
