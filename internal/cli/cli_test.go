package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScanFixture(t *testing.T) string {
	t.Helper()
	rootPath := t.TempDir()
	fixtures := map[string]string{
		"README.md":  "# fixture\n",
		"src/app.py": "import os\n\ndef main():\n    return os.getcwd()\n",
	}
	for relativePath, contents := range fixtures {
		fullPath := filepath.Join(rootPath, filepath.FromSlash(relativePath))
		if mkdirError := os.MkdirAll(filepath.Dir(fullPath), 0o755); mkdirError != nil {
			t.Fatalf("mkdir for %s: %v", relativePath, mkdirError)
		}
		if writeError := os.WriteFile(fullPath, []byte(contents), 0o644); writeError != nil {
			t.Fatalf("write %s: %v", relativePath, writeError)
		}
	}
	return rootPath
}

func executeCommand(t *testing.T, arguments ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	rootCommand := createRootCommand()
	var outputBuffer bytes.Buffer
	rootCommand.SetOut(&outputBuffer)
	rootCommand.SetErr(&outputBuffer)
	rootCommand.SetArgs(arguments)
	executionError := rootCommand.Execute()
	return outputBuffer.String(), executionError
}

func TestScanCommandRendersDocument(t *testing.T) {
	rootPath := writeScanFixture(t)

	renderedOutput, executionError := executeCommand(t, "scan", rootPath)
	if executionError != nil {
		t.Fatalf("scan failed: %v", executionError)
	}

	expectedFragments := []string{
		"<codebase project='" + filepath.Base(rootPath) + "'>",
		"<full-content>",
		"<skeleton>",
		"def main():",
		"<total-tokens>",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(renderedOutput, fragment) {
			t.Fatalf("document missing fragment %q\n%s", fragment, renderedOutput)
		}
	}
	if strings.Contains(renderedOutput, "return os.getcwd()") {
		t.Fatalf("skeleton entry leaked a body line:\n%s", renderedOutput)
	}
}

func TestScanCommandRejectsInvalidMode(t *testing.T) {
	rootPath := writeScanFixture(t)

	_, executionError := executeCommand(t, "scan", "--mode", "verbose", rootPath)
	if executionError == nil || !strings.Contains(executionError.Error(), "invalid mode") {
		t.Fatalf("expected invalid mode error, got %v", executionError)
	}
}

func TestScanCommandRejectsInvalidSort(t *testing.T) {
	rootPath := writeScanFixture(t)

	_, executionError := executeCommand(t, "scan", "--sort", "size", rootPath)
	if executionError == nil || !strings.Contains(executionError.Error(), "invalid sort") {
		t.Fatalf("expected invalid sort error, got %v", executionError)
	}
}

func TestScanCommandWritesOutputFile(t *testing.T) {
	rootPath := writeScanFixture(t)
	outputPath := filepath.Join(t.TempDir(), "context.xml")

	renderedOutput, executionError := executeCommand(t, "scan", "--output", outputPath, rootPath)
	if executionError != nil {
		t.Fatalf("scan failed: %v", executionError)
	}
	if strings.Contains(renderedOutput, "<codebase") {
		t.Fatalf("document must not hit stdout when --output is set:\n%s", renderedOutput)
	}
	writtenBytes, readError := os.ReadFile(outputPath)
	if readError != nil {
		t.Fatalf("reading output file: %v", readError)
	}
	if !strings.Contains(string(writtenBytes), "<codebase") {
		t.Fatalf("output file missing document:\n%s", writtenBytes)
	}
}

func TestScanCommandMissingRoot(t *testing.T) {
	_, executionError := executeCommand(t, "scan", filepath.Join(t.TempDir(), "missing"))
	if executionError == nil {
		t.Fatal("expected an error for a missing root")
	}
}

func TestTreeCommandHonorsExcludePatterns(t *testing.T) {
	rootPath := writeScanFixture(t)

	renderedOutput, executionError := executeCommand(t, "tree", "--exclude", "README.md", rootPath)
	if executionError != nil {
		t.Fatalf("tree failed: %v", executionError)
	}
	if strings.Contains(renderedOutput, "README.md") {
		t.Fatalf("excluded file leaked into the tree:\n%s", renderedOutput)
	}
	if !strings.Contains(renderedOutput, "app.py") {
		t.Fatalf("expected file missing from the tree:\n%s", renderedOutput)
	}
}
