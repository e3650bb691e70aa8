package utils_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/skel/internal/utils"
)

func TestDeduplicatePatterns(testInstance *testing.T) {
	deduplicated := utils.DeduplicatePatterns([]string{"a", "b", "a", "b", "c"})
	expected := []string{"a", "b", "c"}
	if !reflect.DeepEqual(deduplicated, expected) {
		testInstance.Fatalf("got %v want %v", deduplicated, expected)
	}
}

func TestNormalizePathSeparators(testInstance *testing.T) {
	if normalized := utils.NormalizePathSeparators(`src\app\main.py`); normalized != "src/app/main.py" {
		testInstance.Fatalf("unexpected normalization: %q", normalized)
	}
}

func TestRelativePathOrSelf(testInstance *testing.T) {
	rootPath := filepath.Join("/tmp", "project")
	fullPath := filepath.Join(rootPath, "src", "app.py")
	if relative := utils.RelativePathOrSelf(fullPath, rootPath); relative != "src/app.py" {
		testInstance.Fatalf("unexpected relative path: %q", relative)
	}
	if self := utils.RelativePathOrSelf(rootPath, rootPath); self != "." {
		testInstance.Fatalf("root must map to '.': %q", self)
	}
}

func TestSplitPathSegments(testInstance *testing.T) {
	segments := utils.SplitPathSegments("src/app/main.py")
	expected := []string{"src", "app", "main.py"}
	if !reflect.DeepEqual(segments, expected) {
		testInstance.Fatalf("got %v want %v", segments, expected)
	}
}

func TestIsBinary(testInstance *testing.T) {
	if utils.IsBinary([]byte("plain text\n")) {
		testInstance.Fatal("plain text misclassified as binary")
	}
	if !utils.IsBinary([]byte{0x00, 0x01, 0x02}) {
		testInstance.Fatal("NUL bytes must classify as binary")
	}
	if utils.IsBinary([]byte{'c', 'a', 'f', 0xe9, '\n'}) {
		testInstance.Fatal("latin-1 text must classify as text so decoding can fall back")
	}
}
