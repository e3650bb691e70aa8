package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/skel/internal/config"
	"github.com/temirov/skel/internal/utils"
)

func writeConfigFile(testInstance *testing.T, directory string, contents string) {
	testInstance.Helper()
	if writeError := os.WriteFile(filepath.Join(directory, utils.ConfigFileName), []byte(contents), 0o644); writeError != nil {
		testInstance.Fatalf("writing configuration fixture: %v", writeError)
	}
}

func TestLoadApplicationConfigurationReadsLocalFile(testInstance *testing.T) {
	homeDirectory := testInstance.TempDir()
	testInstance.Setenv("HOME", homeDirectory)

	workingDirectory := testInstance.TempDir()
	writeConfigFile(testInstance, workingDirectory, `
scan:
  mode: hybrid
  show_excluded: true
  paths:
    exclude:
      - dist
      - dist
`)

	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		testInstance.Fatalf("loading configuration: %v", loadError)
	}
	if loaded.Scan.Mode != "hybrid" {
		testInstance.Fatalf("unexpected mode: %q", loaded.Scan.Mode)
	}
	if loaded.Scan.ShowExcluded == nil || !*loaded.Scan.ShowExcluded {
		testInstance.Fatalf("show_excluded not decoded: %+v", loaded.Scan)
	}
	if len(loaded.Scan.Paths.Exclude) != 1 || loaded.Scan.Paths.Exclude[0] != "dist" {
		testInstance.Fatalf("exclude patterns not deduplicated: %+v", loaded.Scan.Paths.Exclude)
	}
}

func TestLoadApplicationConfigurationLocalOverridesGlobal(testInstance *testing.T) {
	homeDirectory := testInstance.TempDir()
	testInstance.Setenv("HOME", homeDirectory)
	globalDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
	if mkdirError := os.MkdirAll(globalDirectory, 0o755); mkdirError != nil {
		testInstance.Fatalf("creating global configuration directory: %v", mkdirError)
	}
	writeConfigFile(testInstance, globalDirectory, `
scan:
  mode: skeleton
  sort: lexicographic
`)

	workingDirectory := testInstance.TempDir()
	writeConfigFile(testInstance, workingDirectory, `
scan:
  mode: custom
`)

	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		testInstance.Fatalf("loading configuration: %v", loadError)
	}
	if loaded.Scan.Mode != "custom" {
		testInstance.Fatalf("local file must override global mode: %q", loaded.Scan.Mode)
	}
	if loaded.Scan.Sort != "lexicographic" {
		testInstance.Fatalf("global-only setting must survive the merge: %q", loaded.Scan.Sort)
	}
}

func TestLoadApplicationConfigurationMissingFilesAreFine(testInstance *testing.T) {
	homeDirectory := testInstance.TempDir()
	testInstance.Setenv("HOME", homeDirectory)

	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: testInstance.TempDir()})
	if loadError != nil {
		testInstance.Fatalf("missing configuration files must not fail: %v", loadError)
	}
	if loaded.Scan.Mode != "" {
		testInstance.Fatalf("expected zero configuration, got %+v", loaded)
	}
}

func TestLoadApplicationConfigurationExplicitPath(testInstance *testing.T) {
	homeDirectory := testInstance.TempDir()
	testInstance.Setenv("HOME", homeDirectory)

	workingDirectory := testInstance.TempDir()
	explicitPath := filepath.Join(workingDirectory, "alternate.yaml")
	if writeError := os.WriteFile(explicitPath, []byte("scan:\n  output: context.xml\n"), 0o644); writeError != nil {
		testInstance.Fatalf("writing explicit configuration: %v", writeError)
	}

	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: "alternate.yaml",
	})
	if loadError != nil {
		testInstance.Fatalf("loading configuration: %v", loadError)
	}
	if loaded.Scan.Output != "context.xml" {
		testInstance.Fatalf("explicit configuration path not honored: %+v", loaded.Scan)
	}
}
