// Package config discovers and merges application configuration. A global
// file under $HOME and a local file in the working directory are overlaid in
// that order, with command-line flags applied on top by the cli package.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/skel/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Scan ScanCommandConfiguration `mapstructure:"scan"`
	Tree TreeCommandConfiguration `mapstructure:"tree"`
}

// ScanCommandConfiguration defines defaults for the scan command.
type ScanCommandConfiguration struct {
	Mode         string            `mapstructure:"mode"`
	IncludeFull  []string          `mapstructure:"include_full"`
	FullPatterns []string          `mapstructure:"full_patterns"`
	MaxFileSize  *int64            `mapstructure:"max_file_size"`
	ShowExcluded *bool             `mapstructure:"show_excluded"`
	ShowImports  *bool             `mapstructure:"show_imports"`
	Sort         string            `mapstructure:"sort"`
	Workers      *int              `mapstructure:"workers"`
	Progress     *bool             `mapstructure:"progress"`
	Clipboard    *bool             `mapstructure:"clipboard"`
	Output       string            `mapstructure:"output"`
	Paths        PathConfiguration `mapstructure:"paths"`
}

// TreeCommandConfiguration defines defaults for the tree command.
type TreeCommandConfiguration struct {
	Paths PathConfiguration `mapstructure:"paths"`
}

// PathConfiguration configures inclusion and exclusion rules for path traversal.
type PathConfiguration struct {
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if localPath != "" {
		localConfig, loadError := loadConfigurationFromPath(localPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(localConfig)
	}

	merged.Scan.Paths.Include = utils.DeduplicatePatterns(merged.Scan.Paths.Include)
	merged.Scan.Paths.Exclude = utils.DeduplicatePatterns(merged.Scan.Paths.Exclude)
	merged.Tree.Paths.Include = utils.DeduplicatePatterns(merged.Tree.Paths.Include)
	merged.Tree.Paths.Exclude = utils.DeduplicatePatterns(merged.Tree.Paths.Exclude)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, absoluteError := filepath.Abs(explicitPath)
			if absoluteError != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, absoluteError)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	pathInfo, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if pathInfo.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var loaded ApplicationConfiguration
	if decodeError := reader.Unmarshal(&loaded); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return loaded, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	result.Scan = result.Scan.merge(override.Scan)
	result.Tree = result.Tree.merge(override.Tree)
	return result
}

func (configuration ScanCommandConfiguration) merge(override ScanCommandConfiguration) ScanCommandConfiguration {
	result := configuration
	if override.Mode != "" {
		result.Mode = override.Mode
	}
	if len(override.IncludeFull) > 0 {
		result.IncludeFull = append([]string(nil), override.IncludeFull...)
	}
	if len(override.FullPatterns) > 0 {
		result.FullPatterns = append([]string(nil), override.FullPatterns...)
	}
	if override.MaxFileSize != nil {
		result.MaxFileSize = cloneInt64(override.MaxFileSize)
	}
	if override.ShowExcluded != nil {
		result.ShowExcluded = cloneBool(override.ShowExcluded)
	}
	if override.ShowImports != nil {
		result.ShowImports = cloneBool(override.ShowImports)
	}
	if override.Sort != "" {
		result.Sort = override.Sort
	}
	if override.Workers != nil {
		result.Workers = cloneInt(override.Workers)
	}
	if override.Progress != nil {
		result.Progress = cloneBool(override.Progress)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	result.Paths = result.Paths.merge(override.Paths)
	return result
}

func (configuration TreeCommandConfiguration) merge(override TreeCommandConfiguration) TreeCommandConfiguration {
	result := configuration
	result.Paths = result.Paths.merge(override.Paths)
	return result
}

func (configuration PathConfiguration) merge(override PathConfiguration) PathConfiguration {
	result := configuration
	if len(override.Include) > 0 {
		result.Include = append([]string(nil), override.Include...)
	}
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string(nil), override.Exclude...)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt64(value *int64) *int64 {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
