// Package classify routes files that survived path filtering to full-content
// or skeleton rendering.
package classify

import (
	"path"

	"github.com/gobwas/glob"

	"github.com/temirov/skel/internal/types"
	"github.com/temirov/skel/internal/utils"
)

// DefaultFullNames lists base names that default to full content: manifests
// and configuration files whose exact text matters more than their structure.
var DefaultFullNames = []string{
	"README.md",
	"package.json",
	"requirements.txt",
	"setup.py",
	"setup.cfg",
	"pyproject.toml",
	"tsconfig.json",
	"docker-compose.yml",
	"Dockerfile",
	".gitignore",
	".dockerignore",
	"config.yaml",
	"go.mod",
	"Cargo.toml",
}

// Classifier decides the treatment of a single file. It is a pure lookup over
// three disjunctive checks; no check order affects the result.
type Classifier struct {
	mode              string
	explicitFullPaths map[string]struct{}
	fullGlobPatterns  []compiledPattern
	defaultFullNames  map[string]struct{}
}

type compiledPattern struct {
	source   string
	compiled glob.Glob
}

// New constructs a Classifier for the given mode, explicit full-content
// relative paths, and full-content glob patterns. Patterns that fail to
// compile degrade to literal comparison against the relative path.
func New(mode string, explicitFullPaths []string, fullGlobPatterns []string) *Classifier {
	classifier := &Classifier{
		mode:              mode,
		explicitFullPaths: make(map[string]struct{}, len(explicitFullPaths)),
		defaultFullNames:  make(map[string]struct{}, len(DefaultFullNames)),
	}
	for _, explicitPath := range explicitFullPaths {
		classifier.explicitFullPaths[utils.NormalizePathSeparators(explicitPath)] = struct{}{}
	}
	for _, defaultName := range DefaultFullNames {
		classifier.defaultFullNames[defaultName] = struct{}{}
	}
	for _, patternSource := range fullGlobPatterns {
		compiled, compileError := glob.Compile(patternSource)
		if compileError != nil {
			compiled = nil
		}
		classifier.fullGlobPatterns = append(classifier.fullGlobPatterns, compiledPattern{source: patternSource, compiled: compiled})
	}
	return classifier
}

// Classify returns TreatmentFull or TreatmentSkeleton for a root-relative
// path. TreatmentExcluded is never returned here; the walker assigns it to
// files failing size, extension, or readability checks after classification.
func (classifier *Classifier) Classify(relativePath string) string {
	normalizedPath := utils.NormalizePathSeparators(relativePath)
	baseName := path.Base(normalizedPath)

	// Hybrid mode grants full content to the default table only.
	if classifier.mode == types.ModeHybrid {
		if _, isDefaultFull := classifier.defaultFullNames[baseName]; isDefaultFull {
			return types.TreatmentFull
		}
		return types.TreatmentSkeleton
	}

	if _, isExplicit := classifier.explicitFullPaths[normalizedPath]; isExplicit {
		return types.TreatmentFull
	}
	for _, pattern := range classifier.fullGlobPatterns {
		if pattern.compiled == nil {
			if pattern.source == normalizedPath {
				return types.TreatmentFull
			}
			continue
		}
		if pattern.compiled.Match(normalizedPath) || pattern.compiled.Match(baseName) {
			return types.TreatmentFull
		}
	}
	if _, isDefaultFull := classifier.defaultFullNames[baseName]; isDefaultFull {
		return types.TreatmentFull
	}
	return types.TreatmentSkeleton
}
