// Package project infers the project type of a source tree from its manifest
// files. The scan is shallow and best-effort; it only feeds the document
// header and never affects filtering or extraction.
package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/temirov/skel/internal/types"
	"github.com/temirov/skel/internal/utils"
)

// maximumScanDepth bounds how deep below the root the detector looks.
const maximumScanDepth = 2

type manifestSignature struct {
	projectType string
	language    string
}

var manifestSignatures = map[string]manifestSignature{
	"package.json":     {projectType: "nodejs", language: "javascript"},
	"requirements.txt": {projectType: "python", language: "python"},
	"pyproject.toml":   {projectType: "python", language: "python"},
	"setup.py":         {projectType: "python", language: "python"},
	"Cargo.toml":       {projectType: "rust", language: "rust"},
	"go.mod":           {projectType: "go", language: "go"},
	"pom.xml":          {projectType: "java", language: "java"},
	"build.gradle":     {projectType: "java", language: "java"},
	"composer.json":    {projectType: "php", language: "php"},
	"Gemfile":          {projectType: "ruby", language: "ruby"},
}

var entryPointNames = map[string]struct{}{
	"main.py":   {},
	"app.py":    {},
	"index.js":  {},
	"server.js": {},
	"main.go":   {},
	"main.rs":   {},
}

var configFileNames = map[string]struct{}{
	"config.json":        {},
	"settings.py":        {},
	".env.example":       {},
	"docker-compose.yml": {},
	"Dockerfile":         {},
}

var testDirectoryNames = map[string]struct{}{
	"test":      {},
	"tests":     {},
	"__tests__": {},
	"spec":      {},
}

// Detect scans up to maximumScanDepth levels below rootPath and returns the
// inferred project description. Errors while scanning degrade to a partial
// result; Detect itself never fails.
func Detect(rootPath string) types.ProjectInfo {
	projectInfo := types.ProjectInfo{Type: "unknown", Language: "mixed"}

	walkError := filepath.WalkDir(rootPath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		relativePath := utils.RelativePathOrSelf(walkedPath, rootPath)
		if relativePath == "." {
			return nil
		}
		depth := strings.Count(relativePath, "/")
		if directoryEntry.IsDir() {
			if depth >= maximumScanDepth {
				return filepath.SkipDir
			}
			if _, isTestDirectory := testDirectoryNames[directoryEntry.Name()]; isTestDirectory {
				projectInfo.TestDirectories = append(projectInfo.TestDirectories, relativePath)
			}
			return nil
		}

		entryName := directoryEntry.Name()
		if signature, isManifest := manifestSignatures[entryName]; isManifest {
			projectInfo.Type = signature.projectType
			projectInfo.Language = signature.language
			projectInfo.DependencyFiles = append(projectInfo.DependencyFiles, relativePath)
			if entryName == "go.mod" {
				projectInfo.ModulePath = goModulePath(walkedPath)
			}
		}
		if _, isConfigFile := configFileNames[entryName]; isConfigFile {
			projectInfo.ConfigFiles = append(projectInfo.ConfigFiles, relativePath)
		}
		if _, isEntryPoint := entryPointNames[entryName]; isEntryPoint {
			projectInfo.EntryPoints = append(projectInfo.EntryPoints, relativePath)
		}
		return nil
	})
	if walkError != nil {
		return projectInfo
	}

	sort.Strings(projectInfo.EntryPoints)
	sort.Strings(projectInfo.DependencyFiles)
	sort.Strings(projectInfo.ConfigFiles)
	sort.Strings(projectInfo.TestDirectories)
	return projectInfo
}

// goModulePath parses the module directive from a go.mod file.
func goModulePath(goModPath string) string {
	goModBytes, readError := os.ReadFile(goModPath)
	if readError != nil {
		return ""
	}
	parsedFile, parseError := modfile.ParseLax(goModPath, goModBytes, nil)
	if parseError != nil || parsedFile.Module == nil {
		return ""
	}
	return parsedFile.Module.Mod.Path
}
