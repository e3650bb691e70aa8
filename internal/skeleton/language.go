// Package skeleton reduces source files to a structural representation:
// imports, signatures, and docstrings, with bodies elided. Extraction
// dispatches to a grammar-driven strategy when a tree-sitter grammar is
// registered for the language and to a line-oriented heuristic scanner
// otherwise. The fallback is transparent: callers never observe an error,
// only a possibly lower-fidelity skeleton.
package skeleton

import "strings"

// Language tags the detected source language of a file.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageJSX        Language = "jsx"
	LanguageTypeScript Language = "typescript"
	LanguageTSX        Language = "tsx"
	// LanguageUnknown routes straight to the heuristic scanner.
	LanguageUnknown Language = ""
)

// LanguageForExtension maps a file extension (with or without the leading
// dot) to a language tag. Unrecognized extensions yield LanguageUnknown.
func LanguageForExtension(extension string) Language {
	normalized := strings.ToLower(strings.TrimPrefix(extension, "."))
	switch normalized {
	case "py":
		return LanguagePython
	case "js", "mjs", "cjs":
		return LanguageJavaScript
	case "jsx":
		return LanguageJSX
	case "ts":
		return LanguageTypeScript
	case "tsx":
		return LanguageTSX
	default:
		return LanguageUnknown
	}
}

const (
	pythonElisionMarker   = "    # [Implementation hidden]"
	pythonNoMembersMarker = "    # [No methods defined]"
	scriptElisionMarker   = "    // [Implementation hidden]"
	scriptNoMembersMarker = "    // [No methods defined]"
	restOfFileMarker      = "# [Rest of file hidden]"
)
