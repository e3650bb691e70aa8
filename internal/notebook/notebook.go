// Package notebook converts Jupyter notebooks to markdown so they can
// participate in the document as text. It is a simple, replaceable utility:
// markdown cells pass through verbatim and code cells become fenced blocks.
package notebook

import (
	"encoding/json"
	"fmt"
	"strings"
)

type rawNotebook struct {
	Cells    []rawCell   `json:"cells"`
	Metadata rawMetadata `json:"metadata"`
}

type rawCell struct {
	CellType string      `json:"cell_type"`
	Source   interface{} `json:"source"`
}

type rawMetadata struct {
	Kernelspec struct {
		Language string `json:"language"`
	} `json:"kernelspec"`
}

// ConvertToMarkdown renders notebook JSON as a markdown document.
func ConvertToMarkdown(notebookJSON []byte) (string, error) {
	var parsedNotebook rawNotebook
	if unmarshalError := json.Unmarshal(notebookJSON, &parsedNotebook); unmarshalError != nil {
		return "", fmt.Errorf("parse notebook: %w", unmarshalError)
	}

	fenceLanguage := parsedNotebook.Metadata.Kernelspec.Language
	if fenceLanguage == "" {
		fenceLanguage = "python"
	}

	var sections []string
	for _, cell := range parsedNotebook.Cells {
		cellSource := joinCellSource(cell.Source)
		switch cell.CellType {
		case "markdown":
			sections = append(sections, cellSource)
		case "code":
			sections = append(sections, "```"+fenceLanguage+"\n"+strings.TrimRight(cellSource, "\n")+"\n```")
		case "raw":
			sections = append(sections, "```\n"+strings.TrimRight(cellSource, "\n")+"\n```")
		}
	}
	return strings.Join(sections, "\n\n") + "\n", nil
}

// joinCellSource normalizes the two source encodings the format allows:
// a single string or a list of line strings.
func joinCellSource(source interface{}) string {
	switch typedSource := source.(type) {
	case string:
		return typedSource
	case []interface{}:
		var builder strings.Builder
		for _, sourceLine := range typedSource {
			if lineText, isString := sourceLine.(string); isString {
				builder.WriteString(lineText)
			}
		}
		return builder.String()
	default:
		return ""
	}
}
