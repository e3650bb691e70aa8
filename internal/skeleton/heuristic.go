package skeleton

import (
	"strings"
)

// scannerState is the primary state of the heuristic line scanner. Class
// context (whether the scanner is inside a class body and at what
// indentation) is tracked alongside the primary state because a docstring or
// a skipped body can occur both at top level and inside a class.
type scannerState int

const (
	stateNormal scannerState = iota
	stateInDocstring
	stateSkippingBody
	stateExpectingClassDoc
)

var definitionKeywords = []string{
	"def ",
	"function ",
	"async def",
	"async function",
	"export function",
	"export class",
	"export const",
}

var methodKeywords = []string{
	"def ",
	"async def",
}

var importKeywords = []string{
	"import ",
	"from ",
	"const ",
	"let ",
	"var ",
	"export ",
	"require(",
}

// heuristicStrategy is the grammar-free extraction strategy: a single pass
// over lines driven by an explicit state machine. It has no failure path;
// every line is classified into some state.
type heuristicStrategy struct{}

func newHeuristicStrategy() *heuristicStrategy {
	return &heuristicStrategy{}
}

func (strategy *heuristicStrategy) Name() string {
	return "heuristic"
}

// Extract reduces content to signatures, docstrings, and import-like lines.
// Emitted fragments preserve original line order; nothing is reordered.
func (strategy *heuristicStrategy) Extract(content string) (string, error) {
	lines := strings.Split(content, "\n")
	scanner := &lineScanner{lines: lines}
	scanner.run()

	if len(scanner.emitted) == 0 {
		return strategy.lastResort(lines), nil
	}
	return strings.Join(scanner.emitted, "\n"), nil
}

// lastResort guarantees non-empty output: the first five lines plus a marker,
// or a bare marker for an empty file.
func (strategy *heuristicStrategy) lastResort(lines []string) string {
	hasContent := false
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			hasContent = true
			break
		}
	}
	if !hasContent {
		return restOfFileMarker
	}
	keep := lines
	if len(keep) > 5 {
		keep = keep[:5]
	}
	return strings.Join(keep, "\n") + "\n\n" + restOfFileMarker
}

type lineScanner struct {
	lines   []string
	emitted []string

	state          scannerState
	docstringOpen  string
	docstringClose string
	docstringFirst bool

	inClass      bool
	classIndent  int
	methodIndent int
}

func (scanner *lineScanner) run() {
	for lineIndex, line := range scanner.lines {
		scanner.step(lineIndex, line)
	}
}

func (scanner *lineScanner) step(lineIndex int, line string) {
	stripped := strings.TrimSpace(line)
	currentIndent := len(line) - len(strings.TrimLeft(line, " \t"))

	// Active docstrings take priority over every other rule.
	if scanner.state == stateInDocstring {
		scanner.emit(line)
		if scanner.docstringCloses(stripped) {
			scanner.finishDocstring()
		}
		return
	}

	// Import-like lines are emitted in every remaining state.
	if hasAnyPrefix(stripped, importKeywords) {
		scanner.emit(line)
		return
	}

	if scanner.state == stateSkippingBody && !scanner.inClass {
		if !hasAnyPrefix(stripped, definitionKeywords) && !strings.HasPrefix(stripped, "class ") {
			return
		}
		scanner.state = stateNormal
	}

	if strings.HasPrefix(stripped, "class ") {
		scanner.inClass = true
		scanner.classIndent = currentIndent
		scanner.emit(line)
		scanner.state = stateExpectingClassDoc
		return
	}

	if scanner.state == stateExpectingClassDoc {
		if openDelimiter, closeDelimiter, isDocstring := docstringDelimiters(stripped); isDocstring {
			scanner.beginDocstring(openDelimiter, closeDelimiter)
			scanner.emit(line)
			if scanner.docstringCloses(stripped) {
				// Single-line class docstring; no elision marker follows.
				scanner.state = stateNormal
				scanner.docstringOpen = ""
				scanner.docstringClose = ""
			}
			return
		}
		if stripped != "" && !strings.HasPrefix(stripped, "#") {
			scanner.state = stateNormal
		}
	}

	// A non-blank line at or above the class indentation that is not itself a
	// definition, decorator, or comment exits the class.
	if scanner.inClass && stripped != "" && currentIndent <= scanner.classIndent &&
		!hasAnyPrefix(stripped, methodKeywords) &&
		!strings.HasPrefix(stripped, "#") && !strings.HasPrefix(stripped, "@") {
		scanner.inClass = false
	}

	if scanner.inClass && hasAnyPrefix(stripped, methodKeywords) {
		scanner.emit(truncateAtBrace(line))
		scanner.methodIndent = currentIndent
		if scanner.peekDocstring(lineIndex) {
			return
		}
		scanner.emit(strings.Repeat(" ", currentIndent+4) + "# [Implementation hidden]")
		scanner.methodIndent = 0
		return
	}

	if !scanner.inClass && hasAnyPrefix(stripped, definitionKeywords) {
		scanner.emit(truncateAtBrace(line))
		if scanner.peekDocstring(lineIndex) {
			return
		}
		scanner.emit(pythonElisionMarker)
		scanner.state = stateSkippingBody
		return
	}
}

// peekDocstring inspects the line after a just-emitted definition and arms the
// docstring state when it opens a documentation literal.
func (scanner *lineScanner) peekDocstring(lineIndex int) bool {
	if lineIndex+1 >= len(scanner.lines) {
		return false
	}
	nextStripped := strings.TrimSpace(scanner.lines[lineIndex+1])
	openDelimiter, closeDelimiter, isDocstring := docstringDelimiters(nextStripped)
	if !isDocstring {
		return false
	}
	scanner.beginDocstring(openDelimiter, closeDelimiter)
	return true
}

func (scanner *lineScanner) beginDocstring(openDelimiter string, closeDelimiter string) {
	scanner.state = stateInDocstring
	scanner.docstringOpen = openDelimiter
	scanner.docstringClose = closeDelimiter
	scanner.docstringFirst = true
}

// docstringCloses reports whether the current line terminates the active
// documentation literal. On the opening line the delimiter must appear twice
// (a single-line docstring); on later lines once.
func (scanner *lineScanner) docstringCloses(stripped string) bool {
	isFirstLine := scanner.docstringFirst
	scanner.docstringFirst = false
	if scanner.docstringOpen == scanner.docstringClose {
		count := strings.Count(stripped, scanner.docstringClose)
		if isFirstLine && strings.HasPrefix(stripped, scanner.docstringOpen) {
			return count >= 2
		}
		return count >= 1
	}
	return strings.Contains(stripped, scanner.docstringClose)
}

func (scanner *lineScanner) finishDocstring() {
	scanner.state = stateNormal
	scanner.docstringOpen = ""
	scanner.docstringClose = ""
	if scanner.inClass && scanner.methodIndent > 0 {
		scanner.emit(strings.Repeat(" ", scanner.methodIndent+4) + "# [Implementation hidden]")
		scanner.methodIndent = 0
		return
	}
	scanner.emit(pythonElisionMarker)
}

func (scanner *lineScanner) emit(line string) {
	scanner.emitted = append(scanner.emitted, line)
}

// docstringDelimiters recognizes the opening of a documentation literal and
// returns its open and close delimiters.
func docstringDelimiters(stripped string) (string, string, bool) {
	switch {
	case strings.HasPrefix(stripped, `"""`):
		return `"""`, `"""`, true
	case strings.HasPrefix(stripped, "'''"):
		return "'''", "'''", true
	case strings.HasPrefix(stripped, "/*"):
		return "/*", "*/", true
	default:
		return "", "", false
	}
}

// truncateAtBrace drops an opening body brace and anything after it, keeping
// only the signature portion of a definition line.
func truncateAtBrace(line string) string {
	if braceIndex := strings.Index(line, "{"); braceIndex != -1 {
		return strings.TrimRight(line[:braceIndex], " \t")
	}
	return strings.TrimRight(line, " \t")
}

func hasAnyPrefix(value string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
