//go:build cgo

package skeleton

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	javascript "github.com/smacker/go-tree-sitter/javascript"
	python "github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

const (
	captureNameImport   = "import"
	captureNameExport   = "export"
	captureNameFunction = "function"
	captureNameClass    = "class"

	pythonBodyField           = "body"
	pythonExpressionStatement = "expression_statement"
	pythonStringNodeType      = "string"
	pythonFunctionNodeType    = "function_definition"
	scriptMethodNodeType      = "method_definition"
	scriptFieldNodeType       = "field_definition"
	scriptPublicFieldNodeType = "public_field_definition"

	pythonQuerySource = `
		(import_statement) @import
		(import_from_statement) @import
		(function_definition) @function
		(class_definition) @class
	`
	scriptQuerySource = `
		(import_statement) @import
		(export_statement) @export
		(function_declaration) @function
		(arrow_function) @function
		(method_definition) @function
		(class_declaration) @class
	`
)

// Registry holds the compiled grammar and capture query for every language
// with tree-sitter support. Languages whose query fails to compile are simply
// absent, which routes them to the heuristic strategy.
type Registry struct {
	strategies map[Language]*grammarStrategy
}

// NewRegistry compiles the built-in grammar set.
func NewRegistry() *Registry {
	registry := &Registry{strategies: make(map[Language]*grammarStrategy)}
	registry.register(LanguagePython, python.GetLanguage(), pythonQuerySource)

	javaScriptLanguage := javascript.GetLanguage()
	registry.register(LanguageJavaScript, javaScriptLanguage, scriptQuerySource)
	registry.register(LanguageJSX, javaScriptLanguage, scriptQuerySource)
	registry.register(LanguageTypeScript, typescript.GetLanguage(), scriptQuerySource)
	registry.register(LanguageTSX, tsx.GetLanguage(), scriptQuerySource)
	return registry
}

func (registry *Registry) register(language Language, sitterLanguage *sitter.Language, querySource string) {
	compiledQuery, queryError := sitter.NewQuery([]byte(querySource), sitterLanguage)
	if queryError != nil {
		return
	}
	registry.strategies[language] = &grammarStrategy{
		language:       language,
		sitterLanguage: sitterLanguage,
		compiledQuery:  compiledQuery,
	}
}

// HasGrammars reports whether any language registered successfully.
func (registry *Registry) HasGrammars() bool {
	return registry != nil && len(registry.strategies) > 0
}

// StrategyFor returns the grammar strategy for a language, or nil when none
// is registered.
func (registry *Registry) StrategyFor(language Language) Strategy {
	if registry == nil {
		return nil
	}
	if strategy, isRegistered := registry.strategies[language]; isRegistered {
		return strategy
	}
	return nil
}

// grammarStrategy extracts skeletons by parsing content and slicing the nodes
// tagged by a fixed capture query.
type grammarStrategy struct {
	language       Language
	sitterLanguage *sitter.Language
	compiledQuery  *sitter.Query
}

func (strategy *grammarStrategy) Name() string {
	return "grammar"
}

type capturedNode struct {
	kind string
	node *sitter.Node
}

// Extract parses the content, captures import/export/function/class nodes,
// re-sorts them into source order, and renders each in turn. An empty capture
// set or a parse failure returns an empty result so the extractor can defer
// to the heuristic.
func (strategy *grammarStrategy) Extract(content string) (string, error) {
	source := []byte(content)
	parser := sitter.NewParser()
	parser.SetLanguage(strategy.sitterLanguage)
	parsedTree := parser.Parse(nil, source)
	if parsedTree == nil {
		return "", ErrQueryExecution
	}

	queryCursor := sitter.NewQueryCursor()
	queryCursor.Exec(strategy.compiledQuery, parsedTree.RootNode())

	var captures []capturedNode
	for {
		match, hasMatch := queryCursor.NextMatch()
		if !hasMatch {
			break
		}
		for _, capture := range match.Captures {
			captureName := strategy.compiledQuery.CaptureNameForId(capture.Index)
			captures = append(captures, capturedNode{kind: captureName, node: capture.Node})
		}
	}
	if len(captures) == 0 {
		return "", nil
	}

	// Capture order from the grammar is unspecified; source order is required.
	sort.SliceStable(captures, func(left, right int) bool {
		return captures[left].node.StartByte() < captures[right].node.StartByte()
	})

	containers := collectContainerRanges(captures)
	lines := strings.Split(content, "\n")

	var fragments []string
	previousKind := ""
	for _, capture := range captures {
		if capture.kind != captureNameImport && capture.kind != captureNameExport && isInsideContainer(capture.node, containers) {
			continue
		}
		rendered := strategy.renderCapture(capture, source, lines, captures)
		if rendered == "" {
			continue
		}
		if previousKind == captureNameImport && capture.kind != captureNameImport {
			fragments = append(fragments, "")
		}
		fragments = append(fragments, rendered)
		previousKind = capture.kind
	}
	return strings.Join(fragments, "\n"), nil
}

func (strategy *grammarStrategy) renderCapture(capture capturedNode, source []byte, lines []string, captures []capturedNode) string {
	switch capture.kind {
	case captureNameImport:
		return lineSpan(lines, capture.node)
	case captureNameExport:
		if exportWrapsCapturedDeclaration(capture.node, captures) {
			return lines[int(capture.node.StartPoint().Row)]
		}
		return lineSpan(lines, capture.node)
	case captureNameFunction:
		if strategy.language == LanguagePython {
			return renderPythonFunction(capture.node, source, lines)
		}
		return renderScriptFunction(capture.node, source)
	case captureNameClass:
		if strategy.language == LanguagePython {
			return renderPythonClass(capture.node, source, lines)
		}
		return renderScriptClass(capture.node, source, lines)
	}
	return ""
}

// collectContainerRanges gathers the byte ranges of captured class and export
// nodes. Functions and classes nested inside them are rendered by their
// container, not as separate top-level fragments.
func collectContainerRanges(captures []capturedNode) map[[2]uint32]struct{} {
	containers := make(map[[2]uint32]struct{})
	for _, capture := range captures {
		if capture.kind == captureNameClass || capture.kind == captureNameExport {
			containers[[2]uint32{capture.node.StartByte(), capture.node.EndByte()}] = struct{}{}
		}
	}
	return containers
}

func isInsideContainer(node *sitter.Node, containers map[[2]uint32]struct{}) bool {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		if _, isContainer := containers[[2]uint32{parent.StartByte(), parent.EndByte()}]; isContainer {
			return true
		}
	}
	return false
}

func exportWrapsCapturedDeclaration(exportNode *sitter.Node, captures []capturedNode) bool {
	for _, capture := range captures {
		if capture.kind != captureNameFunction && capture.kind != captureNameClass {
			continue
		}
		for parent := capture.node.Parent(); parent != nil; parent = parent.Parent() {
			if parent.StartByte() == exportNode.StartByte() && parent.EndByte() == exportNode.EndByte() {
				return true
			}
		}
	}
	return false
}

// lineSpan returns the verbatim lines covered by a node.
func lineSpan(lines []string, node *sitter.Node) string {
	startRow := int(node.StartPoint().Row)
	endRow := int(node.EndPoint().Row)
	if endRow >= len(lines) {
		endRow = len(lines) - 1
	}
	return strings.Join(lines[startRow:endRow+1], "\n")
}

// renderPythonFunction emits the signature through the body-opening colon, the
// leading docstring when the body starts with a bare string literal, and one
// elision marker.
func renderPythonFunction(functionNode *sitter.Node, source []byte, lines []string) string {
	bodyNode := functionNode.ChildByFieldName(pythonBodyField)
	if bodyNode == nil {
		return lines[int(functionNode.StartPoint().Row)]
	}

	startRow := int(functionNode.StartPoint().Row)
	bodyRow := int(bodyNode.StartPoint().Row)

	var fragments []string
	if bodyRow > startRow {
		fragments = append(fragments, lines[startRow:bodyRow]...)
	} else {
		signatureLine := lines[startRow]
		bodyColumn := int(bodyNode.StartPoint().Column)
		if bodyColumn <= len(signatureLine) {
			signatureLine = strings.TrimRight(signatureLine[:bodyColumn], " \t")
		}
		fragments = append(fragments, signatureLine)
	}

	if docstringNode := leadingStringLiteral(bodyNode); docstringNode != nil {
		fragments = append(fragments, lineSpanRows(lines, docstringNode)...)
	}
	fragments = append(fragments, pythonElisionMarker)
	return strings.Join(fragments, "\n")
}

// renderPythonClass emits the class header line, the class docstring when
// present, and each direct method as a nested function.
func renderPythonClass(classNode *sitter.Node, source []byte, lines []string) string {
	fragments := []string{lines[int(classNode.StartPoint().Row)]}

	bodyNode := classNode.ChildByFieldName(pythonBodyField)
	if bodyNode == nil {
		return fragments[0]
	}

	if docstringNode := leadingStringLiteral(bodyNode); docstringNode != nil {
		fragments = append(fragments, lineSpanRows(lines, docstringNode)...)
		fragments = append(fragments, "")
	}

	methodsFound := false
	for childIndex := 0; childIndex < int(bodyNode.NamedChildCount()); childIndex++ {
		childNode := bodyNode.NamedChild(childIndex)
		if childNode.Type() == pythonFunctionNodeType {
			methodsFound = true
			fragments = append(fragments, renderPythonFunction(childNode, source, lines))
		}
	}
	if !methodsFound {
		fragments = append(fragments, pythonNoMembersMarker)
	}
	return strings.Join(fragments, "\n")
}

// leadingStringLiteral returns the string node when the first body statement
// is a bare string literal, treated as documentation.
func leadingStringLiteral(bodyNode *sitter.Node) *sitter.Node {
	if bodyNode.NamedChildCount() == 0 {
		return nil
	}
	firstStatement := bodyNode.NamedChild(0)
	if firstStatement.Type() != pythonExpressionStatement || firstStatement.NamedChildCount() == 0 {
		return nil
	}
	literalNode := firstStatement.NamedChild(0)
	if literalNode.Type() != pythonStringNodeType {
		return nil
	}
	return literalNode
}

func lineSpanRows(lines []string, node *sitter.Node) []string {
	startRow := int(node.StartPoint().Row)
	endRow := int(node.EndPoint().Row)
	if endRow >= len(lines) {
		endRow = len(lines) - 1
	}
	return lines[startRow : endRow+1]
}

// renderScriptFunction emits a JavaScript or TypeScript function signature
// normalized to end at the body-opening brace.
func renderScriptFunction(functionNode *sitter.Node, source []byte) string {
	bodyNode := functionNode.ChildByFieldName(pythonBodyField)
	if bodyNode == nil {
		firstLine := strings.SplitN(functionNode.Content(source), "\n", 2)[0]
		return firstLine + " // [Implementation hidden]"
	}
	signature := strings.TrimRight(string(source[functionNode.StartByte():bodyNode.StartByte()]), " \t\n")
	if !strings.HasSuffix(signature, "{") {
		signature += " {"
	}
	return signature + "\n" + scriptElisionMarker + "\n}"
}

// renderScriptClass emits the class header with each method reduced to its
// signature.
func renderScriptClass(classNode *sitter.Node, source []byte, lines []string) string {
	bodyNode := classNode.ChildByFieldName(pythonBodyField)
	if bodyNode == nil {
		return strings.SplitN(classNode.Content(source), "\n", 2)[0]
	}

	signature := strings.TrimRight(string(source[classNode.StartByte():bodyNode.StartByte()]), " \t\n")
	if !strings.HasSuffix(signature, "{") {
		signature += " {"
	}
	fragments := []string{signature}

	methodsFound := false
	for childIndex := 0; childIndex < int(bodyNode.NamedChildCount()); childIndex++ {
		childNode := bodyNode.NamedChild(childIndex)
		switch childNode.Type() {
		case scriptMethodNodeType, scriptFieldNodeType, scriptPublicFieldNodeType:
		default:
			continue
		}
		methodsFound = true
		methodSignature := scriptMethodSignature(childNode.Content(source))
		fragments = append(fragments, "    "+methodSignature)
		fragments = append(fragments, "        // [Implementation hidden]")
		fragments = append(fragments, "    }")
		fragments = append(fragments, "")
	}
	if !methodsFound {
		fragments = append(fragments, scriptNoMembersMarker)
	}
	fragments = append(fragments, "}")
	return strings.Join(fragments, "\n")
}

// scriptMethodSignature keeps the method text up to and including the opening
// brace of its body.
func scriptMethodSignature(methodText string) string {
	methodLines := strings.Split(methodText, "\n")
	var signatureLines []string
	for _, methodLine := range methodLines {
		signatureLines = append(signatureLines, methodLine)
		if strings.Contains(methodLine, "{") {
			break
		}
	}
	signatureText := strings.Join(signatureLines, "\n")
	if braceIndex := strings.Index(signatureText, "{"); braceIndex != -1 {
		signatureText = strings.TrimRight(signatureText[:braceIndex], " \t") + " {"
	}
	return signatureText
}
