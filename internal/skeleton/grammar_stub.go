//go:build !cgo

package skeleton

// Registry is empty when cgo is unavailable; every language falls back to the
// heuristic strategy on platforms that cannot build the tree-sitter bindings.
type Registry struct{}

// NewRegistry returns nil so strategy selection skips grammar lookup entirely.
func NewRegistry() *Registry {
	return nil
}

// HasGrammars always reports false without cgo.
func (registry *Registry) HasGrammars() bool {
	return false
}

// StrategyFor always returns nil without cgo.
func (registry *Registry) StrategyFor(language Language) Strategy {
	return nil
}
