package skeleton

import (
	"errors"
	"strings"
	"sync"
)

// Sentinel errors for the extraction taxonomy. Both are recovered inside the
// extractor; they never reach callers of Extract.
var (
	// ErrGrammarInit indicates a grammar or query failed to initialize.
	ErrGrammarInit = errors.New("skeleton: grammar initialization failed")
	// ErrQueryExecution indicates a capture query failed against a parsed tree.
	ErrQueryExecution = errors.New("skeleton: query execution failed")
)

// Strategy produces a reduced representation of file content. Implementations
// may fail; the Extractor absorbs failures by downgrading to the heuristic.
type Strategy interface {
	Name() string
	Extract(content string) (string, error)
}

// Extractor selects an extraction strategy per language and caches the
// selection. A grammar failure downgrades the language to the heuristic
// strategy for the remainder of the run; the downgrade is silent.
type Extractor struct {
	registry  *Registry
	heuristic *heuristicStrategy

	// strategiesMutex guards strategies; Extract runs concurrently when the
	// walker shards extraction across workers.
	strategiesMutex sync.Mutex
	strategies      map[Language]Strategy
}

// NewExtractor builds an Extractor over the given grammar registry. A nil
// registry routes every language to the heuristic scanner.
func NewExtractor(registry *Registry) *Extractor {
	return &Extractor{
		registry:   registry,
		heuristic:  newHeuristicStrategy(),
		strategies: make(map[Language]Strategy),
	}
}

// GrammarAvailable reports whether at least one language currently resolves to
// a grammar-driven strategy.
func (extractor *Extractor) GrammarAvailable() bool {
	if extractor.registry == nil {
		return false
	}
	return extractor.registry.HasGrammars()
}

// Extract returns a skeleton for the content. It never fails and never
// returns an empty string for non-empty content.
func (extractor *Extractor) Extract(content string, language Language) string {
	strategy := extractor.strategyFor(language)
	if strategy != extractor.heuristic {
		extracted, extractionError := strategy.Extract(content)
		if extractionError == nil && strings.TrimSpace(extracted) != "" {
			return extracted
		}
		// Grammar parse or query failure: downgrade this language for the
		// rest of the run and fall through to the heuristic.
		extractor.strategiesMutex.Lock()
		extractor.strategies[language] = extractor.heuristic
		extractor.strategiesMutex.Unlock()
	}
	extracted, _ := extractor.heuristic.Extract(content)
	return extracted
}

func (extractor *Extractor) strategyFor(language Language) Strategy {
	extractor.strategiesMutex.Lock()
	defer extractor.strategiesMutex.Unlock()
	if cachedStrategy, isCached := extractor.strategies[language]; isCached {
		return cachedStrategy
	}
	var selected Strategy = extractor.heuristic
	if language != LanguageUnknown && extractor.registry != nil {
		if grammarStrategy := extractor.registry.StrategyFor(language); grammarStrategy != nil {
			selected = grammarStrategy
		}
	}
	extractor.strategies[language] = selected
	return selected
}
