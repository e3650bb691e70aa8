package filter

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Decision is the outcome of filtering a single path.
type Decision int

const (
	// DecisionVisit admits the path into the traversal.
	DecisionVisit Decision = iota
	// DecisionSkip prunes the path and, for directories, the subtree below it.
	DecisionSkip
)

// decisionCacheSize bounds the per-traversal memoization of path decisions.
const decisionCacheSize = 4096

// Filter composes the pattern matcher over include, exclude, and the built-in
// always-exclude sets. A Filter is scoped to one traversal; it accumulates no
// state beyond its memoization cache, so discarding it after a walk leaves no
// process-wide residue.
type Filter struct {
	matcher         *Matcher
	includePatterns []string
	excludePatterns []string
	alwaysExcluded  []string
	decisions       *lru.Cache[string, Decision]
}

// New constructs a Filter for the given user-supplied pattern sets. The
// always-exclude tables are appended internally and cannot be suppressed.
func New(includePatterns []string, excludePatterns []string) *Filter {
	alwaysExcluded := make([]string, 0, len(DefaultExcluded)+len(DefaultExcludedDirectories))
	alwaysExcluded = append(alwaysExcluded, DefaultExcluded...)
	alwaysExcluded = append(alwaysExcluded, DefaultExcludedDirectories...)

	decisions, cacheError := lru.New[string, Decision](decisionCacheSize)
	if cacheError != nil {
		panic(cacheError)
	}
	return &Filter{
		matcher:         NewMatcher(),
		includePatterns: includePatterns,
		excludePatterns: excludePatterns,
		alwaysExcluded:  alwaysExcluded,
		decisions:       decisions,
	}
}

// Matcher exposes the underlying pattern matcher for collaborators that need
// raw pattern evaluation with the same compilation cache.
func (pathFilter *Filter) Matcher() *Matcher {
	return pathFilter.matcher
}

// Decide returns Visit or Skip for a root-relative path.
//
// Exclusion is evaluated first and always wins: a path matching any exclude or
// always-exclude pattern is skipped even when an include pattern also matches
// it. When include patterns are present, a path matching none of them is
// skipped. An empty include set admits everything that survives exclusion.
// The empty path is always visited.
func (pathFilter *Filter) Decide(relativePath string) Decision {
	if relativePath == "" || relativePath == "." {
		return DecisionVisit
	}
	if cachedDecision, isCached := pathFilter.decisions.Get(relativePath); isCached {
		return cachedDecision
	}
	decision := pathFilter.decide(relativePath)
	pathFilter.decisions.Add(relativePath, decision)
	return decision
}

func (pathFilter *Filter) decide(relativePath string) Decision {
	if pathFilter.matcher.MatchesAny(relativePath, pathFilter.alwaysExcluded) {
		return DecisionSkip
	}
	if pathFilter.matcher.MatchesAny(relativePath, pathFilter.excludePatterns) {
		return DecisionSkip
	}
	if len(pathFilter.includePatterns) > 0 && !pathFilter.matcher.MatchesAny(relativePath, pathFilter.includePatterns) {
		return DecisionSkip
	}
	return DecisionVisit
}
