// Package filter decides which paths a traversal visits. It combines a
// segment-oriented glob matcher with include, exclude, and built-in
// always-exclude pattern sets evaluated with fixed precedence.
package filter

import (
	"strings"

	"github.com/gobwas/glob"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/temirov/skel/internal/utils"
)

const (
	pathSegmentSeparator = "/"
	// compiledPatternCacheSize bounds the number of compiled glob patterns kept alive.
	compiledPatternCacheSize = 512
)

// Matcher evaluates a single pattern against a path segment or a whole path.
// Compiled glob patterns are cached between calls; the matcher itself holds
// no per-path state and is safe to share across a traversal.
type Matcher struct {
	compiledPatterns *lru.Cache[string, glob.Glob]
}

// NewMatcher constructs a Matcher with an empty compilation cache.
func NewMatcher() *Matcher {
	cache, cacheError := lru.New[string, glob.Glob](compiledPatternCacheSize)
	if cacheError != nil {
		// lru.New only fails on a non-positive size.
		panic(cacheError)
	}
	return &Matcher{compiledPatterns: cache}
}

// Matches reports whether the candidate path matches the pattern.
//
// A pattern without a path separator is matched against every individual
// segment of the candidate. A pattern containing a separator is matched
// against every contiguous run of candidate segments, so "a/*/c" matches
// "a/b/c/d.txt" but not "a/b/x/d.txt". A trailing separator is a directory
// hint and carries no additional meaning.
func (matcher *Matcher) Matches(candidate string, pattern string) bool {
	normalizedPattern := strings.TrimSuffix(utils.NormalizePathSeparators(pattern), pathSegmentSeparator)
	if normalizedPattern == "" {
		return false
	}
	candidateSegments := utils.SplitPathSegments(candidate)
	patternSegments := strings.Split(normalizedPattern, pathSegmentSeparator)

	if len(patternSegments) == 1 {
		for _, candidateSegment := range candidateSegments {
			if matcher.segmentMatches(patternSegments[0], candidateSegment) {
				return true
			}
		}
		return false
	}

	if len(candidateSegments) < len(patternSegments) {
		return false
	}
	for startIndex := 0; startIndex <= len(candidateSegments)-len(patternSegments); startIndex++ {
		if matcher.segmentsMatch(candidateSegments[startIndex:startIndex+len(patternSegments)], patternSegments) {
			return true
		}
	}
	return false
}

// MatchesAny reports whether any pattern in the set matches the candidate path.
func (matcher *Matcher) MatchesAny(candidate string, patterns []string) bool {
	for _, pattern := range patterns {
		if matcher.Matches(candidate, pattern) {
			return true
		}
	}
	return false
}

// segmentsMatch reports whether each pattern segment matches the corresponding
// path segment.
func (matcher *Matcher) segmentsMatch(pathSegments []string, patternSegments []string) bool {
	for segmentIndex, patternSegment := range patternSegments {
		if !matcher.segmentMatches(patternSegment, pathSegments[segmentIndex]) {
			return false
		}
	}
	return true
}

// segmentMatches evaluates one glob pattern against one path segment. Patterns
// that fail to compile degrade to literal comparison.
func (matcher *Matcher) segmentMatches(pattern string, segment string) bool {
	compiledPattern, isCached := matcher.compiledPatterns.Get(pattern)
	if !isCached {
		compiled, compileError := glob.Compile(pattern)
		if compileError != nil {
			return pattern == segment
		}
		matcher.compiledPatterns.Add(pattern, compiled)
		compiledPattern = compiled
	}
	return compiledPattern.Match(segment)
}
