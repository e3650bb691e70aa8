// Package walker drives the depth-first traversal that feeds the document
// renderer. Filtering decides which paths are visited, classification decides
// how each visited file is rendered, and every counter lives on the walk
// itself so concurrent runs never share state.
package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/skel/internal/classify"
	"github.com/temirov/skel/internal/filter"
	"github.com/temirov/skel/internal/imports"
	"github.com/temirov/skel/internal/notebook"
	"github.com/temirov/skel/internal/skeleton"
	"github.com/temirov/skel/internal/tokenizer"
	"github.com/temirov/skel/internal/types"
	"github.com/temirov/skel/internal/utils"
)

var (
	// ErrRootMissing reports a root path that does not exist.
	ErrRootMissing = errors.New("root path does not exist")
	// ErrRootNotDirectory reports a root path that is not a directory.
	ErrRootNotDirectory = errors.New("root path is not a directory")
)

// Error markers attached to entries the walk could not render.
const (
	errorMarkerTooLarge       = "file_too_large"
	errorMarkerReadFailed     = "read_failed"
	errorMarkerEncodingFailed = "encoding_failed"
	errorMarkerNotebookParse  = "notebook_parse_failed"
)

const notebookExtension = ".ipynb"

// Options tunes one traversal.
type Options struct {
	MaxFileSizeBytes  int64
	SortLexicographic bool
	Workers           int
	ShowProgress      bool
	ScanImports       bool
}

// TreeWalker walks a validated root and produces a WalkResult.
type TreeWalker struct {
	pathFilter   *filter.Filter
	classifier   *classify.Classifier
	extractor    *skeleton.Extractor
	tokenCounter tokenizer.Counter
	options      Options
}

// New builds a walker from its collaborators.
func New(pathFilter *filter.Filter, classifier *classify.Classifier, extractor *skeleton.Extractor, tokenCounter tokenizer.Counter, options Options) *TreeWalker {
	return &TreeWalker{
		pathFilter:   pathFilter,
		classifier:   classifier,
		extractor:    extractor,
		tokenCounter: tokenCounter,
		options:      options,
	}
}

// ValidateRoot resolves rootPath and confirms it is an existing directory.
// This is the only hard precondition of a walk.
func ValidateRoot(rootPath string) (types.ValidatedRoot, error) {
	absolutePath, absoluteError := filepath.Abs(rootPath)
	if absoluteError != nil {
		return types.ValidatedRoot{}, fmt.Errorf("resolving root path %s: %w", rootPath, absoluteError)
	}
	rootInfo, statError := os.Stat(absolutePath)
	if statError != nil {
		return types.ValidatedRoot{}, fmt.Errorf("%w: %s", ErrRootMissing, absolutePath)
	}
	if !rootInfo.IsDir() {
		return types.ValidatedRoot{}, fmt.Errorf("%w: %s", ErrRootNotDirectory, absolutePath)
	}
	return types.ValidatedRoot{AbsolutePath: absolutePath, Name: filepath.Base(absolutePath)}, nil
}

// pendingSkeleton carries a file whose extraction is deferred to the worker
// pool stage.
type pendingSkeleton struct {
	entry    types.FileEntry
	raw      string
	language skeleton.Language
}

// Walk traverses the root and returns the collected entries and counters.
// Per-file failures are recorded as errored entries; only context
// cancellation aborts the walk.
func (treeWalker *TreeWalker) Walk(walkContext context.Context, root types.ValidatedRoot) (*types.WalkResult, error) {
	walkResult := &types.WalkResult{GrammarActive: treeWalker.extractor.GrammarAvailable()}
	excludedTally := map[string]int{}
	var pendingSkeletons []pendingSkeleton
	orderIndex := 0

	walkError := filepath.WalkDir(root.AbsolutePath, func(visitedPath string, directoryEntry fs.DirEntry, visitError error) error {
		if contextError := walkContext.Err(); contextError != nil {
			return contextError
		}
		relativePath := utils.RelativePathOrSelf(visitedPath, root.AbsolutePath)
		if visitError != nil {
			if directoryEntry != nil && directoryEntry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if treeWalker.pathFilter.Decide(relativePath) == filter.DecisionSkip {
			if directoryEntry.IsDir() {
				excludedTally[relativePath] += countFilesUnder(visitedPath)
				return fs.SkipDir
			}
			excludedTally[parentDirectory(relativePath)]++
			return nil
		}
		if directoryEntry.IsDir() {
			return nil
		}

		entry, pending := treeWalker.processFile(visitedPath, relativePath, directoryEntry, orderIndex)
		orderIndex++
		switch {
		case pending != nil:
			pendingSkeletons = append(pendingSkeletons, *pending)
		case entry.ErrorMarker != "":
			entry.Treatment = types.TreatmentExcluded
			walkResult.ErroredFiles = append(walkResult.ErroredFiles, entry)
			walkResult.Stats.Excluded++
		case entry.Treatment == types.TreatmentFull:
			walkResult.FullFiles = append(walkResult.FullFiles, entry)
			walkResult.Stats.FilesProcessed++
			walkResult.Stats.FullContent++
			walkResult.Stats.TotalTokens += entry.Tokens
		}
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}

	skeletonEntries, extractionStats, extractionError := treeWalker.extractSkeletons(walkContext, pendingSkeletons)
	if extractionError != nil {
		return nil, extractionError
	}
	walkResult.SkeletonFiles = skeletonEntries
	walkResult.Stats.Merge(extractionStats)

	for tallyPath, fileCount := range excludedTally {
		walkResult.Stats.Excluded += fileCount
		walkResult.ExcludedDirs = append(walkResult.ExcludedDirs, types.ExcludedDirectory{Path: tallyPath, FileCount: fileCount})
	}
	sort.Slice(walkResult.ExcludedDirs, func(left, right int) bool {
		return walkResult.ExcludedDirs[left].Path < walkResult.ExcludedDirs[right].Path
	})

	if treeWalker.options.SortLexicographic {
		sortEntriesByPath(walkResult.FullFiles)
		sortEntriesByPath(walkResult.SkeletonFiles)
	}
	return walkResult, nil
}

// processFile loads one visited file and either finishes it in place or
// returns a pending skeleton job for the extraction stage.
func (treeWalker *TreeWalker) processFile(visitedPath string, relativePath string, directoryEntry fs.DirEntry, orderIndex int) (types.FileEntry, *pendingSkeleton) {
	entry := types.FileEntry{
		RelativePath: relativePath,
		Extension:    strings.ToLower(filepath.Ext(relativePath)),
		OrderIndex:   orderIndex,
	}
	fileInfo, infoError := directoryEntry.Info()
	if infoError != nil {
		entry.ErrorMarker = errorMarkerReadFailed
		return entry, nil
	}
	entry.SizeBytes = fileInfo.Size()
	if treeWalker.options.MaxFileSizeBytes > 0 && entry.SizeBytes > treeWalker.options.MaxFileSizeBytes {
		entry.ErrorMarker = errorMarkerTooLarge
		return entry, nil
	}

	rawBytes, readError := os.ReadFile(visitedPath)
	if readError != nil {
		entry.ErrorMarker = errorMarkerReadFailed
		return entry, nil
	}
	content, decodeOK := decodeText(rawBytes)
	if !decodeOK {
		entry.ErrorMarker = errorMarkerEncodingFailed
		return entry, nil
	}
	if entry.Extension == notebookExtension {
		converted, conversionError := notebook.ConvertToMarkdown(rawBytes)
		if conversionError != nil {
			entry.ErrorMarker = errorMarkerNotebookParse
			return entry, nil
		}
		content = converted
		entry.Extension = ".md"
	}

	entry.Treatment = treeWalker.classifier.Classify(relativePath)
	if entry.Treatment == types.TreatmentFull {
		entry.Content = content
		entry.Tokens = tokenizer.CountOrApproximate(treeWalker.tokenCounter, content)
		if treeWalker.options.ScanImports {
			entry.Imports = imports.Extract(content, entry.Extension)
		}
		return entry, nil
	}

	entry.LineCount = countLines(content)
	return entry, &pendingSkeleton{
		entry:    entry,
		raw:      content,
		language: skeleton.LanguageForExtension(entry.Extension),
	}
}

// extractSkeletons runs the deferred extraction jobs, bounded by the workers
// option. Entries come back in traversal order; each job owns its own stats
// accumulator and the merged total is returned alongside the entries.
func (treeWalker *TreeWalker) extractSkeletons(walkContext context.Context, pendingSkeletons []pendingSkeleton) ([]types.FileEntry, types.WalkStats, error) {
	if len(pendingSkeletons) == 0 {
		return nil, types.WalkStats{}, nil
	}
	workerLimit := treeWalker.options.Workers
	if workerLimit < 1 {
		workerLimit = 1
	}

	var progressBar *progressbar.ProgressBar
	if treeWalker.options.ShowProgress {
		progressBar = progressbar.NewOptions(len(pendingSkeletons),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("extracting"),
			progressbar.OptionClearOnFinish(),
		)
	}

	finishedEntries := make([]types.FileEntry, len(pendingSkeletons))
	perJobStats := make([]types.WalkStats, len(pendingSkeletons))
	workerGroup, groupContext := errgroup.WithContext(walkContext)
	workerGroup.SetLimit(workerLimit)
	for jobIndex, job := range pendingSkeletons {
		jobIndex, job := jobIndex, job
		workerGroup.Go(func() error {
			if contextError := groupContext.Err(); contextError != nil {
				return contextError
			}
			entry := job.entry
			entry.Content = treeWalker.extractor.Extract(job.raw, job.language)
			entry.Tokens = tokenizer.CountOrApproximate(treeWalker.tokenCounter, entry.Content)
			finishedEntries[jobIndex] = entry
			perJobStats[jobIndex] = types.WalkStats{
				FilesProcessed: 1,
				Skeleton:       1,
				TotalTokens:    entry.Tokens,
			}
			if progressBar != nil {
				_ = progressBar.Add(1)
			}
			return nil
		})
	}
	if groupError := workerGroup.Wait(); groupError != nil {
		return nil, types.WalkStats{}, groupError
	}
	if progressBar != nil {
		_ = progressBar.Finish()
	}
	var mergedStats types.WalkStats
	for _, jobStats := range perJobStats {
		mergedStats.Merge(jobStats)
	}
	return finishedEntries, mergedStats, nil
}

// decodeText returns file content as a string. Valid UTF-8 passes through;
// other byte streams that still look like text get a latin-1 decode; binary
// streams are rejected.
func decodeText(rawBytes []byte) (string, bool) {
	if utils.IsBinary(rawBytes) {
		return "", false
	}
	if utf8.Valid(rawBytes) {
		return string(rawBytes), true
	}
	decodedRunes := make([]rune, 0, len(rawBytes))
	for _, rawByte := range rawBytes {
		decodedRunes = append(decodedRunes, rune(rawByte))
	}
	return string(decodedRunes), true
}

// countFilesUnder counts every regular file below directoryPath, following
// no filter. The count labels pruned directories in the excluded section.
func countFilesUnder(directoryPath string) int {
	fileCount := 0
	_ = filepath.WalkDir(directoryPath, func(_ string, directoryEntry fs.DirEntry, visitError error) error {
		if visitError != nil {
			return nil
		}
		if !directoryEntry.IsDir() {
			fileCount++
		}
		return nil
	})
	return fileCount
}

func parentDirectory(relativePath string) string {
	parent := filepath.ToSlash(filepath.Dir(relativePath))
	if parent == "" {
		return "."
	}
	return parent
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

func sortEntriesByPath(entries []types.FileEntry) {
	sort.Slice(entries, func(left, right int) bool {
		return entries[left].RelativePath < entries[right].RelativePath
	})
}
