// Package types defines every cross-package data structure used by the skel CLI.
package types

const (
	// ModeSkeleton reduces every routed file to its structural skeleton.
	ModeSkeleton = "skeleton"
	// ModeOverview renders metadata and skeletons but omits the full-content section.
	ModeOverview = "overview"
	// ModeHybrid grants full content only to default configuration files.
	ModeHybrid = "hybrid"
	// ModeCustom honors explicit full-content paths and patterns.
	ModeCustom = "custom"

	// TreatmentFull renders the file body verbatim.
	TreatmentFull = "full"
	// TreatmentSkeleton renders the reduced structural representation.
	TreatmentSkeleton = "skeleton"
	// TreatmentExcluded marks files dropped after passing path filtering.
	TreatmentExcluded = "excluded"
)

// ValidatedRoot is an absolute root path that already passed existence checks.
type ValidatedRoot struct {
	AbsolutePath string
	Name         string
}

// FileEntry is one file selected by the walk, carrying whichever rendering
// the classifier assigned to it.
type FileEntry struct {
	RelativePath string
	SizeBytes    int64
	Extension    string
	Treatment    string
	Content      string
	LineCount    int
	Tokens       int
	Imports      []string
	ErrorMarker  string
	OrderIndex   int
}

// ExcludedDirectory aggregates files dropped under a single parent directory.
type ExcludedDirectory struct {
	Path      string
	FileCount int
}

// WalkStats holds the running counters exposed after a traversal.
type WalkStats struct {
	FilesProcessed int
	FullContent    int
	Skeleton       int
	Excluded       int
	TotalTokens    int
}

// Merge folds another accumulator into the receiver.
func (stats *WalkStats) Merge(other WalkStats) {
	stats.FilesProcessed += other.FilesProcessed
	stats.FullContent += other.FullContent
	stats.Skeleton += other.Skeleton
	stats.Excluded += other.Excluded
	stats.TotalTokens += other.TotalTokens
}

// ProjectInfo describes the detected project shape rendered in the document header.
type ProjectInfo struct {
	Type            string
	Language        string
	ModulePath      string
	EntryPoints     []string
	ConfigFiles     []string
	DependencyFiles []string
	TestDirectories []string
}

// WalkResult is everything a single traversal produces.
type WalkResult struct {
	FullFiles     []FileEntry
	SkeletonFiles []FileEntry
	ErroredFiles  []FileEntry
	ExcludedDirs  []ExcludedDirectory
	Stats         WalkStats
	GrammarActive bool
}
