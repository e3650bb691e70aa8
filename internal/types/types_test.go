package types_test

import (
	"testing"

	"github.com/temirov/skel/internal/types"
)

func TestWalkStatsMerge(testInstance *testing.T) {
	accumulated := types.WalkStats{FilesProcessed: 2, FullContent: 1, Skeleton: 1, TotalTokens: 10}
	accumulated.Merge(types.WalkStats{FilesProcessed: 3, Skeleton: 3, Excluded: 4, TotalTokens: 7})

	expected := types.WalkStats{FilesProcessed: 5, FullContent: 1, Skeleton: 4, Excluded: 4, TotalTokens: 17}
	if accumulated != expected {
		testInstance.Fatalf("got %+v want %+v", accumulated, expected)
	}
}
