package tokenizer_test

import (
	"testing"

	"github.com/temirov/skel/internal/tokenizer"
)

func TestApproximateCounterEstimatesByLength(t *testing.T) {
	counter := tokenizer.NewApproximateCounter()
	count, countError := counter.CountString("abcdefgh")
	if countError != nil {
		t.Fatalf("approximate counting must not fail: %v", countError)
	}
	if count != 2 {
		t.Fatalf("expected 2 tokens for 8 bytes, got %d", count)
	}
}

func TestNewCounterIsDeterministic(t *testing.T) {
	counter := tokenizer.NewCounter()
	first, firstError := counter.CountString("hello tokenized world")
	second, secondError := counter.CountString("hello tokenized world")
	if firstError != nil || secondError != nil {
		t.Fatalf("counting failed: %v %v", firstError, secondError)
	}
	if first != second || first == 0 {
		t.Fatalf("expected stable non-zero count, got %d and %d", first, second)
	}
}

func TestCountOrApproximateNeverPanicsOnNilCounter(t *testing.T) {
	if count := tokenizer.CountOrApproximate(nil, "12345678"); count != 2 {
		t.Fatalf("expected approximate fallback for nil counter, got %d", count)
	}
}
