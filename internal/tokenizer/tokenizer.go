// Package tokenizer estimates token counts for text content.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content. Implementations are pure:
// the same input always yields the same count.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

const (
	defaultEncodingName = "cl100k_base"
	approximateName     = "approximate"
	// approximateBytesPerToken backs the rough estimate used when no encoding
	// is available.
	approximateBytesPerToken = 4
)

// NewCounter returns the cl100k_base tiktoken counter, or the approximate
// byte-length counter when encoding initialization fails. Construction never
// fails; the degradation is reported through Name.
func NewCounter() Counter {
	encoding, encodingError := tiktoken.GetEncoding(defaultEncodingName)
	if encodingError != nil || encoding == nil {
		return approximateCounter{}
	}
	return encodingCounter{encoding: encoding, name: defaultEncodingName}
}

// NewApproximateCounter returns the bytes/4 estimator used as the universal
// fallback.
func NewApproximateCounter() Counter {
	return approximateCounter{}
}

type encodingCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter encodingCounter) Name() string {
	return counter.name
}

func (counter encodingCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, fmt.Errorf("tokenizer %s not initialized", counter.name)
	}
	return len(counter.encoding.Encode(input, nil, nil)), nil
}

type approximateCounter struct{}

func (counter approximateCounter) Name() string {
	return approximateName
}

func (counter approximateCounter) CountString(input string) (int, error) {
	return len(input) / approximateBytesPerToken, nil
}

// CountOrApproximate counts with the provided counter and silently degrades
// to the approximate estimate when counting fails.
func CountOrApproximate(counter Counter, input string) int {
	if counter != nil {
		if count, countError := counter.CountString(input); countError == nil {
			return count
		}
	}
	count, _ := approximateCounter{}.CountString(input)
	return count
}
